/*
Copyright © 2020 Marvin

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package processor

import (
	"strings"
	"testing"

	"github.com/wentaojin/sqltrans/utils/constant"
)

const rangePartitionDDL = `CREATE TABLE sales (
  sale_id NUMBER(10),
  region VARCHAR2(10)
)
PARTITION BY RANGE (sale_id)
(
  PARTITION p_low VALUES LESS THAN (1000) TABLESPACE ts1,
  PARTITION p_max VALUES LESS THAN (MAXVALUE)
)`

func TestConvertPartitionForMySQL(t *testing.T) {
	t.Run("range partitions reconstructed without tablespaces", func(t *testing.T) {
		res := NewConversionResult(rangePartitionDDL, nil)
		out := ConvertPartition(rangePartitionDDL, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		for _, want := range []string{
			"PARTITION BY RANGE (sale_id)",
			"PARTITION p_low VALUES LESS THAN (1000)",
			"PARTITION p_max VALUES LESS THAN (MAXVALUE)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q should contain %q", out, want)
			}
		}
		if strings.Contains(out, "TABLESPACE") {
			t.Errorf("tablespace clause survived: %q", out)
		}
	})

	t.Run("hash partitioning keeps the partition count", func(t *testing.T) {
		sql := "CREATE TABLE h (id NUMBER)\nPARTITION BY HASH (id)\nPARTITIONS 4"
		res := NewConversionResult(sql, nil)
		out := ConvertPartition(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		if !strings.Contains(out, "PARTITION BY HASH (id)") || !strings.Contains(out, "PARTITIONS 4") {
			t.Errorf("hash clause not reconstructed: %q", out)
		}
	})

	t.Run("interval partitioning raises a no-equivalent warning", func(t *testing.T) {
		sql := `CREATE TABLE s (d DATE)
PARTITION BY RANGE (d) INTERVAL (NUMTOYMINTERVAL(1, 'MONTH'))
(
  PARTITION p0 VALUES LESS THAN (DATE '2024-01-01')
)`
		res := NewConversionResult(sql, nil)
		ConvertPartition(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		found := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindNoEquivalent {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a no-equivalent warning for INTERVAL, got %+v", res.Warnings())
		}
	})

	t.Run("unpartitioned table passes through", func(t *testing.T) {
		sql := `CREATE TABLE plain (id NUMBER)`
		res := NewConversionResult(sql, nil)
		if out := ConvertPartition(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res); out != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
	})
}

func TestConvertPartitionForPostgres(t *testing.T) {
	t.Run("range partitions become declarative children", func(t *testing.T) {
		res := NewConversionResult(rangePartitionDDL, nil)
		out := ConvertPartition(rangePartitionDDL, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		for _, want := range []string{
			"PARTITION BY RANGE (sale_id)",
			"CREATE TABLE sales_p_low PARTITION OF sales FOR VALUES FROM (MINVALUE) TO (1000)",
			"CREATE TABLE sales_p_max PARTITION OF sales FOR VALUES FROM (1000) TO (MAXVALUE)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q should contain %q", out, want)
			}
		}
	})

	t.Run("list partitions carry their value sets", func(t *testing.T) {
		sql := `CREATE TABLE t_region (
  id NUMBER
)
PARTITION BY LIST (region)
(
  PARTITION p_east VALUES IN ('E', 'NE'),
  PARTITION p_west VALUES IN ('W')
)`
		res := NewConversionResult(sql, nil)
		out := ConvertPartition(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.Contains(out, "CREATE TABLE t_region_p_east PARTITION OF t_region FOR VALUES IN ('E', 'NE')") {
			t.Errorf("list child missing: %q", out)
		}
	})

	t.Run("hash partitions expand to modulus children", func(t *testing.T) {
		sql := "CREATE TABLE h (id NUMBER)\nPARTITION BY HASH (id)\nPARTITIONS 4"
		res := NewConversionResult(sql, nil)
		out := ConvertPartition(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.Contains(out, "FOR VALUES WITH (MODULUS 4, REMAINDER 0)") ||
			!strings.Contains(out, "FOR VALUES WITH (MODULUS 4, REMAINDER 3)") {
			t.Errorf("hash children missing: %q", out)
		}
	})

	t.Run("interval partitioning suggests pg_partman", func(t *testing.T) {
		sql := `CREATE TABLE s (d DATE)
PARTITION BY RANGE (d) INTERVAL (NUMTOYMINTERVAL(1, 'MONTH'))
(
  PARTITION p0 VALUES LESS THAN (DATE '2024-01-01')
)`
		res := NewConversionResult(sql, nil)
		ConvertPartition(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		found := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindExtensionRequired && strings.Contains(w.Suggestion, "pg_partman") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a pg_partman extension warning, got %+v", res.Warnings())
		}
	})
}
