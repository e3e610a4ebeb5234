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

func TestRewriteInlineFunctions(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		dialectS constant.DialectType
		dialectT constant.DialectType
		want     string
	}{
		{
			"nvl to ifnull",
			"SELECT NVL(salary, 0) FROM emp",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT IFNULL(salary, 0) FROM emp",
		},
		{
			"lower case call",
			"select nvl(salary, 0) from emp",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"select IFNULL(salary, 0) from emp",
		},
		{
			"nested calls rewrite inside out",
			"SELECT NVL(SUBSTR(name, 1, 3), 'n/a') FROM emp",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT IFNULL(SUBSTRING(name, 1, 3), 'n/a') FROM emp",
		},
		{
			"instr swaps first two arguments",
			"SELECT INSTR(name, 'x') FROM emp",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT LOCATE('x', name) FROM emp",
		},
		{
			"to_char converts the format literal",
			"SELECT TO_CHAR(hired, 'YYYY-MM-DD HH24:MI:SS') FROM emp",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT DATE_FORMAT(hired, '%Y-%m-%d %H:%i:%s') FROM emp",
		},
		{
			"date_format converts back to oracle tokens",
			"SELECT DATE_FORMAT(hired, '%Y-%m-%d') FROM emp",
			constant.DialectTypeMySQL, constant.DialectTypeOracle,
			"SELECT TO_CHAR(hired, 'YYYY-MM-DD') FROM emp",
		},
		{
			"decode expands to case when",
			"SELECT DECODE(status, 1, 'open', 2, 'closed', 'other') FROM t",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT CASE WHEN status = 1 THEN 'open' WHEN status = 2 THEN 'closed' ELSE 'other' END FROM t",
		},
		{
			"nvl2 expands to case when",
			"SELECT NVL2(bonus, bonus, 0) FROM emp",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT CASE WHEN bonus IS NOT NULL THEN bonus ELSE 0 END FROM emp",
		},
		{
			"to_number wraps in cast",
			"SELECT TO_NUMBER(code) FROM t",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT CAST(code AS DECIMAL) FROM t",
		},
		{
			"bare sysdate",
			"SELECT SYSDATE FROM dual",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT NOW() FROM dual",
		},
		{
			"sysdate to postgres",
			"SELECT SYSDATE FROM dual",
			constant.DialectTypeOracle, constant.DialectTypePostgresql,
			"SELECT CURRENT_TIMESTAMP FROM dual",
		},
		{
			"curdate wraps to trunc sysdate",
			"SELECT CURDATE() FROM t",
			constant.DialectTypeMySQL, constant.DialectTypeOracle,
			"SELECT TRUNC(SYSDATE) FROM t",
		},
		{
			"now loses parens toward oracle",
			"SELECT NOW() FROM t",
			constant.DialectTypeMySQL, constant.DialectTypeOracle,
			"SELECT SYSDATE FROM t",
		},
		{
			"string literal content never matches",
			"SELECT 'NVL(a, b)' FROM dual",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT 'NVL(a, b)' FROM dual",
		},
		{
			"unknown function untouched",
			"SELECT MY_FUNC(a) FROM t",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"SELECT MY_FUNC(a) FROM t",
		},
		{
			"tibero follows the oracle rules",
			"SELECT NVL(a, 0) FROM t",
			constant.DialectTypeTibero, constant.DialectTypeMySQL,
			"SELECT IFNULL(a, 0) FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewConversionResult(tt.sql, nil)
			if got := RewriteInlineFunctions(tt.sql, tt.dialectS, tt.dialectT, res); got != tt.want {
				t.Errorf("RewriteInlineFunctions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteInlineFunctionsWarnings(t *testing.T) {
	sql := "SELECT LISTAGG(name, ',') FROM emp"
	res := NewConversionResult(sql, nil)
	got := RewriteInlineFunctions(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
	if !strings.Contains(got, "GROUP_CONCAT(") {
		t.Errorf("LISTAGG not rewritten, got %q", got)
	}
	if len(res.Warnings()) == 0 {
		t.Fatal("expected a lossy-conversion warning for LISTAGG")
	}
	if res.Warnings()[0].Kind != constant.WarningKindLossyConversion {
		t.Errorf("warning kind = %s, want %s", res.Warnings()[0].Kind, constant.WarningKindLossyConversion)
	}
}

func TestRewriteInlineFunctionsNoEquivalent(t *testing.T) {
	sql := "SELECT DATE_ADD(hired, INTERVAL 1 DAY) FROM emp"
	res := NewConversionResult(sql, nil)
	got := RewriteInlineFunctions(sql, constant.DialectTypeMySQL, constant.DialectTypeOracle, res)
	if !strings.Contains(got, "DATE_ADD(") {
		t.Errorf("call without a mechanical equivalent must stay untouched, got %q", got)
	}
	if len(res.Warnings()) == 0 {
		t.Error("expected a manual-review warning for DATE_ADD")
	}
}

func TestRewriteInlineDatatypes(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		dialectS constant.DialectType
		dialectT constant.DialectType
		want     string
	}{
		{
			"varchar2 keeps precision",
			"CREATE TABLE t (name VARCHAR2(100))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (name VARCHAR(100))",
		},
		{
			"number with scale keeps decimal",
			"CREATE TABLE t (amt NUMBER(10,2))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (amt DECIMAL(10,2))",
		},
		{
			"small integer precision buckets to tinyint",
			"CREATE TABLE t (flag NUMBER(3))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (flag TINYINT)",
		},
		{
			"mid precision buckets to int",
			"CREATE TABLE t (n NUMBER(9))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (n INT)",
		},
		{
			"wide precision buckets to bigint",
			"CREATE TABLE t (n NUMBER(18))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (n BIGINT)",
		},
		{
			"overflow precision keeps decimal",
			"CREATE TABLE t (n NUMBER(25))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (n DECIMAL(25,0))",
		},
		{
			"bare number keeps decimal",
			"CREATE TABLE t (n NUMBER)",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (n DECIMAL)",
		},
		{
			"number to postgres integer buckets",
			"CREATE TABLE t (n NUMBER(8))",
			constant.DialectTypeOracle, constant.DialectTypePostgresql,
			"CREATE TABLE t (n INTEGER)",
		},
		{
			"long raw wins over long",
			"CREATE TABLE t (img LONG RAW)",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (img LONGBLOB)",
		},
		{
			"timestamp precision caps at six",
			"CREATE TABLE t (ts TIMESTAMP(9))",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (ts DATETIME(6))",
		},
		{
			"clob drops any qualifier",
			"CREATE TABLE t (doc CLOB)",
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			"CREATE TABLE t (doc LONGTEXT)",
		},
		{
			"mysql int to oracle number",
			"CREATE TABLE t (id INT, note TEXT)",
			constant.DialectTypeMySQL, constant.DialectTypeOracle,
			"CREATE TABLE t (id NUMBER(10,0), note CLOB)",
		},
		{
			"serial to mysql auto increment",
			"CREATE TABLE t (id SERIAL)",
			constant.DialectTypePostgresql, constant.DialectTypeMySQL,
			"CREATE TABLE t (id INT AUTO_INCREMENT)",
		},
		{
			"quoted identifiers untouched",
			`CREATE TABLE t ("NUMBER" VARCHAR2(10))`,
			constant.DialectTypeOracle, constant.DialectTypeMySQL,
			`CREATE TABLE t ("NUMBER" VARCHAR(10))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewConversionResult(tt.sql, nil)
			if got := RewriteInlineDatatypes(tt.sql, tt.dialectS, tt.dialectT, res); got != tt.want {
				t.Errorf("RewriteInlineDatatypes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteInlineDatatypesWarning(t *testing.T) {
	sql := "CREATE TABLE t (rid ROWID)"
	res := NewConversionResult(sql, nil)
	got := RewriteInlineDatatypes(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
	if !strings.Contains(got, "VARCHAR(18)") {
		t.Errorf("ROWID not rewritten, got %q", got)
	}
	if len(res.Warnings()) == 0 {
		t.Error("expected a lossy-conversion warning for ROWID")
	}
}
