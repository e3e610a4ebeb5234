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

func TestStripOracleDDLOptions(t *testing.T) {
	cases := []struct {
		name      string
		sql       string
		dialectT  constant.DialectType
		absent    []string
		present   []string
		untouched bool
	}{
		{
			name: "physical attributes removed for mysql",
			sql: `CREATE TABLE orders (
  order_id NUMBER
) TABLESPACE users PCTFREE 10 INITRANS 2 NOLOGGING NOCACHE`,
			dialectT: constant.DialectTypeMySQL,
			absent:   []string{"TABLESPACE", "PCTFREE", "INITRANS", "NOLOGGING", "NOCACHE"},
			present:  []string{"CREATE TABLE orders", "order_id NUMBER"},
		},
		{
			name:     "storage clause with nested parentheses removed",
			sql:      `CREATE TABLE t (id NUMBER) STORAGE (INITIAL 64K NEXT 1M MAXEXTENTS UNLIMITED) LOGGING`,
			dialectT: constant.DialectTypePostgresql,
			absent:   []string{"STORAGE", "INITIAL", "MAXEXTENTS", "LOGGING"},
			present:  []string{"CREATE TABLE t (id NUMBER)"},
		},
		{
			name:     "constraint enable keyword dropped",
			sql:      `ALTER TABLE t ADD CONSTRAINT ck_positive CHECK (amount > 0) ENABLE`,
			dialectT: constant.DialectTypeMySQL,
			absent:   []string{"ENABLE"},
			present:  []string{"CHECK (amount > 0)"},
		},
		{
			name:     "index scope removed on create index only",
			sql:      `CREATE INDEX idx_orders ON orders (order_id) LOCAL`,
			dialectT: constant.DialectTypeMySQL,
			absent:   []string{"LOCAL"},
			present:  []string{"CREATE INDEX idx_orders ON orders (order_id)"},
		},
		{
			name:      "option keywords inside string literals survive",
			sql:       `INSERT INTO notes (txt) VALUES ('moved to TABLESPACE users')`,
			dialectT:  constant.DialectTypeMySQL,
			present:   []string{"'moved to TABLESPACE users'"},
			untouched: true,
		},
		{
			name:      "oracle target keeps its own options",
			sql:       `CREATE TABLE t (id NUMBER) TABLESPACE users`,
			dialectT:  constant.DialectTypeTibero,
			present:   []string{"TABLESPACE users"},
			untouched: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewConversionResult(c.sql, nil)
			out := StripOracleDDLOptions(c.sql, constant.DialectTypeOracle, c.dialectT, res)
			for _, want := range c.present {
				if !strings.Contains(out, want) {
					t.Errorf("output %q should contain %q", out, want)
				}
			}
			for _, gone := range c.absent {
				if ContainsKeyword(out, gone) {
					t.Errorf("output %q should no longer contain keyword %q", out, gone)
				}
			}
			if c.untouched && out != c.sql {
				t.Errorf("expected passthrough, got %q", out)
			}
			if !c.untouched && len(res.AppliedRules()) == 0 {
				t.Error("expected applied rules to be recorded")
			}
		})
	}
}

func TestCollapseSchemaQualifiers(t *testing.T) {
	cases := []struct {
		name     string
		sql      string
		dialectT constant.DialectType
		expect   string
	}{
		{
			name:     "from and join qualifiers collapsed for mysql",
			sql:      `SELECT e.name FROM scott.emp e JOIN scott.dept d ON e.deptno = d.deptno`,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT e.name FROM emp e JOIN dept d ON e.deptno = d.deptno`,
		},
		{
			name:     "insert into qualifier collapsed",
			sql:      `INSERT INTO scott.emp (empno) VALUES (1)`,
			dialectT: constant.DialectTypeMySQL,
			expect:   `INSERT INTO emp (empno) VALUES (1)`,
		},
		{
			name:     "postgres target keeps schemas",
			sql:      `SELECT * FROM scott.emp`,
			dialectT: constant.DialectTypePostgresql,
			expect:   `SELECT * FROM scott.emp`,
		},
		{
			name:     "column qualifiers are not table qualifiers",
			sql:      `SELECT emp.name FROM emp`,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT emp.name FROM emp`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewConversionResult(c.sql, nil)
			out := CollapseSchemaQualifiers(c.sql, constant.DialectTypeOracle, c.dialectT, res)
			if out != c.expect {
				t.Errorf("got %q, want %q", out, c.expect)
			}
		})
	}
}

func TestRewriteCommentOn(t *testing.T) {
	t.Run("comment on removed for mysql with manual-review warning", func(t *testing.T) {
		sql := `COMMENT ON COLUMN emp.name IS 'employee name'`
		res := NewConversionResult(sql, nil)
		out := RewriteCommentOn(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		if out != "" {
			t.Errorf("expected statement removal, got %q", out)
		}
		warnings := res.Warnings()
		if len(warnings) != 1 || warnings[0].Kind != constant.WarningKindManualReview {
			t.Fatalf("expected one manual-review warning, got %+v", warnings)
		}
	})
	t.Run("comment on survives for postgres", func(t *testing.T) {
		sql := `COMMENT ON TABLE emp IS 'employees'`
		res := NewConversionResult(sql, nil)
		out := RewriteCommentOn(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if out != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
	})
}

func TestFallbackConvertComposition(t *testing.T) {
	t.Run("ddl statement runs option strip and datatype rewriting", func(t *testing.T) {
		sql := `CREATE TABLE emp (
  empno NUMBER(5),
  name VARCHAR2(100),
  hired DATE DEFAULT SYSDATE
) TABLESPACE users NOLOGGING`
		res := NewConversionResult(sql, nil)
		out := FallbackConvert(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		for _, want := range []string{"INT", "VARCHAR(100)", "NOW()"} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q should contain %q", out, want)
			}
		}
		for _, gone := range []string{"VARCHAR2", "TABLESPACE", "NOLOGGING", "SYSDATE"} {
			if strings.Contains(out, gone) {
				t.Errorf("output %q should no longer contain %q", out, gone)
			}
		}
	})
	t.Run("dml statement keeps datatype keywords in column names", func(t *testing.T) {
		sql := `SELECT number_of_items, NVL(comments, 'n/a') FROM orders`
		res := NewConversionResult(sql, nil)
		out := FallbackConvert(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		if !strings.Contains(out, "number_of_items") {
			t.Errorf("identifier mangled: %q", out)
		}
		if !strings.Contains(out, "IFNULL(comments, 'n/a')") {
			t.Errorf("inline function not rewritten: %q", out)
		}
	})
	t.Run("unrecognized input passes through unchanged", func(t *testing.T) {
		sql := `GRANT SELECT ON emp TO reporting`
		res := NewConversionResult(sql, nil)
		out := FallbackConvert(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if strings.TrimSpace(out) != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
	})
}
