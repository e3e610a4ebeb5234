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
package convert

import (
	"strings"
	"testing"

	"github.com/wentaojin/sqltrans/database/processor"
	"github.com/wentaojin/sqltrans/utils/constant"
)

func TestEngineConvertEndToEnd(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		name     string
		sql      string
		dialectS constant.DialectType
		dialectT constant.DialectType
		present  []string
		absent   []string
	}{
		{
			name:     "oracle nvl to mysql ifnull",
			sql:      `SELECT NVL(name,'x') FROM t`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`IFNULL(name,'x')`},
			absent:   []string{"NVL("},
		},
		{
			name:     "oracle sysdate to postgres current_timestamp",
			sql:      `SELECT SYSDATE FROM DUAL`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"CURRENT_TIMESTAMP"},
			absent:   []string{"SYSDATE"},
		},
		{
			name:     "mysql date_format to oracle to_char",
			sql:      `SELECT DATE_FORMAT(d,'%Y-%m-%d') FROM t`,
			dialectS: constant.DialectTypeMySQL,
			dialectT: constant.DialectTypeOracle,
			present:  []string{`TO_CHAR(d,'YYYY-MM-DD')`},
		},
		{
			name:     "oracle ddl lands on the fallback pipeline",
			sql:      `CREATE TABLE t (id NUMBER(3), name VARCHAR2(50)) TABLESPACE users`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{"TINYINT", "VARCHAR(50)"},
			absent:   []string{"TABLESPACE", "VARCHAR2"},
		},
		{
			name:     "tibero behaves like oracle",
			sql:      `SELECT NVL(name,'x') FROM t`,
			dialectS: constant.DialectTypeTibero,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`IFNULL(name,'x')`},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := engine.Convert(c.sql, c.dialectS, c.dialectT, nil)
			for _, want := range c.present {
				if !strings.Contains(res.ConvertedSQL, want) {
					t.Errorf("converted %q should contain %q", res.ConvertedSQL, want)
				}
			}
			for _, gone := range c.absent {
				if strings.Contains(res.ConvertedSQL, gone) {
					t.Errorf("converted %q should no longer contain %q", res.ConvertedSQL, gone)
				}
			}
		})
	}
}

func TestEngineConcatOperatorRewrite(t *testing.T) {
	engine := NewEngine()

	res := engine.Convert(`SELECT first_name || ' ' || last_name FROM emp`,
		constant.DialectTypeOracle, constant.DialectTypeMySQL, nil)
	if res.ConvertedSQL != `SELECT CONCAT(first_name, ' ', last_name) FROM emp` {
		t.Errorf("splicing operator must become a CONCAT call, got %q", res.ConvertedSQL)
	}
	if len(res.Warnings()) == 0 {
		t.Errorf("the operator rewrite must surface the NULL-handling warning, got none")
	}

	back := engine.Convert(`SELECT CONCAT(first_name, ' ', last_name) FROM emp`,
		constant.DialectTypeMySQL, constant.DialectTypeOracle, nil)
	if back.ConvertedSQL != `SELECT first_name || ' ' || last_name FROM emp` {
		t.Errorf("CONCAT must unroll into the splicing operator, got %q", back.ConvertedSQL)
	}
}

func TestEngineBatchIsolation(t *testing.T) {
	engine := NewEngine()
	res := engine.Convert(`SELECT 1; !!!broken!!!; SELECT 2`, constant.DialectTypeOracle, constant.DialectTypeMySQL, nil)

	segments := 0
	for _, seg := range strings.Split(res.ConvertedSQL, ";") {
		if strings.TrimSpace(seg) != "" {
			segments++
		}
	}
	if segments != 3 {
		t.Fatalf("expected 3 segments, got %d in %q", segments, res.ConvertedSQL)
	}
	if !strings.Contains(res.ConvertedSQL, "!!!broken!!!") {
		t.Errorf("broken member must survive verbatim: %q", res.ConvertedSQL)
	}

	failed := 0
	for _, w := range res.Warnings() {
		if w.Kind == constant.WarningKindStatementFailed {
			failed++
			if w.Severity != constant.WarningSeverityWarning {
				t.Errorf("batch member failure must stay WARNING severity, got %s", w.Severity)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected exactly one statement-failed warning, got %d (%+v)", failed, res.Warnings())
	}

	counted := false
	for _, rule := range res.AppliedRules() {
		if strings.Contains(rule, "3 statements processed") {
			counted = true
		}
	}
	if !counted {
		t.Errorf("expected the statement-count rule, got %v", res.AppliedRules())
	}
}

func TestEngineWholeInputFailure(t *testing.T) {
	engine := NewEngine()
	sql := `!!!broken!!!`
	res := engine.Convert(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, nil)

	if res.ConvertedSQL != sql {
		t.Errorf("unconvertible input must be returned unchanged, got %q", res.ConvertedSQL)
	}
	found := false
	for _, w := range res.Warnings() {
		if w.Kind == constant.WarningKindConversionFailed && w.Severity == constant.WarningSeverityError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an ERROR conversion-failed warning, got %+v", res.Warnings())
	}
}

func TestEngineSameDialectPassthrough(t *testing.T) {
	engine := NewEngine()
	sql := `SELECT NVL(name,'x') FROM t; SELECT SYSDATE FROM DUAL`
	res := engine.Convert(sql, constant.DialectTypeOracle, constant.DialectTypeOracle, nil)

	if res.ConvertedSQL != sql {
		t.Errorf("same-dialect conversion must be the identity, got %q", res.ConvertedSQL)
	}
	if len(res.Warnings()) != 0 || len(res.AppliedRules()) != 0 {
		t.Errorf("identity conversion must not record warnings or rules, got %+v / %v", res.Warnings(), res.AppliedRules())
	}
}

func TestEngineEmptyInput(t *testing.T) {
	engine := NewEngine()
	res := engine.Convert("   \n", constant.DialectTypeOracle, constant.DialectTypeMySQL, nil)
	if res.ConvertedSQL != "   \n" {
		t.Errorf("whitespace input must pass through, got %q", res.ConvertedSQL)
	}
}

func TestEngineFormatSQLOption(t *testing.T) {
	engine := NewEngine()
	res := engine.Convert(`SELECT NVL(a,'x') FROM t WHERE id = 1`,
		constant.DialectTypeOracle, constant.DialectTypeMySQL,
		&processor.ConvertOptions{FormatSQL: true, ReplaceUnsupportedFunctions: true})

	for _, want := range []string{"IFNULL(a,'x')", "\nFROM t", "\nWHERE id = 1"} {
		if !strings.Contains(res.ConvertedSQL, want) {
			t.Errorf("formatted output %q should contain %q", res.ConvertedSQL, want)
		}
	}
}

func TestEngineEnableCommentsOption(t *testing.T) {
	engine := NewEngine()
	res := engine.Convert(`SELECT NVL(a,'x') FROM t; SELECT SYSDATE FROM DUAL`,
		constant.DialectTypeOracle, constant.DialectTypeMySQL,
		&processor.ConvertOptions{EnableComments: true, ReplaceUnsupportedFunctions: true})

	if !strings.HasPrefix(res.ConvertedSQL, "/* conversion applied rules:") {
		t.Errorf("expected a leading applied-rules comment, got %q", res.ConvertedSQL)
	}
	if !strings.Contains(res.ConvertedSQL, "2 statements processed") {
		t.Errorf("annotation should name the statement-count rule, got %q", res.ConvertedSQL)
	}
}

func TestEngineStrictMode(t *testing.T) {
	engine := NewEngine()
	res := engine.Convert(`COMMENT ON TABLE emp IS 'employees'`,
		constant.DialectTypeOracle, constant.DialectTypeMySQL,
		&processor.ConvertOptions{StrictMode: true, ReplaceUnsupportedFunctions: true})

	if !res.HasErrorWarning() {
		t.Errorf("strict mode must upgrade warnings to errors, got %+v", res.Warnings())
	}
}
