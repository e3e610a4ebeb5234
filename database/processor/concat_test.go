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
	"testing"

	"github.com/wentaojin/sqltrans/utils/constant"
)

func TestRewriteConcatOperators(t *testing.T) {
	cases := []struct {
		name     string
		sql      string
		dialectS constant.DialectType
		dialectT constant.DialectType
		expect   string
	}{
		{
			name:     "operator chain folds into one concat call",
			sql:      `SELECT first_name || ' ' || last_name FROM emp`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT CONCAT(first_name, ' ', last_name) FROM emp`,
		},
		{
			name:     "function call operand moves as a whole",
			sql:      `SELECT NVL(a,'x') || b FROM t`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT CONCAT(NVL(a,'x'), b) FROM t`,
		},
		{
			name:     "parenthesized group operand",
			sql:      `SELECT (a || b) || c FROM t`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT CONCAT((CONCAT(a, b)), c) FROM t`,
		},
		{
			name:     "update assignment keeps the clause tail",
			sql:      `UPDATE t SET c = a || b WHERE id = 1`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			expect:   `UPDATE t SET c = CONCAT(a, b) WHERE id = 1`,
		},
		{
			name:     "pipes inside a literal are untouched",
			sql:      `SELECT '||' FROM t`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT '||' FROM t`,
		},
		{
			name:     "postgres source loses the operator too",
			sql:      `SELECT a || b FROM t`,
			dialectS: constant.DialectTypePostgresql,
			dialectT: constant.DialectTypeMySQL,
			expect:   `SELECT CONCAT(a, b) FROM t`,
		},
		{
			name:     "operator dialect pair passes through",
			sql:      `SELECT a || b FROM t`,
			dialectS: constant.DialectTypeOracle,
			dialectT: constant.DialectTypePostgresql,
			expect:   `SELECT a || b FROM t`,
		},
		{
			name:     "concat call unrolls into an operator chain",
			sql:      `SELECT CONCAT(a, b, c) FROM t`,
			dialectS: constant.DialectTypeMySQL,
			dialectT: constant.DialectTypeOracle,
			expect:   `SELECT a || b || c FROM t`,
		},
		{
			name:     "nested concat calls collapse",
			sql:      `SELECT CONCAT(CONCAT(a, b), c) FROM t`,
			dialectS: constant.DialectTypeMySQL,
			dialectT: constant.DialectTypeOracle,
			expect:   `SELECT a || b || c FROM t`,
		},
		{
			name:     "concat_ws never matches",
			sql:      `SELECT CONCAT_WS('-', a, b) FROM t`,
			dialectS: constant.DialectTypeMySQL,
			dialectT: constant.DialectTypeOracle,
			expect:   `SELECT CONCAT_WS('-', a, b) FROM t`,
		},
		{
			name:     "concat inside a literal is untouched",
			sql:      `SELECT 'CONCAT(a,b)' FROM t`,
			dialectS: constant.DialectTypeMySQL,
			dialectT: constant.DialectTypeOracle,
			expect:   `SELECT 'CONCAT(a,b)' FROM t`,
		},
		{
			name:     "tibero target behaves like oracle",
			sql:      `SELECT CONCAT(a, b) FROM t`,
			dialectS: constant.DialectTypeMySQL,
			dialectT: constant.DialectTypeTibero,
			expect:   `SELECT a || b FROM t`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewConversionResult(c.sql, nil)
			if got := RewriteConcatOperators(c.sql, c.dialectS, c.dialectT, res); got != c.expect {
				t.Errorf("RewriteConcatOperators(%q, %s->%s) = %q, want %q", c.sql, c.dialectS, c.dialectT, got, c.expect)
			}
		})
	}
}

func TestRewriteConcatOperatorsDiagnostics(t *testing.T) {
	t.Run("oracle source warns about null handling", func(t *testing.T) {
		sql := `SELECT a || b FROM t`
		res := NewConversionResult(sql, nil)
		RewriteConcatOperators(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)

		found := false
		for _, rule := range res.AppliedRules() {
			if rule == "string concatenation rewritten: || -> CONCAT" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected the splicing rewrite rule, got %v", res.AppliedRules())
		}
		warned := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindLossyConversion && w.Severity == constant.WarningSeverityWarning {
				warned = true
			}
		}
		if !warned {
			t.Errorf("expected a WARNING about NULL handling, got %+v", res.Warnings())
		}
	})

	t.Run("postgres source stays silent", func(t *testing.T) {
		sql := `SELECT a || b FROM t`
		res := NewConversionResult(sql, nil)
		RewriteConcatOperators(sql, constant.DialectTypePostgresql, constant.DialectTypeMySQL, res)
		if len(res.Warnings()) != 0 {
			t.Errorf("postgres || and mysql CONCAT agree on NULL, expected no warnings, got %+v", res.Warnings())
		}
	})

	t.Run("oracle target notes the null difference at info severity", func(t *testing.T) {
		sql := `SELECT CONCAT(a, b) FROM t`
		res := NewConversionResult(sql, nil)
		RewriteConcatOperators(sql, constant.DialectTypeMySQL, constant.DialectTypeOracle, res)

		noted := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindLossyConversion && w.Severity == constant.WarningSeverityInfo {
				noted = true
			}
		}
		if !noted {
			t.Errorf("expected an INFO note about NULL handling, got %+v", res.Warnings())
		}
	})
}
