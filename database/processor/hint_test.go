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

func TestExtractHints(t *testing.T) {
	t.Run("typed hints with arguments", func(t *testing.T) {
		hints := ExtractHints(`SELECT /*+ INDEX(emp idx_emp_no) PARALLEL(emp, 4) */ * FROM emp`)
		if len(hints) != 2 {
			t.Fatalf("expected 2 hints, got %d", len(hints))
		}
		if hints[0].Type != HintTypeIndex {
			t.Errorf("first hint type = %s, want INDEX", hints[0].Type)
		}
		if len(hints[0].Arguments) != 2 || hints[0].Arguments[0] != "emp" || hints[0].Arguments[1] != "idx_emp_no" {
			t.Errorf("index hint arguments = %v", hints[0].Arguments)
		}
		if hints[1].Type != HintTypeParallel || len(hints[1].Arguments) != 2 || hints[1].Arguments[1] != "4" {
			t.Errorf("parallel hint = %+v", hints[1])
		}
	})
	t.Run("ordinary comments are not hints", func(t *testing.T) {
		if hints := ExtractHints(`SELECT /* audit 2024 */ * FROM emp`); len(hints) != 0 {
			t.Errorf("expected no hints, got %+v", hints)
		}
	})
	t.Run("hint text inside a literal is ignored", func(t *testing.T) {
		if hints := ExtractHints(`SELECT '/*+ FULL(emp) */' FROM dual`); len(hints) != 0 {
			t.Errorf("expected no hints, got %+v", hints)
		}
	})
}

func TestRemoveAllHints(t *testing.T) {
	out := RemoveAllHints(`SELECT /*+ FULL(emp) */ name /* keep me */ FROM emp`)
	if strings.Contains(out, "FULL(emp)") {
		t.Errorf("hint block survived: %q", out)
	}
	if !strings.Contains(out, "/* keep me */") {
		t.Errorf("ordinary comment removed: %q", out)
	}
}

func TestConvertHintsForMySQL(t *testing.T) {
	cases := []struct {
		name    string
		sql     string
		present []string
		absent  []string
	}{
		{
			name:    "index hint becomes force index",
			sql:     `SELECT /*+ INDEX(emp idx_emp_no) */ * FROM emp WHERE empno = 1`,
			present: []string{"FROM emp FORCE INDEX (idx_emp_no)"},
			absent:  []string{"/*+"},
		},
		{
			name:    "no_index hint becomes ignore index",
			sql:     `SELECT /*+ NO_INDEX(emp idx_emp_no) */ * FROM emp`,
			present: []string{"FROM emp IGNORE INDEX (idx_emp_no)"},
		},
		{
			name:    "leading hint becomes straight_join",
			sql:     `SELECT /*+ LEADING(e d) */ * FROM emp e, dept d`,
			present: []string{"SELECT STRAIGHT_JOIN *"},
		},
		{
			name:    "unknown hint removed",
			sql:     `SELECT /*+ OPT_PARAM('x' 'y') */ * FROM emp`,
			present: []string{"SELECT * FROM emp"},
			absent:  []string{"OPT_PARAM"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewConversionResult(c.sql, nil)
			out := ConvertHints(c.sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
			for _, want := range c.present {
				if !strings.Contains(out, want) {
					t.Errorf("output %q should contain %q", out, want)
				}
			}
			for _, gone := range c.absent {
				if strings.Contains(out, gone) {
					t.Errorf("output %q should no longer contain %q", out, gone)
				}
			}
		})
	}
}

func TestConvertHintsForPostgres(t *testing.T) {
	t.Run("parallel hint becomes a session setting", func(t *testing.T) {
		sql := `SELECT /*+ PARALLEL(emp, 8) */ COUNT(*) FROM emp`
		res := NewConversionResult(sql, nil)
		out := ConvertHints(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.HasPrefix(out, "SET max_parallel_workers_per_gather = 8;") {
			t.Errorf("missing session setting prefix: %q", out)
		}
		if strings.Contains(out, "/*+") {
			t.Errorf("hint block survived: %q", out)
		}
	})
	t.Run("index hint kept as comment pending pg_hint_plan", func(t *testing.T) {
		sql := `SELECT /*+ INDEX(emp idx_emp_no) */ * FROM emp`
		res := NewConversionResult(sql, nil)
		out := ConvertHints(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.Contains(out, "/* INDEX(emp idx_emp_no) */") {
			t.Errorf("expected the hint as a plain comment: %q", out)
		}
		found := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindExtensionRequired && strings.Contains(w.Suggestion, "pg_hint_plan") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a pg_hint_plan extension warning, got %+v", res.Warnings())
		}
	})
	t.Run("hint-free statement passes through", func(t *testing.T) {
		sql := `SELECT * FROM emp`
		res := NewConversionResult(sql, nil)
		if out := ConvertHints(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res); out != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
	})
}
