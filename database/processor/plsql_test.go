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

func TestConvertProceduralBody(t *testing.T) {
	cases := []struct {
		name     string
		sql      string
		dialectT constant.DialectType
		present  []string
		absent   []string
		hasError bool
	}{
		{
			name:     "implicit cursor rowcount on mysql",
			sql:      "BEGIN\n  UPDATE emp SET sal = 0;\n  IF SQL%ROWCOUNT > 0 THEN\n    NULL;\n  END IF;\nEND;",
			dialectT: constant.DialectTypeMySQL,
			present:  []string{"IF ROW_COUNT() > 0 THEN"},
			absent:   []string{"SQL%ROWCOUNT"},
		},
		{
			name:     "implicit cursor notfound on postgres",
			sql:      "BEGIN\n  UPDATE emp SET sal = 0;\n  IF SQL%NOTFOUND THEN\n    NULL;\n  END IF;\nEND;",
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"IF NOT FOUND THEN"},
			absent:   []string{"SQL%NOTFOUND"},
		},
		{
			name:     "autonomous transaction pragma commented out",
			sql:      "DECLARE\n  PRAGMA AUTONOMOUS_TRANSACTION;\nBEGIN\n  COMMIT;\nEND;",
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"-- PRAGMA AUTONOMOUS_TRANSACTION;"},
		},
		{
			name:     "pipe row becomes return next on postgres",
			sql:      "BEGIN\n  PIPE ROW (rec);\nEND;",
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"RETURN NEXT rec;"},
			absent:   []string{"PIPE ROW"},
		},
		{
			name:     "pipe row has no mysql equivalent",
			sql:      "BEGIN\n  PIPE ROW (rec);\nEND;",
			dialectT: constant.DialectTypeMySQL,
			present:  []string{"PIPE ROW (rec);"},
			hasError: true,
		},
		{
			name:     "exit when becomes a guarded leave on mysql",
			sql:      "BEGIN\n  LOOP\n    EXIT WHEN v_done;\n  END LOOP;\nEND;",
			dialectT: constant.DialectTypeMySQL,
			present:  []string{"IF v_done THEN LEAVE cur_loop; END IF;"},
		},
		{
			name:     "sys_refcursor becomes refcursor on postgres",
			sql:      "DECLARE\n  c SYS_REFCURSOR;\nBEGIN\n  NULL;\nEND;",
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"c refcursor"},
		},
		{
			name:     "goto is flagged and kept",
			sql:      "BEGIN\n  GOTO cleanup;\nEND;",
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"GOTO cleanup"},
			hasError: true,
		},
		{
			name:     "raise no_data_found on postgres",
			sql:      "BEGIN\n  RAISE NO_DATA_FOUND;\nEND;",
			dialectT: constant.DialectTypePostgresql,
			present:  []string{"RAISE EXCEPTION 'no data found' USING ERRCODE = 'P0002'"},
		},
		{
			name:     "raise no_data_found on mysql",
			sql:      "BEGIN\n  RAISE NO_DATA_FOUND;\nEND;",
			dialectT: constant.DialectTypeMySQL,
			present:  []string{"SIGNAL SQLSTATE '02000' SET MESSAGE_TEXT = 'no data found'"},
		},
		{
			name:     "returning into is rejected for mysql",
			sql:      "BEGIN\n  INSERT INTO emp (empno) VALUES (1) RETURNING empno INTO v_id;\nEND;",
			dialectT: constant.DialectTypeMySQL,
			present:  []string{"RETURNING empno INTO v_id"},
			hasError: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewConversionResult(c.sql, nil)
			out := ConvertProceduralBody(c.sql, constant.DialectTypeOracle, c.dialectT, res)
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
			if c.hasError != res.HasErrorWarning() {
				t.Errorf("error warning = %v, want %v (warnings %+v)", res.HasErrorWarning(), c.hasError, res.Warnings())
			}
		})
	}

	t.Run("plain sql without procedural markers passes through", func(t *testing.T) {
		sql := "SELECT empno FROM emp WHERE sal > 1000"
		res := NewConversionResult(sql, nil)
		if out := ConvertProceduralBody(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res); out != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
		if len(res.Warnings()) != 0 {
			t.Errorf("expected no warnings, got %+v", res.Warnings())
		}
	})
}
