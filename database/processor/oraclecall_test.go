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

func TestConvertOracleCalls(t *testing.T) {
	cases := []struct {
		name     string
		sql      string
		dialectT constant.DialectType
		present  []string
		absent   []string
	}{
		{
			name:     "dbms_output becomes raise notice on postgres",
			sql:      `DBMS_OUTPUT.PUT_LINE('batch done');`,
			dialectT: constant.DialectTypePostgresql,
			present:  []string{`RAISE NOTICE '%', 'batch done'`},
			absent:   []string{"DBMS_OUTPUT"},
		},
		{
			name:     "dbms_random value with bounds",
			sql:      `SELECT DBMS_RANDOM.VALUE(1, 10) FROM dual`,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`(RAND() * (10 - 1) + 1)`},
		},
		{
			name:     "dbms_lock sleep",
			sql:      `BEGIN DBMS_LOCK.SLEEP(5); END;`,
			dialectT: constant.DialectTypePostgresql,
			present:  []string{`pg_sleep(5)`},
		},
		{
			name:     "dbms_lob substr reorders arguments",
			sql:      `SELECT DBMS_LOB.SUBSTR(doc, 100, 1) FROM docs`,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`SUBSTRING(doc, 1, 100)`},
		},
		{
			name:     "dbms_crypto md5 algorithm code",
			sql:      `SELECT DBMS_CRYPTO.HASH(pwd, 2) FROM users`,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`MD5(pwd)`},
		},
		{
			name:     "dbms_crypto default algorithm on mysql",
			sql:      `SELECT DBMS_CRYPTO.HASH(pwd, 4) FROM users`,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`SHA2(pwd, 256)`},
		},
		{
			name:     "raise_application_error on postgres",
			sql:      `RAISE_APPLICATION_ERROR(-20001, 'salary out of range');`,
			dialectT: constant.DialectTypePostgresql,
			present:  []string{`RAISE EXCEPTION 'salary out of range' USING ERRCODE = 'P0001'`},
		},
		{
			name:     "raise_application_error on mysql",
			sql:      `RAISE_APPLICATION_ERROR(-20001, 'salary out of range');`,
			dialectT: constant.DialectTypeMySQL,
			present:  []string{`SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'salary out of range'`},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := NewConversionResult(c.sql, nil)
			out := ConvertOracleCalls(c.sql, constant.DialectTypeOracle, c.dialectT, res)
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

func TestConvertOracleCallsNoEquivalent(t *testing.T) {
	sql := `BEGIN UTL_FILE.FOPEN('DIR', 'out.txt', 'w'); END;`

	t.Run("placeholder substitution by default", func(t *testing.T) {
		res := NewConversionResult(sql, nil)
		out := ConvertOracleCalls(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.Contains(out, "NULL /*") || !strings.Contains(out, "UTL_FILE.FOPEN") {
			t.Errorf("expected a NULL placeholder carrying the removed call, got %q", out)
		}
		if !res.HasErrorWarning() {
			t.Error("expected an error-severity warning")
		}
	})

	t.Run("call left untouched when substitution disabled", func(t *testing.T) {
		res := NewConversionResult(sql, &ConvertOptions{ReplaceUnsupportedFunctions: false})
		out := ConvertOracleCalls(sql, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.Contains(out, `UTL_FILE.FOPEN('DIR', 'out.txt', 'w')`) {
			t.Errorf("expected the call to survive, got %q", out)
		}
		if strings.Contains(out, "NULL /*") {
			t.Errorf("unexpected placeholder: %q", out)
		}
		if !res.HasErrorWarning() {
			t.Error("the error warning must be raised either way")
		}
	})

	t.Run("unrecognized member is flagged and kept", func(t *testing.T) {
		stmt := `BEGIN DBMS_STATS.GATHER_TABLE_STATS('SCOTT', 'EMP'); END;`
		res := NewConversionResult(stmt, nil)
		out := ConvertOracleCalls(stmt, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		if !strings.Contains(out, "DBMS_STATS.GATHER_TABLE_STATS") {
			t.Errorf("expected the call to survive, got %q", out)
		}
		flagged := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindUnsupportedFeature {
				flagged = true
			}
		}
		if !flagged {
			t.Errorf("expected an unsupported-feature warning, got %+v", res.Warnings())
		}
	})
}
