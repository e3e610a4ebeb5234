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

const packageSpecDDL = `CREATE OR REPLACE PACKAGE taxpkg IS
  c_rate CONSTANT NUMBER := 0.2;
  FUNCTION get_tax(p_amount IN NUMBER) RETURN NUMBER;
END taxpkg;`

const packageBodyDDL = `CREATE OR REPLACE PACKAGE BODY taxpkg IS
  FUNCTION get_tax(p_amount IN NUMBER) RETURN NUMBER IS
  BEGIN
    RETURN p_amount * 0.2;
  END get_tax;
  PROCEDURE log_tax(p_amount IN NUMBER) IS
  BEGIN
    INSERT INTO tax_log (amount) VALUES (p_amount);
  END log_tax;
END taxpkg;`

func TestConvertPackageSpec(t *testing.T) {
	t.Run("mysql comments the spec and exports constants", func(t *testing.T) {
		res := NewConversionResult(packageSpecDDL, nil)
		out := ConvertPackage(packageSpecDDL, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		if !strings.HasPrefix(out, "/* package specification [taxpkg] has no mysql equivalent") {
			t.Errorf("spec not commented out: %q", out)
		}
		if !strings.Contains(out, "CREATE FUNCTION taxpkg_c_rate() RETURNS NUMBER DETERMINISTIC") {
			t.Errorf("constant not exported: %q", out)
		}
		flagged := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindNoEquivalent {
				flagged = true
			}
		}
		if !flagged {
			t.Errorf("expected a no-equivalent warning, got %+v", res.Warnings())
		}
	})

	t.Run("postgres maps the package to a schema", func(t *testing.T) {
		res := NewConversionResult(packageSpecDDL, nil)
		out := ConvertPackage(packageSpecDDL, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		if !strings.Contains(out, "CREATE SCHEMA IF NOT EXISTS taxpkg;") {
			t.Errorf("schema statement missing: %q", out)
		}
		if !strings.Contains(out, "CREATE OR REPLACE FUNCTION taxpkg.c_rate() RETURNS NUMBER AS $$") {
			t.Errorf("constant function missing: %q", out)
		}
		if !strings.Contains(out, "LANGUAGE sql IMMUTABLE") {
			t.Errorf("constant function should be immutable sql: %q", out)
		}
	})
}

func TestConvertPackageBody(t *testing.T) {
	t.Run("mysql splits members into prefixed routines", func(t *testing.T) {
		res := NewConversionResult(packageBodyDDL, nil)
		out := ConvertPackage(packageBodyDDL, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		for _, want := range []string{
			"DELIMITER $$",
			"CREATE FUNCTION taxpkg_get_tax(p_amount NUMBER) RETURNS NUMBER",
			"CREATE PROCEDURE taxpkg_log_tax(IN p_amount NUMBER)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q should contain %q", out, want)
			}
		}
	})

	t.Run("postgres splits members into schema-qualified functions", func(t *testing.T) {
		res := NewConversionResult(packageBodyDDL, nil)
		out := ConvertPackage(packageBodyDDL, constant.DialectTypeOracle, constant.DialectTypePostgresql, res)
		for _, want := range []string{
			"CREATE SCHEMA IF NOT EXISTS taxpkg",
			"CREATE OR REPLACE FUNCTION taxpkg.get_tax(IN p_amount NUMBER) RETURNS NUMBER AS $$",
			"CREATE OR REPLACE FUNCTION taxpkg.log_tax(IN p_amount NUMBER) RETURNS void AS $$",
			"$$ LANGUAGE plpgsql",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q should contain %q", out, want)
			}
		}
	})

	t.Run("body without parseable members is kept with a warning", func(t *testing.T) {
		sql := "CREATE PACKAGE BODY emptypkg IS\nEND emptypkg;"
		res := NewConversionResult(sql, nil)
		out := ConvertPackage(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res)
		if out != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
		flagged := false
		for _, w := range res.Warnings() {
			if w.Kind == constant.WarningKindManualReview {
				flagged = true
			}
		}
		if !flagged {
			t.Errorf("expected a manual-review warning, got %+v", res.Warnings())
		}
	})

	t.Run("non-package statement passes through", func(t *testing.T) {
		sql := `CREATE TABLE t (id NUMBER)`
		res := NewConversionResult(sql, nil)
		if out := ConvertPackage(sql, constant.DialectTypeOracle, constant.DialectTypeMySQL, res); out != sql {
			t.Errorf("expected passthrough, got %q", out)
		}
	})
}
