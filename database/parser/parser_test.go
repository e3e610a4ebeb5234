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
package parser

import (
	"testing"
)

func TestParseStatement(t *testing.T) {
	t.Run("select with join and subquery", func(t *testing.T) {
		sql := `SELECT e.name, UPPER(d.dname) FROM emp e JOIN dept d ON e.deptno = d.deptno WHERE d.loc IN (SELECT loc FROM locations)`
		stmt, analysis, err := ParseStatement(sql)
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if stmt == nil {
			t.Fatal("expected a parsed statement")
		}
		if analysis.StatementKind != "SELECT" {
			t.Errorf("kind = %s, want SELECT", analysis.StatementKind)
		}
		if analysis.JoinCount != 1 {
			t.Errorf("join count = %d, want 1", analysis.JoinCount)
		}
		if analysis.SubqueryCount != 1 {
			t.Errorf("subquery count = %d, want 1", analysis.SubqueryCount)
		}
		tables := make(map[string]struct{})
		for _, tb := range analysis.Tables {
			tables[tb] = struct{}{}
		}
		for _, want := range []string{"emp", "dept", "locations"} {
			if _, ok := tables[want]; !ok {
				t.Errorf("tables %v should include %q", analysis.Tables, want)
			}
		}
		hasUpper := false
		for _, fn := range analysis.Functions {
			if fn == "UPPER" {
				hasUpper = true
			}
		}
		if !hasUpper {
			t.Errorf("functions %v should include UPPER", analysis.Functions)
		}
	})

	t.Run("statement kinds", func(t *testing.T) {
		cases := []struct {
			sql  string
			kind string
		}{
			{`INSERT INTO t (id) VALUES (1)`, "INSERT"},
			{`UPDATE t SET id = 2`, "UPDATE"},
			{`DELETE FROM t WHERE id = 3`, "DELETE"},
			{`SELECT 1 FROM a UNION SELECT 2 FROM b`, "UNION"},
		}
		for _, c := range cases {
			_, analysis, err := ParseStatement(c.sql)
			if err != nil {
				t.Errorf("ParseStatement(%q) error: %v", c.sql, err)
				continue
			}
			if analysis.StatementKind != c.kind {
				t.Errorf("ParseStatement(%q) kind = %s, want %s", c.sql, analysis.StatementKind, c.kind)
			}
		}
	})

	t.Run("create table parses as lossy ddl", func(t *testing.T) {
		// the general grammar swallows everything after the table name, so
		// the ddl kind is the signal to take the structural fallback instead
		_, analysis, err := ParseStatement(`CREATE TABLE t (id NUMBER) TABLESPACE users`)
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if analysis.StatementKind != "DDL" {
			t.Errorf("kind = %s, want DDL", analysis.StatementKind)
		}
	})

	t.Run("non-sql input is rejected", func(t *testing.T) {
		if _, _, err := ParseStatement(`!!!broken!!!`); err == nil {
			t.Error("expected a parse error for non-sql input")
		}
	})
}
