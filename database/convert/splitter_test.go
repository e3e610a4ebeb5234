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
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	cases := []struct {
		name   string
		sql    string
		expect []string
	}{
		{
			name:   "semicolon inside a literal does not split",
			sql:    `SELECT 'a;b' FROM t; SELECT 1`,
			expect: []string{`SELECT 'a;b' FROM t`, `SELECT 1`},
		},
		{
			name:   "escaped quote inside a literal",
			sql:    `SELECT 'it''s; fine' FROM t; SELECT 2`,
			expect: []string{`SELECT 'it''s; fine' FROM t`, `SELECT 2`},
		},
		{
			name:   "backslash escape inside a literal",
			sql:    `SELECT 'a\';b' FROM t; SELECT 3`,
			expect: []string{`SELECT 'a\';b' FROM t`, `SELECT 3`},
		},
		{
			name:   "double-quoted identifier with a semicolon",
			sql:    `SELECT "odd;name" FROM t; SELECT 4`,
			expect: []string{`SELECT "odd;name" FROM t`, `SELECT 4`},
		},
		{
			name:   "empty segments discarded",
			sql:    `;;SELECT 1; ;SELECT 2;`,
			expect: []string{`SELECT 1`, `SELECT 2`},
		},
		{
			name:   "single statement without terminator",
			sql:    `SELECT 1`,
			expect: []string{`SELECT 1`},
		},
		{
			name:   "whitespace-only input yields nothing",
			sql:    "  \n\t ",
			expect: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitStatements(c.sql)
			if !reflect.DeepEqual(got, c.expect) {
				t.Errorf("SplitStatements(%q) = %#v, want %#v", c.sql, got, c.expect)
			}
		})
	}
}
