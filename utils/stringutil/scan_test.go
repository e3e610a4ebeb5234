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
package stringutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestFindMatchingBracket(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		want  int
	}{
		{"simple", "(a)", 1, 3},
		{"nested", "(a(b))", 1, 6},
		{"paren in single quotes", "(a,'(' )", 1, 8},
		{"paren in double quotes", `(a,"(" )`, 1, 8},
		{"escaped quote in literal", "('it''s)',b)", 1, 12},
		{"unbalanced", "(a(b)", 1, BracketNotFound},
		{"trailing text", "(a)+b", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindMatchingBracket(tt.text, tt.start); got != tt.want {
				t.Errorf("FindMatchingBracket(%q, %d) = %d, want %d", tt.text, tt.start, got, tt.want)
			}
		})
	}
}

func TestSplitArguments(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{"plain", "a, b, c", []string{"a", "b", "c"}},
		{"nested call", "NVL(a,b), c", []string{"NVL(a,b)", "c"}},
		{"quoted comma", "'a,b', c", []string{"'a,b'", "c"}},
		{"escaped quote", "'it''s, fine', c", []string{"'it''s, fine'", "c"}},
		{"deep nesting", "f(g(a,b),h(c)), d", []string{"f(g(a,b),h(c))", "d"}},
		{"single argument", "  a  ", []string{"a"}},
		{"trailing empty argument", "a,", []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitArguments(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArguments(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// Re-joining split arguments must reproduce the input up to whitespace trims.
func TestSplitArgumentsRoundTrip(t *testing.T) {
	inputs := []string{
		"a,b,c",
		"NVL(x,'a,b'),TO_CHAR(d,'YYYY,MM'),z",
		"'it''s',f(g(h(i)))",
	}
	for _, in := range inputs {
		parts := SplitArguments(in)
		for _, seg := range parts {
			if strings.TrimSpace(seg) != seg {
				t.Fatalf("SplitArguments(%q) returned untrimmed segment %q", in, seg)
			}
		}
		if joined := strings.Join(parts, ","); joined != in {
			t.Errorf("rejoin of SplitArguments(%q) = %q, want %q", in, joined, in)
		}
	}
}

func TestExtractExpressionBefore(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		opIdx     int
		wantExpr  string
		wantStart int
	}{
		{"identifier", "a || b", 2, "a", 0},
		{"dotted identifier", "s.t.col || b", 8, "s.t.col", 0},
		{"quoted literal", "'abc' || b", 6, "'abc'", 0},
		{"function call", "NVL(a,b) || c", 9, "NVL(a,b)", 0},
		{"nested call", "x, F(G(a)) || c", 11, "F(G(a))", 3},
		{"literal with escape", "'it''s' || c", 8, "'it''s'", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, start := ExtractExpressionBefore(tt.text, tt.opIdx)
			if expr != tt.wantExpr || start != tt.wantStart {
				t.Errorf("ExtractExpressionBefore(%q, %d) = (%q, %d), want (%q, %d)",
					tt.text, tt.opIdx, expr, start, tt.wantExpr, tt.wantStart)
			}
		})
	}
}

func TestExtractExpressionAfter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		opIdx    int
		wantExpr string
		wantEnd  int
	}{
		{"identifier", "a || b", 4, "b", 6},
		{"dotted identifier", "a || s.t.col", 4, "s.t.col", 12},
		{"quoted literal", "a || 'xyz'", 4, "'xyz'", 10},
		{"function call", "a || NVL(b,c)", 4, "NVL(b,c)", 13},
		{"literal with escape", "a || 'it''s' ...", 4, "'it''s'", 12},
		{"parenthesized group", "a || (b+c)", 4, "(b+c)", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, end := ExtractExpressionAfter(tt.text, tt.opIdx)
			if expr != tt.wantExpr || end != tt.wantEnd {
				t.Errorf("ExtractExpressionAfter(%q, %d) = (%q, %d), want (%q, %d)",
					tt.text, tt.opIdx, expr, end, tt.wantExpr, tt.wantEnd)
			}
		})
	}
}
