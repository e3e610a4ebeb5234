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
)

// clause keywords that open a new line at paren depth zero
var formatBreakWords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "HAVING": {}, "VALUES": {},
	"LIMIT": {}, "OFFSET": {}, "UNION": {}, "INTERSECT": {}, "MINUS": {},
	"EXCEPT": {}, "SET": {},
}

// join qualifiers, the break lands on the qualifier rather than on JOIN
var joinQualifiers = map[string]struct{}{
	"LEFT": {}, "RIGHT": {}, "INNER": {}, "FULL": {}, "CROSS": {}, "NATURAL": {},
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '$' || c == '#'
}

// nextWordUpper returns the upper-cased identifier word starting at or
// after pos, skipping whitespace.
func nextWordUpper(sql string, pos int) string {
	for pos < len(sql) && (sql[pos] == ' ' || sql[pos] == '\t' || sql[pos] == '\n' || sql[pos] == '\r') {
		pos++
	}
	end := pos
	for end < len(sql) && isIdentByte(sql[end]) {
		end++
	}
	return strings.ToUpper(sql[pos:end])
}

// FormatStatement pretty-prints converted SQL by breaking the line before
// each top-level clause keyword. Literals, quoted identifiers and
// parenthesized subexpressions are left untouched.
func FormatStatement(sql string) string {
	out := make([]byte, 0, len(sql)+32)
	depth := 0
	lastWord := ""
	n := len(sql)
	i := 0
	for i < n {
		c := sql[i]
		switch c {
		case '\'':
			j := i + 1
			for j < n {
				if sql[j] == '\\' && j+1 < n {
					j += 2
					continue
				}
				if sql[j] == '\'' {
					if j+1 < n && sql[j+1] == '\'' {
						j += 2
						continue
					}
					j++
					break
				}
				j++
			}
			out = append(out, sql[i:j]...)
			i = j
		case '"':
			j := i + 1
			for j < n && sql[j] != '"' {
				j++
			}
			if j < n {
				j++
			}
			out = append(out, sql[i:j]...)
			i = j
		case '(':
			depth++
			out = append(out, c)
			i++
		case ')':
			if depth > 0 {
				depth--
			}
			out = append(out, c)
			i++
		case ';':
			out = append(out, c)
			lastWord = ""
			i++
		default:
			if !isIdentByte(c) {
				out = append(out, c)
				i++
				continue
			}
			j := i
			for j < n && isIdentByte(sql[j]) {
				j++
			}
			word := sql[i:j]
			upper := strings.ToUpper(word)
			if depth == 0 && lastWord != "" && breaksLine(upper, lastWord, sql, j) {
				for len(out) > 0 && (out[len(out)-1] == ' ' || out[len(out)-1] == '\t') {
					out = out[:len(out)-1]
				}
				if len(out) > 0 && out[len(out)-1] != '\n' {
					out = append(out, '\n')
				}
			}
			out = append(out, word...)
			if depth == 0 {
				lastWord = upper
			}
			i = j
		}
	}
	return string(out)
}

func breaksLine(word, lastWord, sql string, wordEnd int) bool {
	if _, ok := formatBreakWords[word]; ok {
		return true
	}
	switch {
	case word == "GROUP" || word == "ORDER":
		return nextWordUpper(sql, wordEnd) == "BY"
	case word == "JOIN":
		_, qualified := joinQualifiers[lastWord]
		return !qualified && lastWord != "OUTER"
	default:
		if _, ok := joinQualifiers[word]; ok {
			next := nextWordUpper(sql, wordEnd)
			return next == "JOIN" || next == "OUTER"
		}
	}
	return false
}

// AnnotateAppliedRules prefixes the converted output with a comment block
// naming every rule the conversion applied.
func AnnotateAppliedRules(sql string, rules []string) string {
	if len(rules) == 0 {
		return sql
	}
	var b strings.Builder
	b.WriteString("/* conversion applied rules:\n")
	for _, rule := range rules {
		b.WriteString("   - ")
		b.WriteString(rule)
		b.WriteString("\n")
	}
	b.WriteString("*/\n")
	b.WriteString(sql)
	return b.String()
}
