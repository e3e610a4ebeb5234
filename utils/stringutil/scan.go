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
	"strings"
	"unicode"
)

// BracketNotFound is returned by FindMatchingBracket when the input runs out
// before the opening parenthesis is balanced.
const BracketNotFound = -1

// FindMatchingBracket scans text forward from start, which must point just
// past an opening parenthesis, and returns the index just past the matching
// close parenthesis. Parentheses inside single- or double-quoted regions do
// not affect nesting depth, the '' escaped-quote convention inside single
// quotes is honored.
func FindMatchingBracket(text string, start int) int {
	depth := 1
	inSingle := false
	inDouble := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inSingle {
			if c == '\'' {
				// '' escapes a quote inside a single-quoted literal
				if i+1 < len(text) && text[i+1] == '\'' {
					i++
					continue
				}
				inSingle = false
			}
			continue
		}
		if inDouble {
			if c == '"' {
				inDouble = false
			}
			continue
		}
		switch c {
		case '\'':
			inSingle = true
		case '"':
			inDouble = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return BracketNotFound
}

// SplitArguments splits a function argument list on top-level commas only,
// commas nested inside parentheses or string literals stay within their
// argument. Every returned argument is whitespace-trimmed.
func SplitArguments(argsText string) []string {
	var (
		args     []string
		current  strings.Builder
		depth    int
		inSingle bool
		inDouble bool
	)
	for i := 0; i < len(argsText); i++ {
		c := argsText[i]
		if inSingle {
			current.WriteByte(c)
			if c == '\'' {
				if i+1 < len(argsText) && argsText[i+1] == '\'' {
					current.WriteByte(argsText[i+1])
					i++
					continue
				}
				inSingle = false
			}
			continue
		}
		if inDouble {
			current.WriteByte(c)
			if c == '"' {
				inDouble = false
			}
			continue
		}
		switch c {
		case '\'':
			inSingle = true
			current.WriteByte(c)
		case '"':
			inDouble = true
			current.WriteByte(c)
		case '(':
			depth++
			current.WriteByte(c)
		case ')':
			depth--
			current.WriteByte(c)
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteByte(c)
			}
		default:
			current.WriteByte(c)
		}
	}
	if strings.TrimSpace(current.String()) != "" || len(args) > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}

// ExtractExpressionBefore walks left from operatorIndex skipping whitespace
// and returns the minimal expression span adjacent to a binary operator
// together with its start index. The span is either a quoted literal, a
// balanced parenthesized group with an optional function-name prefix, or a
// dotted identifier.
func ExtractExpressionBefore(text string, operatorIndex int) (string, int) {
	end := operatorIndex
	for end > 0 && unicode.IsSpace(rune(text[end-1])) {
		end--
	}
	if end == 0 {
		return "", 0
	}

	// quoted literal
	if text[end-1] == '\'' {
		i := end - 2
		for i >= 0 {
			if text[i] == '\'' {
				if i-1 >= 0 && text[i-1] == '\'' {
					i -= 2
					continue
				}
				return text[i:end], i
			}
			i--
		}
		return text[:end], 0
	}

	// parenthesized group or function call
	if text[end-1] == ')' {
		depth := 0
		inSingle := false
		i := end - 1
		for i >= 0 {
			c := text[i]
			if inSingle {
				if c == '\'' {
					inSingle = false
				}
				i--
				continue
			}
			switch c {
			case '\'':
				inSingle = true
			case ')':
				depth++
			case '(':
				depth--
				if depth == 0 {
					// pull in a leading function name if present
					j := i
					for j > 0 && isIdentChar(text[j-1]) {
						j--
					}
					return text[j:end], j
				}
			}
			i--
		}
		return text[:end], 0
	}

	// dotted identifier
	i := end
	for i > 0 && (isIdentChar(text[i-1]) || text[i-1] == '.') {
		i--
	}
	return text[i:end], i
}

// ExtractExpressionAfter is the rightward symmetric of
// ExtractExpressionBefore, operatorIndex points just past the operator. The
// returned index is the position just past the extracted expression.
func ExtractExpressionAfter(text string, operatorIndex int) (string, int) {
	start := operatorIndex
	for start < len(text) && unicode.IsSpace(rune(text[start])) {
		start++
	}
	if start >= len(text) {
		return "", len(text)
	}

	// quoted literal
	if text[start] == '\'' {
		i := start + 1
		for i < len(text) {
			if text[i] == '\'' {
				if i+1 < len(text) && text[i+1] == '\'' {
					i += 2
					continue
				}
				return text[start : i+1], i + 1
			}
			i++
		}
		return text[start:], len(text)
	}

	// identifier, possibly dotted, possibly a function call, a bare
	// parenthesized group is the empty-name case of the call branch
	i := start
	for i < len(text) && (isIdentChar(text[i]) || text[i] == '.') {
		i++
	}
	if i < len(text) && text[i] == '(' {
		end := FindMatchingBracket(text, i+1)
		if end == BracketNotFound {
			return text[start:], len(text)
		}
		return text[start:end], end
	}
	if i > start {
		return text[start:i], i
	}
	return text[start : start+1], start + 1
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c == '#' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
