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
	"regexp"
	"strings"
)

// MaskStringLiterals returns a copy of sql where every character inside a
// single- or double-quoted literal is replaced by 'x'. Length and quote
// positions are preserved, so match indexes found on the masked text apply
// to the original. The '' escape convention is honored.
func MaskStringLiterals(sql string) string {
	b := []byte(sql)
	inSingle := false
	inDouble := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inSingle {
			if c == '\'' {
				if i+1 < len(b) && b[i+1] == '\'' {
					b[i] = 'x'
					b[i+1] = 'x'
					i++
					continue
				}
				inSingle = false
				continue
			}
			b[i] = 'x'
			continue
		}
		if inDouble {
			if c == '"' {
				inDouble = false
				continue
			}
			b[i] = 'x'
			continue
		}
		switch c {
		case '\'':
			inSingle = true
		case '"':
			inDouble = true
		}
	}
	return string(b)
}

// ReplaceAllOutsideLiterals applies re over the literal-masked text and
// substitutes each match in the original SQL, string literal content can
// therefore never match.
func ReplaceAllOutsideLiterals(sql string, re *regexp.Regexp, repl func(match string) string) string {
	masked := MaskStringLiterals(sql)
	locs := re.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(sql[last:loc[0]])
		b.WriteString(repl(sql[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(sql[last:])
	return b.String()
}

// FindAllSubmatchOutsideLiterals runs re over the literal-masked text and
// returns submatch index pairs valid against the original SQL.
func FindAllSubmatchOutsideLiterals(sql string, re *regexp.Regexp) [][]int {
	return re.FindAllStringSubmatchIndex(MaskStringLiterals(sql), -1)
}

// ContainsKeyword probes for a whole word outside string literals, case
// insensitive. The probe is cheap and intended for converter dispatch.
func ContainsKeyword(sql, keyword string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.MatchString(MaskStringLiterals(sql))
}

var blankLinesRe = regexp.MustCompile(`\n[ \t]*\n([ \t]*\n)+`)

// NormalizeBlankLines collapses runs of two or more blank lines to one.
func NormalizeBlankLines(sql string) string {
	return blankLinesRe.ReplaceAllString(sql, "\n\n")
}
