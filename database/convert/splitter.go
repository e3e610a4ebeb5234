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
	"strings"
)

// SplitStatements splits multi-statement input on top-level semicolons.
// Quoted regions are honored, a backslash-escaped character inside a quoted
// region is skipped as a pair, and empty segments are discarded.
func SplitStatements(sql string) []string {
	var statements []string
	var b strings.Builder
	inSingle := false
	inDouble := false

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if (inSingle || inDouble) && c == '\\' && i+1 < len(sql) {
			b.WriteByte(c)
			b.WriteByte(sql[i+1])
			i++
			continue
		}
		switch c {
		case '\'':
			if !inDouble {
				if inSingle && i+1 < len(sql) && sql[i+1] == '\'' {
					b.WriteString("''")
					i++
					continue
				}
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case ';':
			if !inSingle && !inDouble {
				if segment := strings.TrimSpace(b.String()); segment != "" {
					statements = append(statements, segment)
				}
				b.Reset()
				continue
			}
		}
		b.WriteByte(c)
	}
	if segment := strings.TrimSpace(b.String()); segment != "" {
		statements = append(statements, segment)
	}
	return statements
}
