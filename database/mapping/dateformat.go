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
package mapping

import (
	"strings"

	"github.com/wentaojin/sqltrans/utils/constant"
)

// dateFormatToken pairs one oracle-style date-format token with its
// mysql-style percent token. The table is consulted longest-token-first so
// that HH24 is substituted before HH and YYYY before YY.
type dateFormatToken struct {
	Oracle string
	MySQL  string
}

// ordered longest-first, postgres reuses the oracle mini-language
var dateFormatTokens = []dateFormatToken{
	{"MONTH", "%M"},
	{"HH24", "%H"},
	{"HH12", "%h"},
	{"YYYY", "%Y"},
	{"MON", "%b"},
	{"DAY", "%W"},
	{"DDD", "%j"},
	{"FF6", "%f"},
	{"FF3", "%f"},
	{"AM", "%p"},
	{"PM", "%p"},
	{"YY", "%y"},
	{"MM", "%m"},
	{"DD", "%d"},
	{"DY", "%a"},
	{"HH", "%h"},
	{"MI", "%i"},
	{"SS", "%s"},
	{"FF", "%f"},
}

// TranslateDateFormat converts a date-format mini-language string between
// dialects. Oracle, Tibero and Postgres share one token family, MySQL uses
// percent tokens. Unknown characters pass through untouched.
func TranslateDateFormat(format string, dialectS, dialectT constant.DialectType) string {
	sourceIsMySQL := dialectS == constant.DialectTypeMySQL
	targetIsMySQL := dialectT == constant.DialectTypeMySQL

	if sourceIsMySQL == targetIsMySQL {
		return format
	}
	if sourceIsMySQL {
		return percentToOracleFormat(format)
	}
	// postgres format strings already carrying percent tokens are treated as
	// mysql-style and passed through
	if dialectS == constant.DialectTypePostgresql && strings.Contains(format, "%") {
		return format
	}
	return oracleToPercentFormat(format)
}

// oracleToPercentFormat substitutes oracle tokens longest-first in a single
// left-to-right scan, a substituted region is never rescanned.
func oracleToPercentFormat(format string) string {
	var b strings.Builder
	upper := strings.ToUpper(format)
	i := 0
	for i < len(format) {
		matched := false
		for _, tok := range dateFormatTokens {
			if strings.HasPrefix(upper[i:], tok.Oracle) {
				b.WriteString(tok.MySQL)
				i += len(tok.Oracle)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

func percentToOracleFormat(format string) string {
	var b strings.Builder
	i := 0
	for i < len(format) {
		if format[i] == '%' && i+1 < len(format) {
			pair := format[i : i+2]
			if tok, ok := percentTokenTable[pair]; ok {
				b.WriteString(tok)
				i += 2
				continue
			}
		}
		b.WriteByte(format[i])
		i++
	}
	return b.String()
}

// percentTokenTable resolves the mysql->oracle direction, %h deliberately
// maps back to HH12 and %p to AM.
var percentTokenTable = map[string]string{
	"%Y": "YYYY",
	"%y": "YY",
	"%M": "MONTH",
	"%b": "MON",
	"%m": "MM",
	"%d": "DD",
	"%j": "DDD",
	"%a": "DY",
	"%W": "DAY",
	"%H": "HH24",
	"%h": "HH12",
	"%i": "MI",
	"%s": "SS",
	"%S": "SS",
	"%f": "FF",
	"%p": "AM",
	"%T": "HH24:MI:SS",
}
