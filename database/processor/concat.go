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

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

// RewriteConcatOperators translates between the || string-splicing operator
// and the CONCAT function. MySQL reads a bare || as logical OR, so oracle,
// tibero and postgres sources must lose the operator on the way in, and a
// mysql CONCAT call becomes an operator chain on the way out. Dialect pairs
// that agree on the operator pass through unchanged.
func RewriteConcatOperators(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	switch {
	case usesSplicingOperator(dialectS) && dialectT == constant.DialectTypeMySQL:
		return rewriteSplicingToConcat(sql, dialectS, res)
	case dialectS == constant.DialectTypeMySQL && usesSplicingOperator(dialectT):
		return rewriteConcatToSplicing(sql, dialectT, res)
	}
	return sql
}

func usesSplicingOperator(dialect constant.DialectType) bool {
	return dialect.IsOracleCompatible() || dialect == constant.DialectTypePostgresql
}

// rewriteSplicingToConcat folds each || chain into one CONCAT call, the
// operand spans come from the expression-extraction scanners so literals,
// dotted identifiers and balanced call groups move as a whole.
func rewriteSplicingToConcat(sql string, dialectS constant.DialectType, res *ConversionResult) string {
	rewritten := false
	for {
		masked := MaskStringLiterals(sql)
		idx := strings.Index(masked, constant.StringSplicingSymbol)
		if idx < 0 {
			break
		}
		left, start := stringutil.ExtractExpressionBefore(sql, idx)
		if strings.TrimSpace(left) == "" {
			// operator with no left operand, not a splicing expression
			break
		}
		operands := []string{left}
		opIdx := idx
		end := idx
		bail := false
		for {
			operand, next := stringutil.ExtractExpressionAfter(sql, opIdx+len(constant.StringSplicingSymbol))
			if strings.TrimSpace(operand) == "" {
				bail = true
				break
			}
			operands = append(operands, operand)
			end = next
			j := next
			for j < len(sql) && (sql[j] == ' ' || sql[j] == '\t' || sql[j] == '\n' || sql[j] == '\r') {
				j++
			}
			if j+1 < len(masked) && masked[j] == '|' && masked[j+1] == '|' {
				opIdx = j
				continue
			}
			break
		}
		if bail {
			break
		}
		sql = stringutil.StringBuilder(sql[:start],
			"CONCAT(", stringutil.StringJoin(operands, ", "), ")", sql[end:])
		rewritten = true
	}
	if rewritten {
		res.AppendRule("string concatenation rewritten: || -> CONCAT")
		if dialectS.IsOracleCompatible() {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindLossyConversion,
				"oracle || treats NULL as an empty string while mysql CONCAT returns NULL when any operand is NULL",
				"wrap nullable operands in IFNULL(expr, '')"))
		}
	}
	return sql
}

// CONCAT_WS never matches, the underscore continues the word
var concatCallRe = regexp.MustCompile(`(?i)\bCONCAT\s*\(`)

// rewriteConcatToSplicing unrolls CONCAT calls into || chains, nested calls
// collapse over successive passes.
func rewriteConcatToSplicing(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	rewritten := false
	for {
		loc := concatCallRe.FindStringIndex(MaskStringLiterals(sql))
		if loc == nil {
			break
		}
		end := stringutil.FindMatchingBracket(sql, loc[1])
		if end == stringutil.BracketNotFound {
			break
		}
		args := stringutil.SplitArguments(sql[loc[1] : end-1])
		if len(args) < 2 {
			break
		}
		sql = stringutil.StringBuilder(sql[:loc[0]], stringutil.StringJoin(args, " || "), sql[end:])
		rewritten = true
	}
	if rewritten {
		res.AppendRule("string concatenation rewritten: CONCAT -> ||")
		if dialectT.IsOracleCompatible() {
			res.AppendWarning(mapping.NewInfoWarning(constant.WarningKindLossyConversion,
				"mysql CONCAT returns NULL when any operand is NULL while oracle || treats NULL as an empty string"))
		}
	}
	return sql
}
