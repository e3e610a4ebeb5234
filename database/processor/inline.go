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
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

var callSiteRe = regexp.MustCompile(`\b([A-Za-z_][\w$#]*(?:\.[A-Za-z_][\w$#]*)?)\s*\(`)

// parenless target forms that must not gain a trailing ()
var parenlessFunctions = map[string]struct{}{
	"SYSDATE":           {},
	"SYSTIMESTAMP":      {},
	"CURRENT_TIMESTAMP": {},
	"CURRENT_DATE":      {},
}

// bare source tokens that appear without parentheses in oracle-family SQL
var bareSourceFunctions = []string{"SYSDATE", "SYSTIMESTAMP", "CURRENT_TIMESTAMP", "CURRENT_DATE"}

// RewriteInlineFunctions applies the function mapping registry to every
// matched call site, shared by the AST strategies and the fallback pipeline.
// The || splicing operator is normalized first so its operands are plain
// call sites by the time the registry pass runs, nested call arguments are
// rewritten before the enclosing call.
func RewriteInlineFunctions(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	sql = RewriteConcatOperators(sql, dialectS, dialectT, res)
	rewritten := rewriteCallSites(sql, dialectS, dialectT, res)
	return rewriteBareFunctions(rewritten, dialectS, dialectT, res)
}

func rewriteCallSites(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	registry := mapping.FunctionRules()
	locs := FindAllSubmatchOutsideLiterals(sql, callSiteRe)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	pos := 0
	for _, loc := range locs {
		if loc[0] < pos {
			continue
		}
		name := sql[loc[2]:loc[3]]
		rule := registry.Lookup(dialectS, dialectT, name)
		if rule == nil {
			continue
		}
		endIdx := stringutil.FindMatchingBracket(sql, loc[1])
		if endIdx == stringutil.BracketNotFound {
			continue
		}
		argsText := sql[loc[1] : endIdx-1]
		convertedArgs := rewriteCallSites(argsText, dialectS, dialectT, res)

		b.WriteString(sql[pos:loc[0]])
		b.WriteString(applyFunctionTransform(rule, name, convertedArgs, dialectS, dialectT))
		pos = endIdx

		if rule.FunctionNameT != "" && !strings.EqualFold(rule.FunctionNameS, rule.FunctionNameT) {
			res.AppendRule(fmt.Sprintf("function mapping: %s -> %s", stringutil.StringUpper(name), rule.FunctionNameT))
		}
		res.AppendWarning(rule.Warning)
	}
	b.WriteString(sql[pos:])
	return b.String()
}

func applyFunctionTransform(rule *mapping.FunctionMappingRule, name, args string, dialectS, dialectT constant.DialectType) string {
	if rule.FunctionNameT == "" && rule.ParameterTransform != mapping.ParameterTransformWrapWithFunction {
		// no mechanical equivalent, the call stays untouched and only the
		// attached warning surfaces
		return stringutil.StringBuilder(name, "(", args, ")")
	}

	switch rule.ParameterTransform {
	case mapping.ParameterTransformSwapFirstTwo:
		parts := stringutil.SplitArguments(args)
		if len(parts) >= 2 {
			parts[0], parts[1] = parts[1], parts[0]
		}
		return stringutil.StringBuilder(rule.FunctionNameT, "(", stringutil.StringJoin(parts, ", "), ")")

	case mapping.ParameterTransformDateFormatConvert:
		// translate quoted format literals in place, argument spacing is
		// preserved exactly
		return stringutil.StringBuilder(rule.FunctionNameT, "(", translateFormatLiterals(args, dialectS, dialectT), ")")

	case mapping.ParameterTransformToCaseWhen:
		return expandToCaseWhen(name, args)

	case mapping.ParameterTransformWrapWithFunction:
		if strings.Contains(rule.WrapTemplate, "%s") {
			return fmt.Sprintf(rule.WrapTemplate, args)
		}
		return rule.WrapTemplate

	default:
		if strings.TrimSpace(args) == "" {
			if strings.Contains(rule.FunctionNameT, "(") {
				return rule.FunctionNameT
			}
			if _, ok := parenlessFunctions[rule.FunctionNameT]; ok {
				return rule.FunctionNameT
			}
			return stringutil.StringBuilder(rule.FunctionNameT, "()")
		}
		return stringutil.StringBuilder(rule.FunctionNameT, "(", args, ")")
	}
}

// translateFormatLiterals maps every single-quoted literal in args through
// the date-format token translator, everything else is copied verbatim.
func translateFormatLiterals(args string, dialectS, dialectT constant.DialectType) string {
	var b strings.Builder
	for i := 0; i < len(args); i++ {
		c := args[i]
		if c != '\'' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(args) {
			if args[j] == '\'' {
				if j+1 < len(args) && args[j+1] == '\'' {
					j += 2
					continue
				}
				break
			}
			j++
		}
		if j >= len(args) {
			b.WriteString(args[i:])
			return b.String()
		}
		b.WriteByte('\'')
		b.WriteString(mapping.TranslateDateFormat(args[i+1:j], dialectS, dialectT))
		b.WriteByte('\'')
		i = j
	}
	return b.String()
}

// expandToCaseWhen rewrites the n-ary conditional functions DECODE, NVL2 and
// IF into an explicit CASE WHEN expression.
func expandToCaseWhen(name, args string) string {
	parts := stringutil.SplitArguments(args)
	upper := stringutil.StringUpper(stringutil.StripPrecision(name))

	switch upper {
	case "NVL2":
		if len(parts) == 3 {
			return fmt.Sprintf("CASE WHEN %s IS NOT NULL THEN %s ELSE %s END", parts[0], parts[1], parts[2])
		}
	case "IF":
		if len(parts) == 3 {
			return fmt.Sprintf("CASE WHEN %s THEN %s ELSE %s END", parts[0], parts[1], parts[2])
		}
	case "DECODE":
		if len(parts) >= 3 {
			expr := parts[0]
			var b strings.Builder
			b.WriteString("CASE")
			rest := parts[1:]
			for len(rest) >= 2 {
				fmt.Fprintf(&b, " WHEN %s = %s THEN %s", expr, rest[0], rest[1])
				rest = rest[2:]
			}
			if len(rest) == 1 {
				fmt.Fprintf(&b, " ELSE %s", rest[0])
			}
			b.WriteString(" END")
			return b.String()
		}
	}
	// unexpected arity, leave the call alone
	return stringutil.StringBuilder(name, "(", args, ")")
}

func rewriteBareFunctions(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	registry := mapping.FunctionRules()
	for _, source := range bareSourceFunctions {
		rule := registry.Lookup(dialectS, dialectT, source)
		if rule == nil || rule.FunctionNameT == "" || strings.EqualFold(rule.FunctionNameS, rule.FunctionNameT) {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + source + `\b(\s*\(\s*\))?`)
		replaced := false
		sql = ReplaceAllOutsideLiterals(sql, re, func(string) string {
			replaced = true
			return rule.FunctionNameT
		})
		if replaced {
			res.AppendRule(fmt.Sprintf("function mapping: %s -> %s", rule.FunctionNameS, rule.FunctionNameT))
			res.AppendWarning(rule.Warning)
		}
	}
	return sql
}

var datatypeTokenRe = `(?i)\b%s\b(\s*\(([^)]*)\))?`

// RewriteInlineDatatypes applies the datatype mapping registry over DDL
// text, including the precision-bucketed NUMBER rewrites.
func RewriteInlineDatatypes(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	registry := mapping.DatatypeRules()
	rules := registry.ListRules(dialectS, dialectT)
	// longer names substitute first so LONG RAW never collides with LONG
	sorted := make([]*mapping.DatatypeMappingRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].DatatypeNameS) > len(sorted[j].DatatypeNameS)
	})

	for _, rule := range sorted {
		if strings.EqualFold(rule.DatatypeNameS, rule.DatatypeNameT) && rule.PrecisionHandler == mapping.PrecisionHandlerPreserve {
			continue
		}
		pattern := fmt.Sprintf(datatypeTokenRe, strings.ReplaceAll(regexp.QuoteMeta(rule.DatatypeNameS), " ", `\s+`))
		re := regexp.MustCompile(pattern)
		replaced := false
		sql = ReplaceAllOutsideLiterals(sql, re, func(match string) string {
			out := applyDatatypeTransform(rule, match)
			if out != match {
				replaced = true
			}
			return out
		})
		if replaced {
			res.AppendRule(fmt.Sprintf("datatype mapping: %s -> %s", rule.DatatypeNameS, rule.DatatypeNameT))
			res.AppendWarning(rule.Warning)
		}
	}
	return sql
}

func applyDatatypeTransform(rule *mapping.DatatypeMappingRule, match string) string {
	precision, hasPrecision := stringutil.PrecisionDigits(match)

	switch rule.PrecisionHandler {
	case mapping.PrecisionHandlerDrop:
		return rule.DatatypeNameT
	case mapping.PrecisionHandlerMapToInteger:
		return mapNumericPrecision(rule, precision, hasPrecision)
	case mapping.PrecisionHandlerConvert:
		if hasPrecision {
			return stringutil.StringBuilder(rule.DatatypeNameT, "(", capFractionalPrecision(precision, rule.DialectTypeT), ")")
		}
		return rule.DatatypeNameT
	default: // PRESERVE
		if hasPrecision {
			return stringutil.StringBuilder(rule.DatatypeNameT, "(", precision, ")")
		}
		return rule.DatatypeNameT
	}
}

// mapNumericPrecision buckets an integer-like NUMBER precision into the
// target dialect's fixed-width integer family, scale-carrying or
// precision-free declarations keep the decimal target type.
func mapNumericPrecision(rule *mapping.DatatypeMappingRule, precision string, hasPrecision bool) string {
	if !hasPrecision || precision == "*" {
		return rule.DatatypeNameT
	}
	parts := strings.Split(precision, ",")
	p, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return stringutil.StringBuilder(rule.DatatypeNameT, "(", precision, ")")
	}
	if len(parts) > 1 {
		if s, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && s > 0 {
			return stringutil.StringBuilder(rule.DatatypeNameT, "(", precision, ")")
		}
	}

	if rule.DialectTypeT == constant.DialectTypeMySQL {
		switch {
		case p <= 3:
			return constant.BuildInMySQLDatatypeTinyint
		case p <= 5:
			return constant.BuildInMySQLDatatypeSmallint
		case p <= 9:
			return constant.BuildInMySQLDatatypeInt
		case p <= 18:
			return constant.BuildInMySQLDatatypeBigint
		default:
			return fmt.Sprintf("%s(%d,0)", rule.DatatypeNameT, p)
		}
	}
	switch {
	case p <= 4:
		return constant.BuildInPostgresDatatypeSmallint
	case p <= 9:
		return constant.BuildInPostgresDatatypeInteger
	case p <= 18:
		return constant.BuildInPostgresDatatypeBigint
	default:
		return fmt.Sprintf("%s(%d)", rule.DatatypeNameT, p)
	}
}

// capFractionalPrecision clamps fractional-second precision to the mysql
// DATETIME maximum of 6.
func capFractionalPrecision(precision string, dialectT constant.DialectType) string {
	if dialectT != constant.DialectTypeMySQL {
		return precision
	}
	if p, err := strconv.Atoi(strings.TrimSpace(precision)); err == nil && p > 6 {
		return "6"
	}
	return precision
}
