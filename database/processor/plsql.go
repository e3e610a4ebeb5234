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
	"strings"

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

var plsqlProbeRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bSQL%(ROWCOUNT|FOUND|NOTFOUND)\b`),
	regexp.MustCompile(`(?i)\bPRAGMA\s+(AUTONOMOUS_TRANSACTION|EXCEPTION_INIT)\b`),
	regexp.MustCompile(`(?i)\bPIPE\s+ROW\b`),
	regexp.MustCompile(`(?i)\b(SYS_REFCURSOR|REF\s+CURSOR)\b`),
	regexp.MustCompile(`(?i)\b(EXIT|CONTINUE)\s+WHEN\b`),
	regexp.MustCompile(`(?i)\bGOTO\b`),
	regexp.MustCompile(`(?i)\bTYPE\s+[\w$#]+\s+IS\s+(TABLE\s+OF|VARRAY|RECORD)\b`),
	regexp.MustCompile(`(?i)\bRAISE\s+NO_DATA_FOUND\b`),
	regexp.MustCompile(`(?i)\bRETURNING\s+.+\s+INTO\b`),
}

// ConvertProceduralBody rewrites pl/sql-only constructs inside procedural
// text. Statements without procedural markers pass through unchanged.
func ConvertProceduralBody(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}
	masked := MaskStringLiterals(sql)
	matched := false
	for _, re := range plsqlProbeRes {
		if re.MatchString(masked) {
			matched = true
			break
		}
	}
	if !matched {
		return sql
	}

	sql = rewriteImplicitCursorAttrs(sql, dialectT, res)
	sql = rewritePragmas(sql, res)
	sql = rewritePipeRow(sql, dialectT, res)
	sql = rewriteCollectionTypes(sql, dialectT, res)
	sql = rewriteRefCursors(sql, dialectT, res)
	sql = rewriteLoopControl(sql, dialectT, res)
	sql = rewriteGoto(sql, res)
	sql = rewriteRaiseNoDataFound(sql, dialectT, res)
	sql = checkReturningInto(sql, dialectT, res)
	return sql
}

var sqlRowcountRe = regexp.MustCompile(`(?i)\bSQL%ROWCOUNT\b`)
var sqlFoundRe = regexp.MustCompile(`(?i)\bSQL%FOUND\b`)
var sqlNotFoundRe = regexp.MustCompile(`(?i)\bSQL%NOTFOUND\b`)

func rewriteImplicitCursorAttrs(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	masked := MaskStringLiterals(sql)
	if !sqlRowcountRe.MatchString(masked) && !sqlFoundRe.MatchString(masked) && !sqlNotFoundRe.MatchString(masked) {
		return sql
	}

	if dialectT == constant.DialectTypeMySQL {
		sql = ReplaceAllOutsideLiterals(sql, sqlRowcountRe, func(string) string { return "ROW_COUNT()" })
		sql = ReplaceAllOutsideLiterals(sql, sqlFoundRe, func(string) string { return "(ROW_COUNT() > 0)" })
		sql = ReplaceAllOutsideLiterals(sql, sqlNotFoundRe, func(string) string { return "(ROW_COUNT() = 0)" })
		res.AppendRule("implicit cursor attributes rewritten over ROW_COUNT()")
		return sql
	}

	sql = ReplaceAllOutsideLiterals(sql, sqlFoundRe, func(string) string { return "FOUND" })
	sql = ReplaceAllOutsideLiterals(sql, sqlNotFoundRe, func(string) string { return "NOT FOUND" })
	if sqlRowcountRe.MatchString(MaskStringLiterals(sql)) {
		sql = ReplaceAllOutsideLiterals(sql, sqlRowcountRe, func(string) string { return "v_sql_rowcount" })
		res.AppendWarning(mapping.NewWarning(constant.WarningKindBestEffortEmulation,
			"SQL%ROWCOUNT became the variable v_sql_rowcount, declare it and add GET DIAGNOSTICS v_sql_rowcount = ROW_COUNT after the preceding DML statement", ""))
	}
	res.AppendRule("implicit cursor attributes rewritten for plpgsql")
	return sql
}

var pragmaRe = regexp.MustCompile(`(?im)^(\s*)(PRAGMA\s+(AUTONOMOUS_TRANSACTION|EXCEPTION_INIT)\s*[^;\n]*;?)`)

func rewritePragmas(sql string, res *ConversionResult) string {
	rewritten := false
	autonomous := false
	sql = ReplaceAllOutsideLiterals(sql, pragmaRe, func(match string) string {
		rewritten = true
		if strings.Contains(stringutil.StringUpper(match), "AUTONOMOUS_TRANSACTION") {
			autonomous = true
		}
		trimmed := strings.TrimLeft(match, " \t")
		indent := match[:len(match)-len(trimmed)]
		return stringutil.StringBuilder(indent, "-- ", trimmed)
	})
	if rewritten {
		res.AppendRule("PRAGMA directives commented out")
		if autonomous {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				"PRAGMA AUTONOMOUS_TRANSACTION has no direct equivalent, emulate the separate transaction via dblink or an application-side connection", ""))
		} else {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				"PRAGMA EXCEPTION_INIT has no direct equivalent, map the error code inside the handler body", ""))
		}
	}
	return sql
}

var pipeRowRe = regexp.MustCompile(`(?i)\bPIPE\s+ROW\s*\(`)

func rewritePipeRow(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	masked := MaskStringLiterals(sql)
	locs := pipeRowRe.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	if dialectT == constant.DialectTypeMySQL {
		res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindNoEquivalent,
			"PIPE ROW pipelined table functions have no mysql equivalent, restructure as a temporary table populated by a procedure", ""))
		return sql
	}
	var b strings.Builder
	pos := 0
	for _, loc := range locs {
		if loc[0] < pos {
			continue
		}
		end := stringutil.FindMatchingBracket(sql, loc[1])
		if end == stringutil.BracketNotFound {
			continue
		}
		b.WriteString(sql[pos:loc[0]])
		b.WriteString(stringutil.StringBuilder("RETURN NEXT ", strings.TrimSpace(sql[loc[1]:end-1])))
		pos = end
	}
	b.WriteString(sql[pos:])
	res.AppendRule("PIPE ROW rewritten as RETURN NEXT")
	return b.String()
}

var collectionTypeRe = regexp.MustCompile(`(?im)^(\s*)(TYPE\s+([\w$#]+)\s+IS\s+(TABLE\s+OF\s+([^;\n]+?)(\s+INDEX\s+BY\s+[^;\n]+)?|VARRAY\s*\([^)]*\)\s+OF\s+[^;\n]+|RECORD\s*\([^;]*\))\s*;)`)

func rewriteCollectionTypes(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	rewritten := false
	sql = ReplaceAllOutsideLiterals(sql, collectionTypeRe, func(match string) string {
		rewritten = true
		trimmed := strings.TrimLeft(match, " \t")
		indent := match[:len(match)-len(trimmed)]
		return stringutil.StringBuilder(indent, "-- ", trimmed)
	})
	if !rewritten {
		return sql
	}
	res.AppendRule("collection type declarations commented out")
	if dialectT == constant.DialectTypePostgresql {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
			"TABLE OF/VARRAY declarations map to postgres array types (elem[]) and RECORD to a composite type, declare them at schema level", ""))
	} else {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindNoEquivalent,
			"collection type declarations have no mysql equivalent, use temporary tables instead", ""))
	}
	return sql
}

var refCursorRe = regexp.MustCompile(`(?i)\b(SYS_REFCURSOR|REF\s+CURSOR)\b`)

func rewriteRefCursors(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	if !refCursorRe.MatchString(MaskStringLiterals(sql)) {
		return sql
	}
	if dialectT == constant.DialectTypePostgresql {
		sql = ReplaceAllOutsideLiterals(sql, refCursorRe, func(string) string { return "refcursor" })
		res.AppendRule("REF CURSOR types rewritten as refcursor")
		return sql
	}
	res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindNoEquivalent,
		"REF CURSOR has no mysql equivalent, return result sets directly from the procedure instead", ""))
	return sql
}

var exitWhenRe = regexp.MustCompile(`(?i)\bEXIT\s+WHEN\s+([^;]+);`)
var continueWhenRe = regexp.MustCompile(`(?i)\bCONTINUE\s+WHEN\s+([^;]+);`)

// rewriteLoopControl handles EXIT WHEN/CONTINUE WHEN, valid plpgsql already,
// mysql needs the IF ... LEAVE/ITERATE form with a loop label.
func rewriteLoopControl(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	if dialectT != constant.DialectTypeMySQL {
		return sql
	}
	masked := MaskStringLiterals(sql)
	if !exitWhenRe.MatchString(masked) && !continueWhenRe.MatchString(masked) {
		return sql
	}
	sql = ReplaceAllOutsideLiterals(sql, exitWhenRe, func(match string) string {
		cond := strings.TrimSpace(exitWhenRe.FindStringSubmatch(match)[1])
		return fmt.Sprintf("IF %s THEN LEAVE cur_loop; END IF;", cond)
	})
	sql = ReplaceAllOutsideLiterals(sql, continueWhenRe, func(match string) string {
		cond := strings.TrimSpace(continueWhenRe.FindStringSubmatch(match)[1])
		return fmt.Sprintf("IF %s THEN ITERATE cur_loop; END IF;", cond)
	})
	res.AppendRule("EXIT WHEN/CONTINUE WHEN rewritten as IF ... LEAVE/ITERATE")
	res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
		"LEAVE/ITERATE need a loop label, the rewrite assumes the enclosing loop is labeled cur_loop", ""))
	return sql
}

var gotoRe = regexp.MustCompile(`(?i)\bGOTO\s+[\w$#]+`)

func rewriteGoto(sql string, res *ConversionResult) string {
	if !gotoRe.MatchString(MaskStringLiterals(sql)) {
		return sql
	}
	res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindNoEquivalent,
		"GOTO has no equivalent outside pl/sql, restructure the control flow with loops or exception handlers", ""))
	return sql
}

var raiseNoDataFoundRe = regexp.MustCompile(`(?i)\bRAISE\s+NO_DATA_FOUND\b`)

func rewriteRaiseNoDataFound(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	if !raiseNoDataFoundRe.MatchString(MaskStringLiterals(sql)) {
		return sql
	}
	replacement := "SIGNAL SQLSTATE '02000' SET MESSAGE_TEXT = 'no data found'"
	if dialectT == constant.DialectTypePostgresql {
		replacement = "RAISE EXCEPTION 'no data found' USING ERRCODE = 'P0002'"
	}
	sql = ReplaceAllOutsideLiterals(sql, raiseNoDataFoundRe, func(string) string { return replacement })
	res.AppendRule("RAISE NO_DATA_FOUND rewritten as a native error signal")
	return sql
}

var returningIntoRe = regexp.MustCompile(`(?i)\bRETURNING\s+[^;]+?\s+INTO\b`)

func checkReturningInto(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	if dialectT != constant.DialectTypeMySQL {
		// postgres supports RETURNING ... INTO in plpgsql, keep it
		return sql
	}
	if !returningIntoRe.MatchString(MaskStringLiterals(sql)) {
		return sql
	}
	res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindNoEquivalent,
		"RETURNING ... INTO has no mysql equivalent, use LAST_INSERT_ID() or a follow-up SELECT", ""))
	return sql
}
