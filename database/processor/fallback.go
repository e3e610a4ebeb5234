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

// FallbackConvert runs the regex/structural pipeline over a statement the
// general grammar rejected. Stages are pure string transforms composed in a
// fixed order, converters that do not recognize the input pass it through
// unchanged.
func FallbackConvert(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	sql = ConvertTrigger(sql, dialectS, dialectT, res)
	sql = ConvertPackage(sql, dialectS, dialectT, res)
	sql = ConvertMaterializedView(sql, dialectS, dialectT, res)
	sql = ConvertPartition(sql, dialectS, dialectT, res)
	sql = ConvertProceduralBody(sql, dialectS, dialectT, res)
	sql = ConvertOracleCalls(sql, dialectS, dialectT, res)
	sql = ConvertHints(sql, dialectS, dialectT, res)
	sql = StripOracleDDLOptions(sql, dialectS, dialectT, res)
	sql = CollapseSchemaQualifiers(sql, dialectS, dialectT, res)
	sql = RewriteCommentOn(sql, dialectS, dialectT, res)
	sql = RewriteInlineFunctions(sql, dialectS, dialectT, res)
	if isDDLStatement(sql) {
		sql = RewriteInlineDatatypes(sql, dialectS, dialectT, res)
	}
	return NormalizeBlankLines(sql)
}

var ddlProbeRe = regexp.MustCompile(`(?im)^\s*(CREATE|ALTER|DECLARE)\b`)

func isDDLStatement(sql string) bool {
	return ddlProbeRe.MatchString(sql) || ContainsKeyword(sql, "DECLARE")
}

// oracle physical-attribute clauses that have no counterpart outside oracle,
// removal is cosmetic and logged at INFO severity
var oracleDDLOptionRes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"TABLESPACE", regexp.MustCompile(`(?i)\s*\bTABLESPACE\s+[A-Za-z_][\w$#]*`)},
	{"PCTFREE", regexp.MustCompile(`(?i)\s*\bPCTFREE\s+\d+`)},
	{"PCTUSED", regexp.MustCompile(`(?i)\s*\bPCTUSED\s+\d+`)},
	{"INITRANS", regexp.MustCompile(`(?i)\s*\bINITRANS\s+\d+`)},
	{"MAXTRANS", regexp.MustCompile(`(?i)\s*\bMAXTRANS\s+\d+`)},
	{"LOGGING", regexp.MustCompile(`(?i)\s*\b(NOLOGGING|LOGGING)\b`)},
	{"COMPRESS", regexp.MustCompile(`(?i)\s*\b(NOCOMPRESS|COMPRESS(\s+BASIC|\s+FOR\s+OLTP)?)\b`)},
	{"CACHE", regexp.MustCompile(`(?i)\s*\b(NOCACHE|CACHE)\b`)},
	{"PARALLEL", regexp.MustCompile(`(?i)\s*\b(NOPARALLEL|PARALLEL(\s+\d+)?)\b`)},
	{"MONITORING", regexp.MustCompile(`(?i)\s*\b(NOMONITORING|MONITORING)\b`)},
	{"ROWDEPENDENCIES", regexp.MustCompile(`(?i)\s*\b(NOROWDEPENDENCIES|ROWDEPENDENCIES)\b`)},
	{"SEGMENT CREATION", regexp.MustCompile(`(?i)\s*\bSEGMENT\s+CREATION\s+(IMMEDIATE|DEFERRED)\b`)},
	{"ROW MOVEMENT", regexp.MustCompile(`(?i)\s*\b(ENABLE|DISABLE)\s+ROW\s+MOVEMENT\b`)},
	{"FLASHBACK ARCHIVE", regexp.MustCompile(`(?i)\s*\b(NO\s+)?FLASHBACK\s+ARCHIVE(\s+[A-Za-z_][\w$#]*)?`)},
	{"SECUREFILE", regexp.MustCompile(`(?i)\s*\b(SECUREFILE|BASICFILE)\b`)},
	{"constraint ENABLE/DISABLE", regexp.MustCompile(`(?i)\s*\b(ENABLE|DISABLE)\s+(VALIDATE|NOVALIDATE)\b|\s*\b(ENABLE|DISABLE)\b(?:\s*$|(\s*[,;)]))`)},
}

var storageClauseRe = regexp.MustCompile(`(?i)\bSTORAGE\s*\(`)

var indexScopeRe = regexp.MustCompile(`(?i)\s*\b(LOCAL|GLOBAL)\b`)

var createIndexRe = regexp.MustCompile(`(?i)^\s*CREATE\s+(UNIQUE\s+|BITMAP\s+)?INDEX\b`)

// StripOracleDDLOptions removes the oracle-only physical attributes a
// mysql/postgres DDL statement cannot carry.
func StripOracleDDLOptions(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}

	sql = stripStorageClauses(sql, res)

	for _, opt := range oracleDDLOptionRes {
		stripped := false
		sql = ReplaceAllOutsideLiterals(sql, opt.re, func(match string) string {
			stripped = true
			// the constraint alternative may swallow its separator, keep it
			if t := strings.TrimSpace(match); t != "" {
				switch t[len(t)-1] {
				case ',', ';', ')':
					return string(t[len(t)-1])
				}
			}
			return ""
		})
		if stripped {
			res.AppendRule(fmt.Sprintf("oracle ddl option removed: %s", opt.name))
			res.AppendWarning(mapping.NewInfoWarning(constant.WarningKindCosmeticRemoval,
				fmt.Sprintf("oracle storage/physical option %s has no %s equivalent and was removed", opt.name, dialectT)))
		}
	}

	if createIndexRe.MatchString(sql) {
		stripped := false
		sql = ReplaceAllOutsideLiterals(sql, indexScopeRe, func(string) string {
			stripped = true
			return ""
		})
		if stripped {
			res.AppendRule("oracle ddl option removed: LOCAL/GLOBAL index scope")
			res.AppendWarning(mapping.NewInfoWarning(constant.WarningKindCosmeticRemoval,
				fmt.Sprintf("LOCAL/GLOBAL index partition scope has no %s equivalent and was removed", dialectT)))
		}
	}

	return collapseSpacerRuns(sql)
}

// stripStorageClauses removes balanced STORAGE(...) groups, the clause body
// may nest parentheses so the bracket matcher walks it rather than a regex.
func stripStorageClauses(sql string, res *ConversionResult) string {
	for {
		loc := storageClauseRe.FindStringIndex(MaskStringLiterals(sql))
		if loc == nil {
			return sql
		}
		end := stringutil.FindMatchingBracket(sql, loc[1])
		if end == stringutil.BracketNotFound {
			return sql
		}
		sql = sql[:loc[0]] + sql[end:]
		res.AppendRule("oracle ddl option removed: STORAGE")
		res.AppendWarning(mapping.NewInfoWarning(constant.WarningKindCosmeticRemoval,
			"oracle STORAGE clause has no equivalent and was removed"))
	}
}

var spacerRunRe = regexp.MustCompile(`[ \t]{2,}`)
var trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)

func collapseSpacerRuns(sql string) string {
	sql = trailingSpaceRe.ReplaceAllString(sql, "\n")
	return spacerRunRe.ReplaceAllString(sql, " ")
}

var schemaQualifierRe = regexp.MustCompile(`(?i)\b(FROM|JOIN|INTO|UPDATE|TABLE|INDEX\s+\w+\s+ON)\s+[A-Za-z_][\w$#]*\s*\.\s*([A-Za-z_"])`)

// CollapseSchemaQualifiers drops the owning-schema prefix from object
// references when the target catalog model treats schemas as databases.
func CollapseSchemaQualifiers(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if dialectT != constant.DialectTypeMySQL || !dialectS.IsOracleCompatible() {
		return sql
	}
	collapsed := false
	sql = ReplaceAllOutsideLiterals(sql, schemaQualifierRe, func(match string) string {
		dot := strings.LastIndex(match, ".")
		if dot < 0 {
			return match
		}
		head := match[:dot]
		tail := strings.TrimLeft(match[dot+1:], " \t\r\n")
		idx := strings.LastIndexAny(strings.TrimRight(head, " \t\r\n"), " \t\n")
		if idx < 0 {
			return match
		}
		collapsed = true
		return head[:idx+1] + tail
	})
	if collapsed {
		res.AppendRule("schema qualifier collapsed for mysql")
		res.AppendWarning(mapping.NewInfoWarning(constant.WarningKindCosmeticRemoval,
			"schema-qualified object names were collapsed, mysql schemas are databases and the prefix rarely carries over"))
	}
	return sql
}

var commentOnRe = regexp.MustCompile(`(?i)^\s*COMMENT\s+ON\s+(COLUMN|TABLE)\s+[^;]*`)

// RewriteCommentOn removes COMMENT ON statements for targets without that
// statement form.
func RewriteCommentOn(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if dialectT != constant.DialectTypeMySQL {
		return sql
	}
	if !commentOnRe.MatchString(MaskStringLiterals(sql)) {
		return sql
	}
	res.AppendRule("COMMENT ON statement removed for mysql")
	res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
		"mysql has no COMMENT ON statement, re-add the comment via ALTER TABLE ... COMMENT or a column COMMENT clause", ""))
	return ""
}
