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

// HintType tags a parsed optimizer hint.
type HintType string

const (
	HintTypeIndex     HintType = "INDEX"
	HintTypeNoIndex   HintType = "NO_INDEX"
	HintTypeLeading   HintType = "LEADING"
	HintTypeOrdered   HintType = "ORDERED"
	HintTypeParallel  HintType = "PARALLEL"
	HintTypeFull      HintType = "FULL"
	HintTypeUseNL     HintType = "USE_NL"
	HintTypeUseHash   HintType = "USE_HASH"
	HintTypeFirstRows HintType = "FIRST_ROWS"
	HintTypeAllRows   HintType = "ALL_ROWS"
	HintTypeAppend    HintType = "APPEND"
	HintTypeUnknown   HintType = "UNKNOWN"
)

// OptimizerHint is one parsed entry of a /*+ ... */ block.
type OptimizerHint struct {
	Type      HintType
	Name      string
	Arguments []string
	Raw       string
}

// hint blocks carry the +, ordinary comments never match
var hintBlockRe = regexp.MustCompile(`/\*\+([\s\S]*?)\*/`)

var hintEntryRe = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*(\(([^)]*)\))?`)

var hintTypes = map[string]HintType{
	"INDEX":      HintTypeIndex,
	"NO_INDEX":   HintTypeNoIndex,
	"LEADING":    HintTypeLeading,
	"ORDERED":    HintTypeOrdered,
	"PARALLEL":   HintTypeParallel,
	"FULL":       HintTypeFull,
	"USE_NL":     HintTypeUseNL,
	"USE_HASH":   HintTypeUseHash,
	"FIRST_ROWS": HintTypeFirstRows,
	"ALL_ROWS":   HintTypeAllRows,
	"APPEND":     HintTypeAppend,
}

// ParseHints parses the content of a single hint block into typed records.
func ParseHints(content string) []*OptimizerHint {
	var hints []*OptimizerHint
	for _, m := range hintEntryRe.FindAllStringSubmatch(content, -1) {
		name := stringutil.StringUpper(m[1])
		hintType, ok := hintTypes[name]
		if !ok {
			hintType = HintTypeUnknown
		}
		var args []string
		if m[2] != "" {
			args = stringutil.SplitArguments(m[3])
			// oracle also accepts space-separated hint arguments
			if len(args) == 1 && strings.ContainsAny(args[0], " \t") && !strings.ContainsAny(args[0], "'\"") {
				args = strings.Fields(args[0])
			}
		}
		raw := m[1]
		if m[2] != "" {
			raw = stringutil.StringBuilder(m[1], m[2])
		}
		hints = append(hints, &OptimizerHint{Type: hintType, Name: name, Arguments: args, Raw: raw})
	}
	return hints
}

// ExtractHints collects the typed hints of every hint block in sql.
func ExtractHints(sql string) []*OptimizerHint {
	var hints []*OptimizerHint
	for _, loc := range FindAllSubmatchOutsideLiterals(sql, hintBlockRe) {
		hints = append(hints, ParseHints(sql[loc[2]:loc[3]])...)
	}
	return hints
}

// RemoveAllHints strips every hint block, ordinary comments stay.
func RemoveAllHints(sql string) string {
	return ReplaceAllOutsideLiterals(sql, hintBlockRe, func(string) string { return "" })
}

// ConvertHints rewrites or removes oracle optimizer hints for the target
// dialect. Non-oracle sources and hint-free input pass through unchanged.
func ConvertHints(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}
	hints := ExtractHints(sql)
	if len(hints) == 0 {
		return sql
	}

	sql = collapseSpacerRuns(RemoveAllHints(sql))

	switch dialectT {
	case constant.DialectTypeMySQL:
		return convertHintsForMySQL(sql, hints, res)
	case constant.DialectTypePostgresql:
		return convertHintsForPostgres(sql, hints, res)
	default:
		return sql
	}
}

func convertHintsForMySQL(sql string, hints []*OptimizerHint, res *ConversionResult) string {
	for _, h := range hints {
		switch h.Type {
		case HintTypeIndex, HintTypeNoIndex:
			keyword := "FORCE INDEX"
			if h.Type == HintTypeNoIndex {
				keyword = "IGNORE INDEX"
			}
			if len(h.Arguments) >= 2 {
				if rewritten, ok := attachIndexHint(sql, h.Arguments[0], keyword, h.Arguments[1]); ok {
					sql = rewritten
					res.AppendRule(fmt.Sprintf("hint %s rewritten as %s", h.Raw, keyword))
					continue
				}
			}
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				fmt.Sprintf("hint %s could not be attached to a table reference, add %s manually", h.Raw, keyword), ""))
		case HintTypeLeading, HintTypeOrdered:
			if rewritten, ok := injectStraightJoin(sql); ok {
				sql = rewritten
				res.AppendRule(fmt.Sprintf("hint %s rewritten as STRAIGHT_JOIN", h.Raw))
				continue
			}
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				fmt.Sprintf("join-order hint %s dropped, statement carries no SELECT to attach STRAIGHT_JOIN to", h.Raw), ""))
		default:
			res.AppendRule(fmt.Sprintf("hint removed: %s", h.Raw))
			res.AppendWarning(mapping.NewWarning(constant.WarningKindCosmeticRemoval,
				fmt.Sprintf("oracle hint %s has no mysql equivalent and was removed, the optimizer usually chooses well without it", h.Raw), ""))
		}
	}
	return sql
}

func convertHintsForPostgres(sql string, hints []*OptimizerHint, res *ConversionResult) string {
	var sessionSettings []string
	for _, h := range hints {
		switch h.Type {
		case HintTypeParallel:
			degree := "4"
			if len(h.Arguments) >= 2 {
				degree = h.Arguments[len(h.Arguments)-1]
			}
			sessionSettings = append(sessionSettings, fmt.Sprintf("SET max_parallel_workers_per_gather = %s;", degree))
			res.AppendRule(fmt.Sprintf("hint %s rewritten as a session parallel-worker setting", h.Raw))
		case HintTypeFirstRows:
			sessionSettings = append(sessionSettings, "SET cursor_tuple_fraction = 0.1;")
			res.AppendRule(fmt.Sprintf("hint %s rewritten as SET cursor_tuple_fraction", h.Raw))
		case HintTypeAllRows:
			sessionSettings = append(sessionSettings, "SET cursor_tuple_fraction = 1.0;")
			res.AppendRule(fmt.Sprintf("hint %s rewritten as SET cursor_tuple_fraction", h.Raw))
		case HintTypeAppend:
			res.AppendRule(fmt.Sprintf("hint removed: %s", h.Raw))
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				"APPEND direct-path load has no postgres equivalent, consider COPY or an UNLOGGED table for bulk loads", ""))
		case HintTypeIndex, HintTypeNoIndex, HintTypeFull:
			sql = stringutil.StringBuilder("/* ", h.Raw, " */ ", strings.TrimLeft(sql, " \t"))
			res.AppendWarning(mapping.NewWarning(constant.WarningKindExtensionRequired,
				fmt.Sprintf("index hint %s kept as a plain comment, the pg_hint_plan extension understands IndexScan/SeqScan hint syntax", h.Raw),
				"CREATE EXTENSION pg_hint_plan"))
		case HintTypeLeading, HintTypeOrdered, HintTypeUseNL, HintTypeUseHash:
			sql = stringutil.StringBuilder("/* ", h.Raw, " */ ", strings.TrimLeft(sql, " \t"))
			res.AppendWarning(mapping.NewWarning(constant.WarningKindExtensionRequired,
				fmt.Sprintf("join hint %s kept as a plain comment, the pg_hint_plan extension provides Leading/NestLoop/HashJoin equivalents", h.Raw),
				"CREATE EXTENSION pg_hint_plan"))
		default:
			res.AppendRule(fmt.Sprintf("hint removed: %s", h.Raw))
			res.AppendWarning(mapping.NewWarning(constant.WarningKindCosmeticRemoval,
				fmt.Sprintf("oracle hint %s has no postgres equivalent and was removed", h.Raw), ""))
		}
	}
	if len(sessionSettings) > 0 {
		sql = stringutil.StringBuilder(stringutil.StringJoin(sessionSettings, "\n"), "\n", sql)
	}
	return sql
}

// attachIndexHint appends FORCE/IGNORE INDEX after the hinted table
// reference, alias included when present.
func attachIndexHint(sql, table, keyword, index string) (string, bool) {
	re := regexp.MustCompile(`(?i)\b(FROM|JOIN)\s+(` + regexp.QuoteMeta(table) + `)\b(\s+AS\s+[A-Za-z_][\w$#]*)?`)
	loc := re.FindStringIndex(MaskStringLiterals(sql))
	if loc == nil {
		// the hint argument may name the alias rather than the table
		re = regexp.MustCompile(`(?i)\b(FROM|JOIN)\s+[A-Za-z_][\w$#]*\s+(AS\s+)?(` + regexp.QuoteMeta(table) + `)\b`)
		loc = re.FindStringIndex(MaskStringLiterals(sql))
		if loc == nil {
			return sql, false
		}
	}
	return stringutil.StringBuilder(sql[:loc[1]], " ", keyword, " (", index, ")", sql[loc[1]:]), true
}

var selectHeadRe = regexp.MustCompile(`(?i)\bSELECT\b`)

func injectStraightJoin(sql string) (string, bool) {
	loc := selectHeadRe.FindStringIndex(MaskStringLiterals(sql))
	if loc == nil {
		return sql, false
	}
	return stringutil.StringBuilder(sql[:loc[1]], " STRAIGHT_JOIN", sql[loc[1]:]), true
}
