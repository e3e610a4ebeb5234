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

type triggerDefinition struct {
	Name       string
	OrReplace  bool
	Timing     string
	Events     []string
	Table      string
	ForEachRow bool
	When       string
	Declare    string
	Body       string
}

var triggerHeadRe = regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+REPLACE\s+)?TRIGGER\s+("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)\s+(BEFORE|AFTER|INSTEAD\s+OF)\s+(.+?)\s+ON\s+("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)`)

var forEachRowRe = regexp.MustCompile(`(?i)\bFOR\s+EACH\s+ROW\b`)

var whenClauseRe = regexp.MustCompile(`(?i)\bWHEN\s*\(`)

var beginRe = regexp.MustCompile(`(?i)\bBEGIN\b`)

var declareHeadRe = regexp.MustCompile(`(?i)\bDECLARE\b`)

var endTailRe = regexp.MustCompile(`(?is)\bEND(\s+[\w$#]+)?\s*;?\s*/?\s*$`)

var eventSplitRe = regexp.MustCompile(`(?i)\s+OR\s+`)

var multiSpaceRe = regexp.MustCompile(`\s+`)

// ConvertTrigger rewrites a CREATE TRIGGER statement from an oracle-family
// source. Non-trigger input and non-oracle sources pass through unchanged.
func ConvertTrigger(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}
	if !triggerHeadRe.MatchString(MaskStringLiterals(sql)) {
		return sql
	}
	def, err := parseTrigger(sql)
	if err != nil {
		res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindUnsupportedFeature,
			fmt.Sprintf("trigger validation failed: %v, statement left unchanged", err), ""))
		return sql
	}

	switch dialectT {
	case constant.DialectTypeMySQL:
		return convertTriggerForMySQL(sql, def, res)
	case constant.DialectTypePostgresql:
		return convertTriggerForPostgres(def, res)
	default:
		return sql
	}
}

func parseTrigger(sql string) (*triggerDefinition, error) {
	masked := MaskStringLiterals(sql)
	head := triggerHeadRe.FindStringSubmatchIndex(masked)
	if head == nil {
		return nil, fmt.Errorf("statement does not match the CREATE TRIGGER form")
	}

	def := &triggerDefinition{
		OrReplace: head[2] >= 0,
		Name:      strings.TrimSpace(sql[head[4]:head[5]]),
		Timing:    stringutil.StringUpper(multiSpaceRe.ReplaceAllString(strings.TrimSpace(sql[head[6]:head[7]]), " ")),
		Table:     strings.TrimSpace(sql[head[10]:head[11]]),
	}
	for _, ev := range eventSplitRe.Split(strings.TrimSpace(sql[head[8]:head[9]]), -1) {
		ev = strings.TrimSpace(ev)
		if ev != "" {
			def.Events = append(def.Events, ev)
		}
	}
	if len(def.Events) == 0 {
		return nil, fmt.Errorf("trigger [%s] declares no firing event", def.Name)
	}

	rest := sql[head[1]:]
	maskedRest := masked[head[1]:]

	def.ForEachRow = forEachRowRe.MatchString(maskedRest)

	if loc := whenClauseRe.FindStringIndex(maskedRest); loc != nil {
		end := stringutil.FindMatchingBracket(rest, loc[1])
		if end == stringutil.BracketNotFound {
			return nil, fmt.Errorf("trigger [%s] WHEN clause has unbalanced parentheses", def.Name)
		}
		def.When = strings.TrimSpace(rest[loc[1] : end-1])
	}

	beginLoc := beginRe.FindStringIndex(maskedRest)
	if beginLoc == nil {
		return nil, fmt.Errorf("trigger [%s] has no BEGIN body", def.Name)
	}
	endLoc := endTailRe.FindStringIndex(maskedRest)
	if endLoc == nil || endLoc[0] <= beginLoc[1] {
		return nil, fmt.Errorf("trigger [%s] has no terminating END", def.Name)
	}
	def.Body = strings.Trim(rest[beginLoc[1]:endLoc[0]], " \t\r\n")

	if declLoc := declareHeadRe.FindStringIndex(maskedRest); declLoc != nil && declLoc[0] < beginLoc[0] {
		def.Declare = strings.Trim(rest[declLoc[1]:beginLoc[0]], " \t\r\n")
	}
	return def, nil
}

var bindRowRefRe = regexp.MustCompile(`(?i):(NEW|OLD)\b`)

// stripBindPrefix rewrites :NEW/:OLD bind references to bare NEW/OLD.
func stripBindPrefix(body string) string {
	return ReplaceAllOutsideLiterals(body, bindRowRefRe, func(match string) string {
		return stringutil.StringUpper(match[1:])
	})
}

var rowAssignRe = regexp.MustCompile(`(?im)^(\s*)(NEW|OLD)\.([\w$#]+)\s*:=`)

var updateOfRe = regexp.MustCompile(`(?i)^UPDATE\s+OF\s+(.+)$`)

func convertTriggerForMySQL(original string, def *triggerDefinition, res *ConversionResult) string {
	if def.Timing == "INSTEAD OF" {
		res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindNoEquivalent,
			fmt.Sprintf("INSTEAD OF trigger [%s] has no mysql equivalent, statement commented out, emulate with view rewrites in application code", def.Name), ""))
		return stringutil.StringBuilder("/* unsupported INSTEAD OF trigger\n", original, "\n*/")
	}

	body := stripBindPrefix(def.Body)
	// oracle assignment statements become SET in a mysql trigger body
	body = rowAssignRe.ReplaceAllString(body, "${1}SET ${2}.${3} =")
	if def.When != "" {
		cond := stripBindPrefix(def.When)
		body = stringutil.StringBuilder("IF ", cond, " THEN\n", indentLines(body, "  "), "\nEND IF;")
		res.AppendRule(fmt.Sprintf("trigger [%s] WHEN clause rewritten as an IF guard", def.Name))
	}
	if !strings.HasSuffix(strings.TrimSpace(body), ";") {
		body = body + ";"
	}

	declare := ""
	if def.Declare != "" {
		declare = rewriteDeclareBlockForMySQL(def.Declare)
	}

	if len(def.Events) > 1 {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindBestEffortEmulation,
			fmt.Sprintf("multi-event trigger [%s] split into %d single-event mysql triggers", def.Name, len(def.Events)), ""))
	}

	var triggers []string
	for _, event := range def.Events {
		name := def.Name
		eventKeyword := stringutil.StringUpper(event)
		if m := updateOfRe.FindStringSubmatch(event); m != nil {
			eventKeyword = "UPDATE"
			res.AppendWarning(mapping.NewWarning(constant.WarningKindLossyConversion,
				fmt.Sprintf("UPDATE OF %s column filter dropped, mysql triggers fire on every UPDATE", strings.TrimSpace(m[1])), ""))
		}
		if len(def.Events) > 1 {
			name = stringutil.StringBuilder(def.Name, "_", stringutil.StringLower(strings.Fields(eventKeyword)[0]))
		}
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TRIGGER %s %s %s ON %s\nFOR EACH ROW\nBEGIN\n", name, def.Timing, eventKeyword, def.Table)
		if declare != "" {
			b.WriteString(indentLines(declare, "  "))
			b.WriteString("\n")
		}
		b.WriteString(indentLines(body, "  "))
		b.WriteString("\nEND")
		triggers = append(triggers, b.String())
	}
	res.AppendRule(fmt.Sprintf("oracle trigger [%s] rewritten for mysql", def.Name))
	return stringutil.StringJoin(triggers, ";\n\n")
}

var tgOpRe = regexp.MustCompile(`(?i)\b(INSERTING|UPDATING|DELETING)\b`)

var returnStmtRe = regexp.MustCompile(`(?i)\bRETURN\b`)

func convertTriggerForPostgres(def *triggerDefinition, res *ConversionResult) string {
	fnName := stringutil.StringBuilder(bareObjectName(def.Name), "_trigger_fn")

	body := stripBindPrefix(def.Body)
	body = ReplaceAllOutsideLiterals(body, tgOpRe, func(match string) string {
		switch stringutil.StringUpper(match) {
		case "INSERTING":
			return "(TG_OP = 'INSERT')"
		case "UPDATING":
			return "(TG_OP = 'UPDATE')"
		default:
			return "(TG_OP = 'DELETE')"
		}
	})
	if !returnStmtRe.MatchString(MaskStringLiterals(body)) {
		ret := "RETURN NEW;"
		if def.Timing == "AFTER" {
			ret = "RETURN NULL;"
		}
		body = stringutil.StringBuilder(strings.TrimRight(body, " \t\r\n"), "\n", ret)
	}

	var fn strings.Builder
	fmt.Fprintf(&fn, "CREATE OR REPLACE FUNCTION %s() RETURNS TRIGGER AS $$\n", fnName)
	if def.Declare != "" {
		fn.WriteString("DECLARE\n")
		fn.WriteString(indentLines(def.Declare, "  "))
		fn.WriteString("\n")
	}
	fn.WriteString("BEGIN\n")
	fn.WriteString(indentLines(body, "  "))
	fn.WriteString("\nEND;\n$$ LANGUAGE plpgsql")

	var tg strings.Builder
	fmt.Fprintf(&tg, "CREATE TRIGGER %s\n%s %s ON %s\n", bareObjectName(def.Name), def.Timing, stringutil.StringJoin(def.Events, " OR "), def.Table)
	if def.ForEachRow {
		tg.WriteString("FOR EACH ROW\n")
	}
	if def.When != "" {
		fmt.Fprintf(&tg, "WHEN (%s)\n", stripBindPrefix(def.When))
	}
	fmt.Fprintf(&tg, "EXECUTE FUNCTION %s()", fnName)

	res.AppendRule(fmt.Sprintf("oracle trigger [%s] split into a plpgsql function and a trigger declaration", def.Name))
	return stringutil.StringBuilder(fn.String(), ";\n\n", tg.String())
}

// rewriteDeclareBlockForMySQL prefixes each declaration with DECLARE, mysql
// puts declarations inside the BEGIN block.
func rewriteDeclareBlockForMySQL(declare string) string {
	var out []string
	for _, line := range strings.Split(declare, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(stringutil.StringUpper(trimmed), "DECLARE") {
			trimmed = "DECLARE " + trimmed
		}
		out = append(out, trimmed)
	}
	return stringutil.StringJoin(out, "\n")
}

func bareObjectName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.Trim(strings.TrimSpace(name), `"`)
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + strings.TrimRight(line, " \t\r")
		} else {
			lines[i] = ""
		}
	}
	return stringutil.StringJoin(lines, "\n")
}
