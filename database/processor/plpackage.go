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

var packageHeadRe = regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+REPLACE\s+)?PACKAGE\s+(BODY\s+)?("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)\s+(IS|AS)\b(.*)$`)

var packageTailRe = regexp.MustCompile(`(?is)\bEND(\s+[\w$#]+)?\s*;?\s*/?\s*$`)

var packageMemberHeadRe = regexp.MustCompile(`(?im)^\s*(FUNCTION|PROCEDURE)\s+([\w$#]+)`)

var packageMemberRe = regexp.MustCompile(`(?is)^(FUNCTION|PROCEDURE)\s+([\w$#]+)\s*(\(([^)]*)\))?\s*(RETURN\s+([\w$#]+(\s*\([^)]*\))?))?\s*\b(IS|AS)\b\s*(.*)$`)

var packageConstantRe = regexp.MustCompile(`(?im)^\s*([\w$#]+)\s+CONSTANT\s+([\w$#]+(\s*\([^)]*\))?)\s*:=\s*([^;]+);`)

var packageVariableRe = regexp.MustCompile(`(?im)^\s*([\w$#]+)\s+(?:[\w$#]+(\s*\([^)]*\))?)\s*(:=[^;]+)?;`)

// ConvertPackage rewrites CREATE PACKAGE and CREATE PACKAGE BODY statements
// into standalone schema objects. Non-package input passes through unchanged.
func ConvertPackage(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}
	head := packageHeadRe.FindStringSubmatch(MaskStringLiterals(sql))
	if head == nil {
		return sql
	}
	m := packageHeadRe.FindStringSubmatchIndex(sql)
	name := strings.TrimSpace(sql[m[6]:m[7]])
	isBody := m[4] >= 0
	content := sql[m[10]:]
	if tail := packageTailRe.FindStringIndex(MaskStringLiterals(content)); tail != nil {
		content = content[:tail[0]]
	}

	if isBody {
		return convertPackageBody(sql, name, content, dialectT, res)
	}
	return convertPackageSpec(sql, name, content, dialectT, res)
}

type packageMember struct {
	Kind    string
	Name    string
	Args    string
	Returns string
	Body    string
}

func splitPackageMembers(content string) []*packageMember {
	masked := MaskStringLiterals(content)
	heads := packageMemberHeadRe.FindAllStringIndex(masked, -1)
	var members []*packageMember
	for i, loc := range heads {
		end := len(content)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		segment := strings.TrimSpace(content[loc[0]:end])
		m := packageMemberRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		members = append(members, &packageMember{
			Kind:    stringutil.StringUpper(m[1]),
			Name:    m[2],
			Args:    strings.TrimSpace(m[4]),
			Returns: strings.TrimSpace(m[6]),
			Body:    strings.TrimSpace(m[9]),
		})
	}
	return members
}

// parameterModeRe captures oracle's trailing parameter mode, the targets put
// the mode before the name.
var parameterModeRe = regexp.MustCompile(`(?i)^([\w$#]+)\s+(IN\s+OUT|IN|OUT)\s+(.+)$`)

func rewriteParameterList(args string, keepModes bool) string {
	if strings.TrimSpace(args) == "" {
		return ""
	}
	parts := stringutil.SplitArguments(args)
	for i, p := range parts {
		if m := parameterModeRe.FindStringSubmatch(strings.TrimSpace(p)); m != nil {
			mode := strings.ToUpper(multiSpaceRe.ReplaceAllString(m[2], " "))
			if mode == "IN OUT" {
				mode = "INOUT"
			}
			if keepModes {
				parts[i] = fmt.Sprintf("%s %s %s", mode, m[1], m[3])
			} else {
				parts[i] = fmt.Sprintf("%s %s", m[1], m[3])
			}
			continue
		}
		parts[i] = strings.TrimSpace(p)
	}
	return stringutil.StringJoin(parts, ", ")
}

func convertPackageSpec(original, name, content string, dialectT constant.DialectType, res *ConversionResult) string {
	pkg := bareObjectName(name)
	constants := packageConstantRe.FindAllStringSubmatch(content, -1)

	switch dialectT {
	case constant.DialectTypeMySQL:
		var b strings.Builder
		fmt.Fprintf(&b, "/* package specification [%s] has no mysql equivalent\n%s\n*/", name, strings.TrimSpace(original))
		for _, c := range constants {
			fmt.Fprintf(&b, "\n\nCREATE FUNCTION %s_%s() RETURNS %s DETERMINISTIC\nRETURN %s;",
				pkg, c[1], c[2], strings.TrimSpace(c[4]))
		}
		res.AppendRule(fmt.Sprintf("package specification [%s] commented out, %d constant(s) exported as functions", name, len(constants)))
		res.AppendWarning(mapping.NewWarning(constant.WarningKindNoEquivalent,
			fmt.Sprintf("mysql has no stored packages, members of [%s] must be created as %s_<member> routines", name, pkg), ""))
		return b.String()

	case constant.DialectTypePostgresql:
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE SCHEMA IF NOT EXISTS %s;", pkg)
		for _, c := range constants {
			fmt.Fprintf(&b, "\n\nCREATE OR REPLACE FUNCTION %s.%s() RETURNS %s AS $$\nSELECT %s\n$$ LANGUAGE sql IMMUTABLE;",
				pkg, c[1], c[2], strings.TrimSpace(c[4]))
		}
		res.AppendRule(fmt.Sprintf("package specification [%s] rewritten as schema [%s] with %d constant function(s)", name, pkg, len(constants)))
		if len(packageVariableRe.FindAllString(content, -1)) > len(constants) {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindBestEffortEmulation,
				fmt.Sprintf("package-level variables in [%s] have no session-state equivalent, use a configuration table or custom GUC settings", name), ""))
		}
		return b.String()
	}
	return original
}

func convertPackageBody(original, name, content string, dialectT constant.DialectType, res *ConversionResult) string {
	pkg := bareObjectName(name)
	members := splitPackageMembers(content)
	if len(members) == 0 {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
			fmt.Sprintf("package body [%s] contains no parseable members, statement left unchanged", name), ""))
		return original
	}

	var statements []string
	switch dialectT {
	case constant.DialectTypeMySQL:
		for _, member := range members {
			statements = append(statements, emitMySQLRoutine(pkg, member))
		}
		res.AppendRule(fmt.Sprintf("package body [%s] split into %d mysql routine(s) prefixed %s_", name, len(members), pkg))
		return stringutil.StringBuilder("DELIMITER $$\n\n", stringutil.StringJoin(statements, "\n\n"), "\n\nDELIMITER ;")

	case constant.DialectTypePostgresql:
		statements = append(statements, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pkg))
		for _, member := range members {
			statements = append(statements, emitPostgresRoutine(pkg, member))
		}
		res.AppendRule(fmt.Sprintf("package body [%s] split into %d schema-qualified plpgsql routine(s)", name, len(members)))
		return stringutil.StringJoin(statements, ";\n\n")
	}
	return original
}

func emitMySQLRoutine(pkg string, member *packageMember) string {
	body := strings.TrimSpace(member.Body)
	if !beginRe.MatchString(MaskStringLiterals(body)) {
		body = stringutil.StringBuilder("BEGIN\n", indentLines(body, "  "), "\nEND")
	}
	var b strings.Builder
	if member.Kind == "FUNCTION" {
		fmt.Fprintf(&b, "CREATE FUNCTION %s_%s(%s) RETURNS %s\nDETERMINISTIC\n%s$$",
			pkg, member.Name, rewriteParameterList(member.Args, false), member.Returns, body)
		return b.String()
	}
	fmt.Fprintf(&b, "CREATE PROCEDURE %s_%s(%s)\n%s$$",
		pkg, member.Name, rewriteParameterList(member.Args, true), body)
	return b.String()
}

func emitPostgresRoutine(pkg string, member *packageMember) string {
	returns := member.Returns
	if returns == "" {
		returns = "void"
	}
	body := strings.TrimSpace(member.Body)
	if !beginRe.MatchString(MaskStringLiterals(body)) {
		body = stringutil.StringBuilder("BEGIN\n", indentLines(body, "  "), "\nEND")
	}
	return fmt.Sprintf("CREATE OR REPLACE FUNCTION %s.%s(%s) RETURNS %s AS $$\n%s;\n$$ LANGUAGE plpgsql",
		pkg, member.Name, rewriteParameterList(member.Args, true), returns, body)
}
