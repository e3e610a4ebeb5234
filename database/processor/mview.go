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

var mviewCreateRe = regexp.MustCompile(`(?is)^\s*CREATE\s+MATERIALIZED\s+VIEW\s+("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)(.*?)\bAS\b\s*(.+)$`)

var mviewDropRe = regexp.MustCompile(`(?is)^\s*DROP\s+MATERIALIZED\s+VIEW\s+(IF\s+EXISTS\s+)?("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)\s*;?\s*$`)

var mviewRefreshRe = regexp.MustCompile(`(?is)^\s*REFRESH\s+MATERIALIZED\s+VIEW\s+(CONCURRENTLY\s+)?("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)\s*;?\s*$`)

var dbmsMviewRefreshRe = regexp.MustCompile(`(?i)\bDBMS_MVIEW\s*\.\s*REFRESH\s*\(\s*'([^']+)'\s*[^)]*\)`)

// ConvertMaterializedView rewrites materialized-view DDL for targets without
// native support and maps option clauses for targets that have it.
func ConvertMaterializedView(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if dialectS == dialectT || (dialectS.IsOracleCompatible() && dialectT.IsOracleCompatible()) {
		return sql
	}
	masked := MaskStringLiterals(sql)
	if !strings.Contains(stringutil.StringUpper(masked), "MATERIALIZED VIEW") &&
		!dbmsMviewRefreshRe.MatchString(masked) {
		return sql
	}

	if m := dbmsMviewRefreshRe.FindStringSubmatchIndex(masked); m != nil {
		return rewriteMviewRefreshCall(sql, m, dialectT, res)
	}
	if m := mviewRefreshRe.FindStringSubmatch(sql); m != nil {
		return rewriteMviewRefreshStatement(sql, m[2], dialectT, res)
	}
	if m := mviewDropRe.FindStringSubmatch(sql); m != nil {
		return rewriteMviewDrop(sql, m[2], dialectT, res)
	}
	if m := mviewCreateRe.FindStringSubmatch(sql); m != nil {
		return rewriteMviewCreate(sql, m[1], m[2], m[3], dialectS, dialectT, res)
	}
	return sql
}

func rewriteMviewCreate(sql, name, options, query string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	upperOpts := stringutil.StringUpper(options)
	query = strings.TrimRight(strings.TrimSpace(query), "; \t\r\n")
	table := bareObjectName(name)

	switch dialectT {
	case constant.DialectTypeMySQL:
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TABLE %s AS\n%s;\n\n", name, query)
		fmt.Fprintf(&b, "CREATE PROCEDURE %s_refresh()\nBEGIN\n  TRUNCATE TABLE %s;\n  INSERT INTO %s\n%s;\nEND", table, name, name, indentLines(query, "  "))
		res.AppendRule(fmt.Sprintf("materialized view [%s] emulated with a backing table and refresh procedure", name))
		res.AppendWarning(mapping.NewWarning(constant.WarningKindBestEffortEmulation,
			fmt.Sprintf("mysql has no materialized views, [%s] became a table refreshed by CALL %s_refresh(), schedule it with an EVENT for periodic refresh", name, table), ""))
		if strings.Contains(upperOpts, "ON COMMIT") {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindNoEquivalent,
				"REFRESH ON COMMIT cannot be emulated mechanically, call the refresh procedure from application transaction hooks", ""))
		}
		return b.String()

	case constant.DialectTypePostgresql:
		withClause := "WITH DATA"
		if strings.Contains(upperOpts, "BUILD DEFERRED") || strings.Contains(upperOpts, "WITH NO DATA") {
			withClause = "WITH NO DATA"
		}
		if strings.Contains(upperOpts, "ON COMMIT") {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				"REFRESH ON COMMIT has no postgres equivalent, emulate with statement triggers on the base tables", ""))
		}
		if strings.Contains(upperOpts, "FAST") {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
				"FAST (incremental) refresh is not native to postgres, REFRESH MATERIALIZED VIEW recomputes fully, consider trigger-maintained summary tables", ""))
		}
		if strings.Contains(upperOpts, "ENABLE QUERY REWRITE") {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindNoEquivalent,
				"ENABLE QUERY REWRITE has no postgres equivalent, queries must reference the materialized view directly", ""))
		}
		res.AppendRule(fmt.Sprintf("materialized view [%s] rewritten as a native postgres materialized view", name))
		return fmt.Sprintf("CREATE MATERIALIZED VIEW %s AS\n%s\n%s", name, query, withClause)

	case constant.DialectTypeOracle, constant.DialectTypeTibero:
		// postgres WITH [NO] DATA reconstructs the oracle BUILD clause
		build := "BUILD IMMEDIATE"
		if strings.Contains(upperOpts, "WITH NO DATA") {
			build = "BUILD DEFERRED"
		}
		res.AppendRule(fmt.Sprintf("materialized view [%s] rewritten with oracle BUILD/REFRESH clauses", name))
		return fmt.Sprintf("CREATE MATERIALIZED VIEW %s\n%s\nREFRESH COMPLETE ON DEMAND\nAS\n%s", name, build, query)
	}
	return sql
}

func rewriteMviewDrop(sql, name string, dialectT constant.DialectType, res *ConversionResult) string {
	if dialectT != constant.DialectTypeMySQL {
		return sql
	}
	table := bareObjectName(name)
	res.AppendRule(fmt.Sprintf("materialized view drop of [%s] rewritten as table and procedure drops", name))
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;\n\nDROP PROCEDURE IF EXISTS %s_refresh", name, table)
}

func rewriteMviewRefreshStatement(sql, name string, dialectT constant.DialectType, res *ConversionResult) string {
	switch dialectT {
	case constant.DialectTypeMySQL:
		res.AppendRule(fmt.Sprintf("materialized view refresh of [%s] rewritten as a procedure call", name))
		return fmt.Sprintf("CALL %s_refresh()", bareObjectName(name))
	case constant.DialectTypeOracle, constant.DialectTypeTibero:
		res.AppendRule(fmt.Sprintf("materialized view refresh of [%s] rewritten as DBMS_MVIEW.REFRESH", name))
		return fmt.Sprintf("BEGIN DBMS_MVIEW.REFRESH('%s'); END;", bareObjectName(name))
	default:
		return sql
	}
}

func rewriteMviewRefreshCall(sql string, loc []int, dialectT constant.DialectType, res *ConversionResult) string {
	name := sql[loc[2]:loc[3]]
	switch dialectT {
	case constant.DialectTypeMySQL:
		res.AppendRule(fmt.Sprintf("DBMS_MVIEW.REFRESH of [%s] rewritten as a procedure call", name))
		return stringutil.StringBuilder(sql[:loc[0]], fmt.Sprintf("CALL %s_refresh()", bareObjectName(name)), sql[loc[1]:])
	case constant.DialectTypePostgresql:
		res.AppendRule(fmt.Sprintf("DBMS_MVIEW.REFRESH of [%s] rewritten as REFRESH MATERIALIZED VIEW", name))
		return stringutil.StringBuilder(sql[:loc[0]], fmt.Sprintf("REFRESH MATERIALIZED VIEW %s", name), sql[loc[1]:])
	default:
		return sql
	}
}
