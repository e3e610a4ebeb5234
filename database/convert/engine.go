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
	"fmt"
	"strings"

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/database/parser"
	"github.com/wentaojin/sqltrans/database/processor"
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

// Engine orchestrates a conversion request: statement splitting, the ast
// attempt, the regex/structural fallback, and batch aggregation. An Engine
// is immutable after construction and safe for concurrent use.
type Engine struct {
	strategies map[constant.DialectType]Strategy
}

func NewEngine() *Engine {
	// force registry population before the first lookup
	mapping.FunctionRules()
	mapping.DatatypeRules()
	return &Engine{strategies: newStrategyTable()}
}

// Convert translates sql from dialectS to dialectT. It never panics to the
// caller, the worst outcome is the original input plus an ERROR warning.
func (e *Engine) Convert(sql string, dialectS, dialectT constant.DialectType, options *processor.ConvertOptions) (res *processor.ConversionResult) {
	res = processor.NewConversionResult(sql, options)
	defer func() {
		if r := recover(); r != nil {
			res.ConvertedSQL = sql
			res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindConversionFailed,
				fmt.Sprintf("conversion failed internally: %v, original sql returned unchanged", r), ""))
		}
	}()

	if dialectS == dialectT {
		res.ConvertedSQL = sql
		return res
	}

	statements := SplitStatements(sql)
	switch len(statements) {
	case 0:
		res.ConvertedSQL = sql
		return res
	case 1:
		converted, err := e.convertStatement(statements[0], dialectS, dialectT, res)
		if err != nil {
			res.ConvertedSQL = sql
			res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindConversionFailed,
				fmt.Sprintf("statement could not be converted: %v, original sql returned unchanged", err), ""))
			return res
		}
		res.ConvertedSQL = converted
		return e.finish(res)
	}

	// batch mode, one member's failure never discards the rest. Each member
	// collects into its own result so a half-converted failure still
	// surfaces the warnings it gathered before giving up.
	converted := make([]string, 0, len(statements))
	for _, statement := range statements {
		memberRes := processor.NewConversionResult(statement, res.Options())
		member, err := e.convertMember(statement, dialectS, dialectT, memberRes)
		res.MergeFrom(memberRes)
		if err != nil {
			res.AppendWarning(mapping.NewWarning(constant.WarningKindStatementFailed,
				fmt.Sprintf("statement kept unconverted: %v", err), ""))
			converted = append(converted, statement)
			continue
		}
		converted = append(converted, member)
	}
	res.AppendRule(fmt.Sprintf("%d statements processed", len(statements)))
	res.ConvertedSQL = stringutil.StringBuilder(stringutil.StringJoin(converted, ";\n"), ";")
	return e.finish(res)
}

// finish applies the cosmetic output options once conversion succeeded.
func (e *Engine) finish(res *processor.ConversionResult) *processor.ConversionResult {
	if res.Options().FormatSQL {
		res.ConvertedSQL = processor.FormatStatement(res.ConvertedSQL)
	}
	if res.Options().EnableComments {
		res.ConvertedSQL = processor.AnnotateAppliedRules(res.ConvertedSQL, res.AppliedRules())
	}
	return res
}

// convertMember isolates a batch member, an internal panic surfaces as an
// error instead of aborting the batch.
func (e *Engine) convertMember(sql string, dialectS, dialectT constant.DialectType, res *processor.ConversionResult) (converted string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversion panicked: %v", r)
		}
	}()
	return e.convertStatement(sql, dialectS, dialectT, res)
}

func (e *Engine) convertStatement(sql string, dialectS, dialectT constant.DialectType, res *processor.ConversionResult) (string, error) {
	stmt, analysis, parseErr := parser.ParseStatement(sql)
	if parseErr == nil && analysis.StatementKind != "DDL" {
		strategy, ok := e.strategies[dialectS]
		if !ok {
			return "", fmt.Errorf("unsupported source dialect [%s]", dialectS)
		}
		return strategy.ConvertStatement(sql, stmt, analysis, dialectT, res)
	}

	if parseErr != nil {
		if !looksLikeSQL(sql) {
			return "", fmt.Errorf("input is not recognizable sql: %v", parseErr)
		}
		res.AppendWarning(mapping.NewInfoWarning(constant.WarningKindParseFallback,
			"general sql grammar rejected the statement, converted via the structural fallback pipeline"))
	}
	return processor.FallbackConvert(sql, dialectS, dialectT, res), nil
}

// statement openers the fallback pipeline knows how to handle, anything else
// that also fails the grammar is treated as unconvertible
var sqlOpeners = map[string]struct{}{
	"SELECT": {}, "INSERT": {}, "UPDATE": {}, "DELETE": {}, "MERGE": {},
	"CREATE": {}, "ALTER": {}, "DROP": {}, "TRUNCATE": {}, "RENAME": {},
	"COMMENT": {}, "GRANT": {}, "REVOKE": {}, "BEGIN": {}, "DECLARE": {},
	"CALL": {}, "EXPLAIN": {}, "WITH": {}, "SET": {}, "REFRESH": {},
	"LOCK": {}, "ANALYZE": {},
}

func looksLikeSQL(sql string) bool {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return false
	}
	opener := stringutil.StringUpper(strings.Trim(fields[0], "(/*-"))
	_, ok := sqlOpeners[opener]
	return ok
}
