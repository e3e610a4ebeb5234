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

	"github.com/xwb1989/sqlparser"

	"github.com/wentaojin/sqltrans/database/parser"
	"github.com/wentaojin/sqltrans/database/processor"
	"github.com/wentaojin/sqltrans/utils/constant"
)

// Strategy converts one successfully parsed statement for its source
// dialect. Strategies run only on the ast path, the fallback pipeline
// handles everything the grammar rejects.
type Strategy interface {
	DialectType() constant.DialectType
	ConvertStatement(sql string, stmt sqlparser.Statement, analysis *parser.Analysis, dialectT constant.DialectType, res *processor.ConversionResult) (string, error)
}

// dialect strategies share the registry-driven rewriting, the per-dialect
// types exist so statement-kind special cases have a home
type baseStrategy struct {
	dialect constant.DialectType
}

func (s *baseStrategy) DialectType() constant.DialectType {
	return s.dialect
}

func (s *baseStrategy) ConvertStatement(sql string, stmt sqlparser.Statement, analysis *parser.Analysis, dialectT constant.DialectType, res *processor.ConversionResult) (string, error) {
	if stmt == nil || analysis == nil {
		return sql, fmt.Errorf("dialect [%s] strategy invoked without a parsed statement", s.dialect)
	}
	converted := processor.RewriteInlineFunctions(sql, s.dialect, dialectT, res)
	if analysis.SubqueryCount > 0 || analysis.JoinCount > 1 {
		res.AppendRule(fmt.Sprintf("%s statement converted on the ast path (%d joins, %d subqueries)",
			analysis.StatementKind, analysis.JoinCount, analysis.SubqueryCount))
	}
	return converted, nil
}

type oracleStrategy struct{ baseStrategy }

type mysqlStrategy struct{ baseStrategy }

type postgresStrategy struct{ baseStrategy }

type tiberoStrategy struct{ baseStrategy }

// newStrategyTable builds the closed dispatch table over DialectType.
func newStrategyTable() map[constant.DialectType]Strategy {
	return map[constant.DialectType]Strategy{
		constant.DialectTypeOracle:     &oracleStrategy{baseStrategy{dialect: constant.DialectTypeOracle}},
		constant.DialectTypeMySQL:      &mysqlStrategy{baseStrategy{dialect: constant.DialectTypeMySQL}},
		constant.DialectTypePostgresql: &postgresStrategy{baseStrategy{dialect: constant.DialectTypePostgresql}},
		constant.DialectTypeTibero:     &tiberoStrategy{baseStrategy{dialect: constant.DialectTypeTibero}},
	}
}
