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
package parser

import (
	"fmt"

	"github.com/xwb1989/sqlparser"

	"github.com/wentaojin/sqltrans/utils/stringutil"
)

// Analysis summarizes the structure of a parsed statement, used for
// diagnostics and strategy dispatch on the ast path. Window functions and
// WITH clauses are not counted: the general grammar rejects OVER and CTE
// syntax, so statements carrying them always land on the fallback pipeline
// and never produce an Analysis.
type Analysis struct {
	StatementKind string   `json:"statementKind"`
	Tables        []string `json:"tables"`
	Columns       []string `json:"columns"`
	Functions     []string `json:"functions"`
	JoinCount     int      `json:"joinCount"`
	SubqueryCount int      `json:"subqueryCount"`
}

// ParseStatement parses one statement with the general sql grammar and
// returns its structural analysis. A non-nil error is the fallback-path
// trigger, oracle-only syntax is expected to land there.
func ParseStatement(sql string) (sqlparser.Statement, *Analysis, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, nil, fmt.Errorf("general sql grammar rejected the statement: %v", err)
	}
	analysis, err := analyzeStatement(stmt)
	if err != nil {
		return nil, nil, err
	}
	return stmt, analysis, nil
}

func analyzeStatement(stmt sqlparser.Statement) (*Analysis, error) {
	a := &Analysis{StatementKind: statementKind(stmt)}

	tableSeen := make(map[string]struct{})
	columnSeen := make(map[string]struct{})
	functionSeen := make(map[string]struct{})

	err := sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		switch n := node.(type) {
		case sqlparser.TableName:
			if n.Name.IsEmpty() {
				return true, nil
			}
			name := n.Name.String()
			if !n.Qualifier.IsEmpty() {
				name = stringutil.StringBuilder(n.Qualifier.String(), ".", name)
			}
			if _, ok := tableSeen[name]; !ok {
				tableSeen[name] = struct{}{}
				a.Tables = append(a.Tables, name)
			}
		case *sqlparser.ColName:
			name := n.Name.String()
			if _, ok := columnSeen[name]; !ok {
				columnSeen[name] = struct{}{}
				a.Columns = append(a.Columns, name)
			}
		case *sqlparser.FuncExpr:
			name := stringutil.StringUpper(n.Name.String())
			if _, ok := functionSeen[name]; !ok {
				functionSeen[name] = struct{}{}
				a.Functions = append(a.Functions, name)
			}
		case *sqlparser.JoinTableExpr:
			a.JoinCount++
		case *sqlparser.Subquery:
			a.SubqueryCount++
		}
		return true, nil
	}, stmt)
	if err != nil {
		return nil, fmt.Errorf("statement analysis walk failed: %v", err)
	}
	return a, nil
}

func statementKind(stmt sqlparser.Statement) string {
	switch stmt.(type) {
	case *sqlparser.Select:
		return "SELECT"
	case *sqlparser.Union:
		return "UNION"
	case *sqlparser.Insert:
		return "INSERT"
	case *sqlparser.Update:
		return "UPDATE"
	case *sqlparser.Delete:
		return "DELETE"
	case *sqlparser.DDL:
		return "DDL"
	case *sqlparser.Show:
		return "SHOW"
	case *sqlparser.Set:
		return "SET"
	default:
		return "OTHER"
	}
}
