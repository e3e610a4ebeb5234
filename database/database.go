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
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wentaojin/sqltrans/database/mysql"
	"github.com/wentaojin/sqltrans/database/oracle"
	"github.com/wentaojin/sqltrans/database/postgresql"
	"github.com/wentaojin/sqltrans/model/datasource"
	"github.com/wentaojin/sqltrans/utils/constant"
)

// IDatabase is the connection surface the validation step needs: it
// plans converted statements against a live target and nothing more.
type IDatabase interface {
	PrepareContext(ctx context.Context, sqlStr string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, sqlStr string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, sqlStr string, args ...any) (sql.Result, error)
	GeneralQuery(sqlStr string, args ...any) ([]string, []map[string]string, error)
	ExplainStatement(ctx context.Context, sqlStr string) error
	PingDatabaseConnection() error
	Close() error
}

// NewDatabase opens a connection matching the datasource dialect. Tibero
// speaks the oracle wire protocol, so it shares the oracle driver.
func NewDatabase(ctx context.Context, datasource *datasource.Datasource, callTimeout int64) (IDatabase, error) {
	dialect, ok := constant.ParseDialectType(datasource.DbType)
	if !ok {
		return nil, fmt.Errorf("datasource [%s] db type [%s] is not supported, please contact author or reselect", datasource.DatasourceName, datasource.DbType)
	}
	switch {
	case dialect.IsOracleCompatible():
		return oracle.NewDatabase(ctx, datasource, callTimeout)
	case dialect == constant.DialectTypeMySQL:
		return mysql.NewDatabase(ctx, datasource, callTimeout)
	case dialect == constant.DialectTypePostgresql:
		return postgresql.NewDatabase(ctx, datasource, callTimeout)
	default:
		return nil, fmt.Errorf("datasource [%s] db type [%s] is not supported, please contact author or reselect", datasource.DatasourceName, datasource.DbType)
	}
}
