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
package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/godror/godror"
	"github.com/godror/godror/dsn"

	"github.com/wentaojin/sqltrans/model/datasource"
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

type Database struct {
	Ctx         context.Context
	DBConn      *sql.DB
	CallTimeout int64 // unit: seconds, sql execute timeout
}

func NewDatabase(ctx context.Context, datasource *datasource.Datasource, callTimeout int64) (*Database, error) {
	// https://godror.github.io/godror/doc/connection.html
	// You can specify connection timeout seconds with "?connect_timeout=15" - Ping uses this timeout, NOT the Deadline in Context!
	var (
		connString    string
		oraDSN        dsn.ConnectionParams
		err           error
		sessionParams []string
	)

	if strings.EqualFold(datasource.ConnectParams, "") {
		connString = fmt.Sprintf("oracle://@%s/%s?standaloneConnection=1",
			stringutil.StringBuilder(datasource.Host, ":", strconv.FormatUint(datasource.Port, 10)),
			datasource.ServiceName)
	} else {
		connString = fmt.Sprintf("oracle://@%s/%s?standaloneConnection=1&%s",
			stringutil.StringBuilder(datasource.Host, ":", strconv.FormatUint(datasource.Port, 10)),
			datasource.ServiceName, datasource.ConnectParams)
	}

	oraDSN, err = godror.ParseDSN(connString)
	if err != nil {
		return nil, err
	}

	oraDSN.Username, oraDSN.Password = datasource.Username, godror.NewPassword(datasource.Password)

	if !strings.EqualFold(datasource.PdbName, "") {
		sessionParams = append(sessionParams, fmt.Sprintf(`ALTER SESSION SET CONTAINER = %s`, datasource.PdbName))
	}

	if !strings.EqualFold(datasource.SessionParams, "") {
		sessionParams = append(sessionParams, stringutil.StringSplit(datasource.SessionParams, constant.StringSeparatorComma)...)
	}

	// close external auth
	oraDSN.ExternalAuth = false
	oraDSN.OnInitStmts = sessionParams

	// charset
	if !strings.EqualFold(datasource.ConnectCharset, "") {
		oraDSN.CommonParams.Charset = datasource.ConnectCharset
	}

	sqlDB := sql.OpenDB(godror.NewConnector(oraDSN))
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetMaxOpenConns(0)
	sqlDB.SetConnMaxLifetime(0)

	err = sqlDB.Ping()
	if err != nil {
		return nil, fmt.Errorf("connection string [%s] error on creating ping oracle database connection: %v", oraDSN.String(), err)
	}
	return &Database{Ctx: ctx, DBConn: sqlDB, CallTimeout: callTimeout}, nil
}

func (d *Database) PingDatabaseConnection() error {
	err := d.DBConn.Ping()
	if err != nil {
		return fmt.Errorf("error on testing ping oracle database connection: %v", err)
	}
	return nil
}

func (d *Database) PrepareContext(ctx context.Context, sqlStr string) (*sql.Stmt, error) {
	return d.DBConn.PrepareContext(ctx, sqlStr)
}

func (d *Database) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.DBConn.QueryContext(ctx, query, args...)
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.DBConn.ExecContext(ctx, query, args...)
}

// ExplainStatement asks the optimizer to plan the converted statement
// without running it, which is how converted output gets validated.
func (d *Database) ExplainStatement(ctx context.Context, sqlStr string) error {
	_, err := d.ExecContext(ctx, stringutil.StringBuilder(`EXPLAIN PLAN FOR `, sqlStr))
	if err != nil {
		return fmt.Errorf("explain plan failed, sql: [%v], error: [%v]", sqlStr, err)
	}
	return nil
}

func (d *Database) GeneralQuery(query string, args ...any) ([]string, []map[string]string, error) {
	var (
		columns []string
		results []map[string]string
	)

	deadline := time.Now().Add(time.Duration(d.CallTimeout) * time.Second)

	ctx, cancel := context.WithDeadline(d.Ctx, deadline)
	defer cancel()

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	// general query, automatic get column name
	columns, err = rows.Columns()
	if err != nil {
		return columns, results, fmt.Errorf("query rows.Columns failed, sql: [%v], error: [%v]", query, err)
	}

	values := make([][]byte, len(columns))
	scans := make([]interface{}, len(columns))
	for i := range values {
		scans[i] = &values[i]
	}

	for rows.Next() {
		err = rows.Scan(scans...)
		if err != nil {
			return columns, results, fmt.Errorf("query rows.Scan failed, sql: [%v], error: [%v]", query, err)
		}

		row := make(map[string]string)
		for k, v := range values {
			// Notes: oracle database NULL and ""
			//	1, if the return value is nil, it represents the value is NULL
			//	2, if the return value is "", it represents the value is "" string
			if v == nil {
				row[columns[k]] = "NULLABLE"
			} else {
				row[columns[k]] = stringutil.BytesToString(v)
			}
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return columns, results, fmt.Errorf("query rows.Next failed, sql: [%v], error: [%v]", query, err.Error())
	}
	return columns, results, nil
}

func (d *Database) Close() error {
	return d.DBConn.Close()
}
