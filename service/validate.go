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
package service

import (
	"context"
	"strings"

	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/wentaojin/sqltrans/database"
	"github.com/wentaojin/sqltrans/database/convert"
	"github.com/wentaojin/sqltrans/logger"
	"github.com/wentaojin/sqltrans/model/datasource"
	"github.com/wentaojin/sqltrans/utils/configutil"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

// StatementValidation is the explain outcome for one converted statement.
type StatementValidation struct {
	Statement string `json:"statement"`
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
}

// explainable reports whether a statement kind can go through EXPLAIN.
// DDL and procedural blocks cannot, they are skipped rather than run.
func explainable(sqlText string) bool {
	upper := stringutil.StringUpper(stringutil.StringTrimSpace(sqlText))
	for _, prefix := range []string{"SELECT", "INSERT", "UPDATE", "DELETE", "WITH"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// ValidateStatements explains each converted statement against a live
// target database without executing it. Statements that cannot be
// explained (DDL, procedural blocks) are reported as skipped.
func ValidateStatements(ctx context.Context, ds *datasource.Datasource, sqlText string, callTimeout int64) ([]StatementValidation, error) {
	if callTimeout <= 0 {
		callTimeout = configutil.DefaultCallTimeout
	}
	db, err := database.NewDatabase(ctx, ds, callTimeout)
	if err != nil {
		return nil, errors.Annotatef(err, "datasource [%s] connect failed", ds.DatasourceName)
	}
	defer db.Close()

	if err = db.PingDatabaseConnection(); err != nil {
		return nil, errors.Annotatef(err, "datasource [%s] ping failed", ds.DatasourceName)
	}

	var validations []StatementValidation
	for _, stmt := range convert.SplitStatements(sqlText) {
		if !explainable(stmt) {
			validations = append(validations, StatementValidation{
				Statement: stmt,
				Valid:     false,
				Message:   "statement kind cannot be explained, skipped",
			})
			continue
		}
		if err = db.ExplainStatement(ctx, stmt); err != nil {
			logger.Warn("statement validate failed",
				zap.String("datasource", ds.DatasourceName),
				zap.Error(err))
			validations = append(validations, StatementValidation{
				Statement: stmt,
				Valid:     false,
				Message:   err.Error(),
			})
			continue
		}
		validations = append(validations, StatementValidation{Statement: stmt, Valid: true})
	}
	return validations, nil
}
