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
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wentaojin/sqltrans/database/convert"
	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/database/processor"
	"github.com/wentaojin/sqltrans/errconcurrent"
	"github.com/wentaojin/sqltrans/logger"
	"github.com/wentaojin/sqltrans/utils/configutil"
	"github.com/wentaojin/sqltrans/utils/constant"
)

// ConvertFile is one named unit of SQL text inside a batch request.
type ConvertFile struct {
	FileName string `json:"fileName"`
	SqlText  string `json:"sqlText"`
}

// FileConversion is the per-file outcome of a batch conversion. A file
// that could not be converted still gets an entry, failure never
// crosses file boundaries.
type FileConversion struct {
	FileName     string                       `json:"fileName"`
	ConvertedSQL string                       `json:"convertedSql"`
	Warnings     []*mapping.ConversionWarning `json:"warnings"`
	AppliedRules []string                     `json:"appliedRules"`
	HasError     bool                         `json:"hasError"`
}

// ConvertSQL converts one SQL text between dialects. The engine never
// fails, the only error here is an unknown dialect name.
func ConvertSQL(sqlText, dbTypeS, dbTypeT string, options *processor.ConvertOptions) (*processor.ConversionResult, error) {
	dialectS, ok := constant.ParseDialectType(dbTypeS)
	if !ok {
		return nil, fmt.Errorf("source db type [%s] is not supported, please reselect", dbTypeS)
	}
	dialectT, ok := constant.ParseDialectType(dbTypeT)
	if !ok {
		return nil, fmt.Errorf("target db type [%s] is not supported, please reselect", dbTypeT)
	}

	startTime := time.Now()
	res := convert.NewEngine().Convert(sqlText, dialectS, dialectT, options)
	logger.Info("sql convert finished",
		zap.String("dialect_s", string(dialectS)),
		zap.String("dialect_t", string(dialectT)),
		zap.Int("warnings", len(res.Warnings())),
		zap.String("cost", time.Since(startTime).String()))
	return res, nil
}

// ConvertFiles converts a batch of files concurrently. Each file is
// isolated, a failed or warning-laden file never blocks the others.
func ConvertFiles(ctx context.Context, files []ConvertFile, dbTypeS, dbTypeT string, options *processor.ConvertOptions, concurrency int) ([]FileConversion, error) {
	dialectS, ok := constant.ParseDialectType(dbTypeS)
	if !ok {
		return nil, fmt.Errorf("source db type [%s] is not supported, please reselect", dbTypeS)
	}
	dialectT, ok := constant.ParseDialectType(dbTypeT)
	if !ok {
		return nil, fmt.Errorf("target db type [%s] is not supported, please reselect", dbTypeT)
	}
	if concurrency <= 0 {
		concurrency = configutil.DefaultBatchConcurrency
	}

	engine := convert.NewEngine()
	conversions := make([]FileConversion, len(files))

	g := errconcurrent.NewGroup()
	g.SetLimit(concurrency)
	for i, f := range files {
		g.Go([]interface{}{i, f}, func(t interface{}) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			task := t.([]interface{})
			idx := task[0].(int)
			file := task[1].(ConvertFile)

			res := engine.Convert(file.SqlText, dialectS, dialectT, options)
			conversions[idx] = FileConversion{
				FileName:     file.FileName,
				ConvertedSQL: res.ConvertedSQL,
				Warnings:     res.Warnings(),
				AppliedRules: res.AppliedRules(),
				HasError:     res.HasErrorWarning(),
			}
			return nil
		})
	}
	for _, r := range g.Wait() {
		if r.Err != nil {
			return conversions, r.Err
		}
	}
	return conversions, nil
}
