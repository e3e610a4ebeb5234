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
package openapi

import (
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wentaojin/sqltrans/database/processor"
	"github.com/wentaojin/sqltrans/logger"
	"github.com/wentaojin/sqltrans/service"
)

// GetHTTPDebugHandler returns a HTTP handler to handle debug information.
func GetHTTPDebugHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// ConvertRequest is the POST /api/v1/convert request body. SqlText and
// Files are mutually exclusive, Files wins when both are set.
type ConvertRequest struct {
	DbTypeS string                    `json:"dbTypeS" binding:"required"`
	DbTypeT string                    `json:"dbTypeT" binding:"required"`
	SqlText string                    `json:"sqlText"`
	Files   []service.ConvertFile     `json:"files"`
	Options *processor.ConvertOptions `json:"options"`
}

// ConvertResponse is the POST /api/v1/convert reply payload.
type ConvertResponse struct {
	RequestID string                   `json:"requestId"`
	Result    interface{}              `json:"result,omitempty"`
	Files     []service.FileConversion `json:"files,omitempty"`
}

// ValidateRequest is the POST /api/v1/validate request body, explaining
// converted SQL against a configured datasource.
type ValidateRequest struct {
	DatasourceName string `json:"datasourceName" binding:"required"`
	SqlText        string `json:"sqlText" binding:"required"`
}

func (s *Server) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: ResponseResultStatusSuccess})
}

func (s *Server) APIListRules(c *gin.Context) {
	rules, err := service.ListRules(c.Query("dbTypeS"), c.Query("dbTypeT"))
	if err != nil {
		c.JSON(http.StatusOK, Response{Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: rules})
}

func (s *Server) APIConvert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, Response{Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	requestID := uuid.New().String()
	logger.Info("api convert request",
		zap.String("request_id", requestID),
		zap.String("db_type_s", req.DbTypeS),
		zap.String("db_type_t", req.DbTypeT),
		zap.Int("files", len(req.Files)))

	if len(req.Files) > 0 {
		conversions, err := service.ConvertFiles(c.Request.Context(), req.Files, req.DbTypeS, req.DbTypeT, req.Options, s.ServerOptions.BatchConcurrency)
		if err != nil {
			c.JSON(http.StatusOK, Response{Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: ConvertResponse{RequestID: requestID, Files: conversions}})
		return
	}

	res, err := service.ConvertSQL(req.SqlText, req.DbTypeS, req.DbTypeT, req.Options)
	if err != nil {
		c.JSON(http.StatusOK, Response{Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: ConvertResponse{
		RequestID: requestID,
		Result: gin.H{
			"originSql":    res.OriginSQL,
			"convertedSql": res.ConvertedSQL,
			"warnings":     res.Warnings(),
			"appliedRules": res.AppliedRules(),
			"hasError":     res.HasErrorWarning(),
		},
	}})
}

func (s *Server) APIValidate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, Response{Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	ds, ok := s.datasources[req.DatasourceName]
	if !ok {
		c.JSON(http.StatusOK, Response{
			Code:  http.StatusBadRequest,
			Error: fmt.Sprintf("datasource [%s] is not configured, please check the server config file", req.DatasourceName),
		})
		return
	}

	validations, err := service.ValidateStatements(c.Request.Context(), ds, req.SqlText, s.ServerOptions.CallTimeout)
	if err != nil {
		c.JSON(http.StatusOK, Response{Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Data: validations})
}
