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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wentaojin/sqltrans/logger"
	"github.com/wentaojin/sqltrans/model/datasource"
	"github.com/wentaojin/sqltrans/utils/configutil"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

const (
	// DebugAPIBasePath api debug base path
	DebugAPIBasePath = "/debug"
	// TransAPIBasePath conversion api base path
	TransAPIBasePath = "/api/v1/"
)

const (
	APIConvertPath  = "convert"
	APIRulesPath    = "rules"
	APIValidatePath = "validate"
	APIHealthPath   = "health"
)

const (
	RequestPOSTMethod = "POST"
)

const (
	ResponseResultStatusSuccess = "success"
	ResponseResultStatusFailed  = "failed"
)

// Response is the uniform envelope of every api reply.
type Response struct {
	Code  int         `json:"code"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// Server is the conversion REST server.
type Server struct {
	ServerOptions *configutil.ServerOptions

	datasources map[string]*datasource.Datasource
}

// NewServer creates a new server, functional options override the config
// file values.
func NewServer(opts *configutil.ServerOptions, serverOpts ...configutil.ServerOption) *Server {
	for _, opt := range serverOpts {
		opt(opts)
	}
	datasources := make(map[string]*datasource.Datasource)
	for _, ds := range opts.Datasources {
		datasources[ds.DatasourceName] = ds
	}
	return &Server{
		ServerOptions: opts,
		datasources:   datasources,
	}
}

// Start serves the api until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.ServerOptions.ServerAddr,
		Handler: s.initRouter(),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening server addr request", zap.String("address", s.ServerOptions.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server listen [%s] failed: %v", s.ServerOptions.ServerAddr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// initRouter returns a HTTP handler to handle conversion apis
func (s *Server) initRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// middlewares
	r.Use(s.cors())

	// add a ginzap middleware, which:
	//   - log requests, like a combined access and error log.
	r.Use(ginzap.GinzapWithConfig(logger.GetRootLogger().With(zap.String("component", "gin")), &ginzap.Config{
		TimeFormat: logger.LogTimeFmt,
		UTC:        false}))

	// logs all panic to error log
	//   - stack means whether output the stack info.
	r.Use(ginzap.RecoveryWithZap(logger.GetRootLogger().With(zap.String("component", "gin")), true))

	api := r.Group(TransAPIBasePath)
	api.GET(APIHealthPath, s.APIHealth)
	api.GET(APIRulesPath, s.APIListRules)
	api.POST(APIConvertPath, s.APIConvert)
	api.POST(APIValidatePath, s.APIValidate)

	// runtime pprof profiles share the api listener
	r.Any(stringutil.StringBuilder(DebugAPIBasePath, "/*profile"), gin.WrapH(GetHTTPDebugHandler()))

	return r
}

func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type,AccessToken,X-CSRF-Token, Authorization, Token")
		c.Header("Access-Control-Allow-Methods", "POST, GET, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")

		// release all OPTIONS methods
		if method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
		}
		c.Next()
	}
}

// Request is the client-side helper used by the command line tools.
func Request(method, url string, body []byte) ([]byte, error) {
	client := &http.Client{}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request http status [%d] not ok, please check server status or logs", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return respBody, nil
}
