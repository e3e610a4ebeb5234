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
package command

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wentaojin/sqltrans/component"
	"github.com/wentaojin/sqltrans/logger"
	"github.com/wentaojin/sqltrans/openapi"
	"github.com/wentaojin/sqltrans/utils/configutil"
)

// ServerConfig is the toml server config file layout.
type ServerConfig struct {
	ServerOptions *configutil.ServerOptions `toml:"server" json:"server"`
	LogConfig     *logger.Config            `toml:"log" json:"log"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerOptions: configutil.DefaultServerConfig(),
		LogConfig: &logger.Config{
			LogLevel:   "info",
			MaxSize:    128,
			MaxDays:    7,
			MaxBackups: 30,
		},
	}
}

type AppServer struct {
	*App
	config      string
	addr        string
	callTimeout int64
	concurrency int
	logLevel    string
}

func (a *App) AppServer() component.Cmder {
	return &AppServer{App: a}
}

func (a *AppServer) Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "server",
		Short:            "run the sql conversion api server",
		Long:             `run the sql conversion api server`,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	cmd.Flags().StringVarP(&a.config, "config", "c", "", "path to the server toml config file")
	cmd.Flags().StringVarP(&a.addr, "addr", "a", "", "server listen addr, overrides the config file")
	cmd.Flags().Int64Var(&a.callTimeout, "call-timeout", 0, "validation round-trip timeout seconds, overrides the config file")
	cmd.Flags().IntVar(&a.concurrency, "batch-concurrency", 0, "batch file conversion concurrency, overrides the config file")
	cmd.Flags().StringVar(&a.logLevel, "log-level", "", "server log level, overrides the config file")
	return cmd
}

func (a *AppServer) RunE(cmd *cobra.Command, args []string) error {
	cfg := NewServerConfig()
	if !strings.EqualFold(a.config, "") {
		if _, err := toml.DecodeFile(a.config, cfg); err != nil {
			return fmt.Errorf("config decode from file failed: %v", err)
		}
	}
	var overrides []configutil.ServerOption
	if !strings.EqualFold(a.addr, "") {
		overrides = append(overrides, configutil.WithServerAddr(a.addr))
	}
	if a.callTimeout > 0 {
		overrides = append(overrides, configutil.WithCallTimeout(a.callTimeout))
	}
	if a.concurrency > 0 {
		overrides = append(overrides, configutil.WithBatchConcurrency(a.concurrency))
	}
	if !strings.EqualFold(a.logLevel, "") {
		overrides = append(overrides, configutil.WithLogLevel(a.logLevel))
		cfg.LogConfig.LogLevel = a.logLevel
	}

	logger.NewRootLogger(cfg.LogConfig)

	srv := openapi.NewServer(cfg.ServerOptions, overrides...)

	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Printf("Component:    %s\n", cyan.Sprint("sqltrans"))
	fmt.Printf("Command:      %s\n", cyan.Sprint("server"))
	fmt.Printf("Listen:       %s\n", cyan.Sprint(cfg.ServerOptions.ServerAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
