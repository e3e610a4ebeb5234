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
package configutil

import (
	"github.com/wentaojin/sqltrans/model/datasource"
)

const (
	DefaultServerAddr       = "127.0.0.1:8686"
	DefaultServerLogLevel   = "info"
	DefaultCallTimeout      = 600 // seconds
	DefaultBatchConcurrency = 8
)

// ServerOptions conversion server relative config items
type ServerOptions struct {
	ServerAddr string `toml:"server-addr" json:"server-addr"`

	// CallTimeout bounds each validation round-trip (seconds)
	CallTimeout int64 `toml:"call-timeout" json:"call-timeout"`

	// BatchConcurrency caps how many files a multi-file request converts at once
	BatchConcurrency int `toml:"batch-concurrency" json:"batch-concurrency"`

	LogLevel string `toml:"log-level" json:"log-level"`

	// Datasources are the optional validation targets, keyed by datasource-name
	Datasources []*datasource.Datasource `toml:"datasource" json:"datasource"`
}

type ServerOption func(opts *ServerOptions)

func DefaultServerConfig() *ServerOptions {
	return &ServerOptions{
		ServerAddr:       DefaultServerAddr,
		CallTimeout:      DefaultCallTimeout,
		BatchConcurrency: DefaultBatchConcurrency,
		LogLevel:         DefaultServerLogLevel,
	}
}

func WithServerAddr(addr string) ServerOption {
	return func(opts *ServerOptions) {
		opts.ServerAddr = addr
	}
}

func WithCallTimeout(timeoutSecond int64) ServerOption {
	return func(opts *ServerOptions) {
		opts.CallTimeout = timeoutSecond
	}
}

func WithBatchConcurrency(concurrency int) ServerOption {
	return func(opts *ServerOptions) {
		opts.BatchConcurrency = concurrency
	}
}

func WithLogLevel(logLevel string) ServerOption {
	return func(opts *ServerOptions) {
		opts.LogLevel = logLevel
	}
}
