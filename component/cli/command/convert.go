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
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wentaojin/sqltrans/component"
	"github.com/wentaojin/sqltrans/database/processor"
	"github.com/wentaojin/sqltrans/service"
)

type AppConvert struct {
	*App
	sqlText         string
	file            string
	output          string
	strictMode      bool
	enableComments  bool
	formatSQL       bool
	keepUnsupported bool
}

func (a *App) AppConvert() component.Cmder {
	return &AppConvert{App: a}
}

func (a *AppConvert) Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "convert",
		Short:            "convert sql text between database dialects",
		Long:             `convert sql text between database dialects`,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	cmd.Flags().StringVarP(&a.sqlText, "sql", "q", "", "sql text to convert")
	cmd.Flags().StringVarP(&a.file, "file", "f", "", "sql file to convert")
	cmd.Flags().StringVarP(&a.output, "output", "o", "", "write converted sql to file instead of stdout")
	cmd.Flags().BoolVar(&a.strictMode, "strict", false, "upgrade warnings to errors")
	cmd.Flags().BoolVar(&a.enableComments, "comments", false, "annotate applied rules in the converted output")
	cmd.Flags().BoolVar(&a.formatSQL, "format", false, "pretty-print the converted output")
	cmd.Flags().BoolVar(&a.keepUnsupported, "keep-unsupported", false, "keep vendor calls without target equivalent untouched")
	return cmd
}

func (a *AppConvert) RunE(cmd *cobra.Command, args []string) error {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Printf("Component:    %s\n", cyan.Sprint("sqltrans"))
	fmt.Printf("Command:      %s\n", cyan.Sprint("convert"))
	fmt.Printf("Source:       %s\n", cyan.Sprint(a.DbTypeS))
	fmt.Printf("Target:       %s\n", cyan.Sprint(a.DbTypeT))

	sqlText := a.sqlText
	if strings.EqualFold(sqlText, "") && !strings.EqualFold(a.file, "") {
		content, err := os.ReadFile(a.file)
		if err != nil {
			fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
			fmt.Printf("Response:     %s\n", color.RedString("read sql file failed: %v", err))
			return nil
		}
		sqlText = string(content)
	}
	if strings.EqualFold(sqlText, "") {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("one of the flags [sql] or [file] is required, please setting"))
		return nil
	}

	res, err := service.ConvertSQL(sqlText, a.DbTypeS, a.DbTypeT, &processor.ConvertOptions{
		EnableComments:              a.enableComments,
		FormatSQL:                   a.formatSQL,
		StrictMode:                  a.strictMode,
		ReplaceUnsupportedFunctions: !a.keepUnsupported,
	})
	if err != nil {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("the convert failed: %v", err))
		return nil
	}

	if !strings.EqualFold(a.output, "") {
		if err = os.WriteFile(a.output, []byte(res.ConvertedSQL), 0644); err != nil {
			fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
			fmt.Printf("Response:     %s\n", color.RedString("write output file failed: %v", err))
			return nil
		}
		fmt.Printf("Output:       %s\n", cyan.Sprint(a.output))
	} else {
		fmt.Printf("Converted:\n%s\n", res.ConvertedSQL)
	}

	if warnings := res.Warnings(); len(warnings) > 0 {
		wt := table.NewWriter()
		wt.SetStyle(table.StyleLight)
		wt.AppendHeader(table.Row{"SEVERITY", "KIND", "MESSAGE", "SUGGESTION"})
		for _, w := range warnings {
			wt.AppendRow(table.Row{w.Severity, w.Kind, w.Message, w.Suggestion})
		}
		fmt.Printf("Warnings:\n%s\n", wt.Render())
	}

	if res.HasErrorWarning() {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("the converted output carries ERROR warnings, manual review required"))
		return nil
	}
	fmt.Printf("Status:       %s\n", cyan.Sprint("success"))
	return nil
}
