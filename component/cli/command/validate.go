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
	"github.com/spf13/cobra"

	"github.com/wentaojin/sqltrans/component"
	"github.com/wentaojin/sqltrans/openapi"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

type AppValidate struct {
	*App
	server     string
	datasource string
	sqlText    string
	file       string
}

func (a *App) AppValidate() component.Cmder {
	return &AppValidate{App: a}
}

func (a *AppValidate) Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "validate",
		Short:            "explain converted sql against a server-side datasource",
		Long:             `explain converted sql against a server-side datasource`,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	cmd.Flags().StringVarP(&a.server, "server", "s", "", "conversion api server addr")
	cmd.Flags().StringVarP(&a.datasource, "datasource", "d", "", "server-side datasource name to validate against")
	cmd.Flags().StringVarP(&a.sqlText, "sql", "q", "", "sql text to validate")
	cmd.Flags().StringVarP(&a.file, "file", "f", "", "sql file to validate")
	return cmd
}

func (a *AppValidate) RunE(cmd *cobra.Command, args []string) error {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Printf("Component:    %s\n", cyan.Sprint("sqltrans"))
	fmt.Printf("Command:      %s\n", cyan.Sprint("validate"))
	fmt.Printf("Datasource:   %s\n", cyan.Sprint(a.datasource))

	if strings.EqualFold(a.server, "") {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("validate flag [server] can't be null, please setting"))
		return nil
	}
	if strings.EqualFold(a.datasource, "") {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("validate flag [datasource] can't be null, please setting"))
		return nil
	}

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

	bodyReq := make(map[string]interface{})
	bodyReq["datasourceName"] = a.datasource
	bodyReq["sqlText"] = sqlText

	jsonStr, err := stringutil.MarshalJSON(bodyReq)
	if err != nil {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("error marshal JSON: %v", err))
		return nil
	}
	resp, err := openapi.Request(openapi.RequestPOSTMethod, stringutil.StringBuilder(stringutil.WrapScheme(a.server, false), openapi.TransAPIBasePath, openapi.APIValidatePath), []byte(jsonStr))
	if err != nil {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("the request failed: %v", err))
		return nil
	}

	var jsonData map[string]interface{}
	err = stringutil.UnmarshalJSON(resp, &jsonData)
	if err != nil {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("error decoding JSON: %v", err))
		return nil
	}

	formattedJSON, err := stringutil.MarshalIndentJSON(jsonData)
	if err != nil {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("error decoding JSON: %v", err))
		return nil
	}
	fmt.Printf("Status:       %s\n", cyan.Sprint("success"))
	fmt.Printf("Response:     %s\n", formattedJSON)
	return nil
}
