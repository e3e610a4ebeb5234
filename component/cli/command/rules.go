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
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wentaojin/sqltrans/component"
	"github.com/wentaojin/sqltrans/service"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

type AppRules struct {
	*App
	ruleType string
}

func (a *App) AppRules() component.Cmder {
	return &AppRules{App: a}
}

func (a *AppRules) Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "rules",
		Short:            "list registered mapping rules for a dialect pair",
		Long:             `list registered mapping rules for a dialect pair`,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	cmd.Flags().StringVarP(&a.ruleType, "type", "t", "", "filter by rule type, one of [function datatype]")
	return cmd
}

func (a *AppRules) RunE(cmd *cobra.Command, args []string) error {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Printf("Component:    %s\n", cyan.Sprint("sqltrans"))
	fmt.Printf("Command:      %s\n", cyan.Sprint("rules"))
	fmt.Printf("Source:       %s\n", cyan.Sprint(a.DbTypeS))
	fmt.Printf("Target:       %s\n", cyan.Sprint(a.DbTypeT))

	if !strings.EqualFold(a.ruleType, "") &&
		!stringutil.IsContainedStringIgnoreCase([]string{service.RuleTypeFunction, service.RuleTypeDatatype}, a.ruleType) {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("unknown rule type [%s], one of [function datatype]", a.ruleType))
		return nil
	}

	rules, err := service.ListRules(a.DbTypeS, a.DbTypeT)
	if err != nil {
		fmt.Printf("Status:       %s\n", cyan.Sprint("failed"))
		fmt.Printf("Response:     %s\n", color.RedString("the rules list failed: %v", err))
		return nil
	}

	wt := table.NewWriter()
	wt.SetStyle(table.StyleLight)
	wt.AppendHeader(table.Row{"RULE_TYPE", "NAME_S", "NAME_T", "DETAIL"})
	matched := 0
	for _, r := range rules {
		if !strings.EqualFold(a.ruleType, "") && !strings.EqualFold(a.ruleType, r.RuleType) {
			continue
		}
		wt.AppendRow(table.Row{r.RuleType, r.NameS, r.NameT, r.Detail})
		matched++
	}
	fmt.Printf("Rules:        %s\n", cyan.Sprint(matched))
	fmt.Printf("%s\n", wt.Render())
	fmt.Printf("Status:       %s\n", cyan.Sprint("success"))
	return nil
}
