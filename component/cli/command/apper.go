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
	"github.com/spf13/cobra"
)

type App struct {
	DbTypeS string
	DbTypeT string
	Args    []string
}

func (a *App) Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:              "sqltrans",
		Short:            "CLI sqltrans app for sql dialect conversion",
		Long:             `CLI sqltrans app for sql dialect conversion between oracle, mysql, postgresql and tibero`,
		RunE:             a.RunE,
		TraverseChildren: true,
		SilenceUsage:     true,
	}
	c.PersistentFlags().StringVarP(&a.DbTypeS, "source", "S", "", "source database dialect, one of [oracle mysql postgresql tibero]")
	c.PersistentFlags().StringVarP(&a.DbTypeT, "target", "T", "", "target database dialect, one of [oracle mysql postgresql tibero]")
	return c
}

func (a *App) RunE(cmd *cobra.Command, args []string) error {
	if err := cmd.Help(); err != nil {
		return err
	}
	return nil
}
