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
	"fmt"

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/utils/constant"
)

const (
	RuleTypeFunction = "FUNCTION"
	RuleTypeDatatype = "DATATYPE"
)

// RuleSummary is one registered mapping rule flattened for display.
type RuleSummary struct {
	RuleType string `json:"ruleType"`
	DialectS string `json:"dialectS"`
	DialectT string `json:"dialectT"`
	NameS    string `json:"nameS"`
	NameT    string `json:"nameT"`
	Detail   string `json:"detail"`
}

// ListRules reports every function and datatype mapping rule registered
// for the dialect pair, function rules first.
func ListRules(dbTypeS, dbTypeT string) ([]RuleSummary, error) {
	dialectS, ok := constant.ParseDialectType(dbTypeS)
	if !ok {
		return nil, fmt.Errorf("source db type [%s] is not supported, please reselect", dbTypeS)
	}
	dialectT, ok := constant.ParseDialectType(dbTypeT)
	if !ok {
		return nil, fmt.Errorf("target db type [%s] is not supported, please reselect", dbTypeT)
	}

	var summaries []RuleSummary
	for _, r := range mapping.FunctionRules().ListRules(dialectS, dialectT) {
		detail := string(r.ParameterTransform)
		if r.Warning != nil {
			detail = fmt.Sprintf("%s (%s: %s)", detail, r.Warning.Severity, r.Warning.Kind)
		}
		summaries = append(summaries, RuleSummary{
			RuleType: RuleTypeFunction,
			DialectS: string(r.DialectTypeS),
			DialectT: string(r.DialectTypeT),
			NameS:    r.FunctionNameS,
			NameT:    r.FunctionNameT,
			Detail:   detail,
		})
	}
	for _, r := range mapping.DatatypeRules().ListRules(dialectS, dialectT) {
		detail := string(r.PrecisionHandler)
		if r.Warning != nil {
			detail = fmt.Sprintf("%s (%s: %s)", detail, r.Warning.Severity, r.Warning.Kind)
		}
		summaries = append(summaries, RuleSummary{
			RuleType: RuleTypeDatatype,
			DialectS: string(r.DialectTypeS),
			DialectT: string(r.DialectTypeT),
			NameS:    r.DatatypeNameS,
			NameT:    r.DatatypeNameT,
			Detail:   detail,
		})
	}
	return summaries, nil
}
