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
package mapping

import (
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

// Tibero speaks oracle syntax, its rule rows are cloned from the oracle
// pairs rather than hand-authored: every ORACLE->X rule gains a TIBERO->X
// twin and every X->ORACLE rule gains an X->TIBERO twin. A hand-authored
// tibero row always wins over its derived clone. Both derivations must run
// after the oracle pairs are fully populated.

func deriveTiberoFunctionRules(r *FunctionRuleRegistry) {
	var (
		candidateKeys []string
		authoredKeys  []string
		clones        = make(map[string]*FunctionMappingRule)
	)
	for _, rule := range r.order {
		if rule.DialectTypeS == constant.DialectTypeTibero || rule.DialectTypeT == constant.DialectTypeTibero {
			authoredKeys = append(authoredKeys, ruleKey(rule.DialectTypeS, rule.DialectTypeT, rule.FunctionNameS))
			continue
		}
		if rule.DialectTypeS == constant.DialectTypeOracle {
			clone := *rule
			clone.DialectTypeS = constant.DialectTypeTibero
			key := ruleKey(clone.DialectTypeS, clone.DialectTypeT, clone.FunctionNameS)
			candidateKeys = append(candidateKeys, key)
			clones[key] = &clone
		}
		if rule.DialectTypeT == constant.DialectTypeOracle {
			clone := *rule
			clone.DialectTypeT = constant.DialectTypeTibero
			key := ruleKey(clone.DialectTypeS, clone.DialectTypeT, clone.FunctionNameS)
			candidateKeys = append(candidateKeys, key)
			clones[key] = &clone
		}
	}
	derivable := stringutil.StringItemsFilterDifference(candidateKeys, authoredKeys)
	// registration keeps the oracle-pair order, the set difference does not
	for _, key := range candidateKeys {
		if stringutil.IsContainedString(derivable, key) {
			r.Register(clones[key])
		}
	}
}

func deriveTiberoDatatypeRules(r *DatatypeRuleRegistry) {
	var (
		candidateKeys []string
		authoredKeys  []string
		clones        = make(map[string]*DatatypeMappingRule)
	)
	for _, rule := range r.order {
		if rule.DialectTypeS == constant.DialectTypeTibero || rule.DialectTypeT == constant.DialectTypeTibero {
			authoredKeys = append(authoredKeys, ruleKey(rule.DialectTypeS, rule.DialectTypeT, rule.DatatypeNameS))
			continue
		}
		if rule.DialectTypeS == constant.DialectTypeOracle {
			clone := *rule
			clone.DialectTypeS = constant.DialectTypeTibero
			key := ruleKey(clone.DialectTypeS, clone.DialectTypeT, clone.DatatypeNameS)
			candidateKeys = append(candidateKeys, key)
			clones[key] = &clone
		}
		if rule.DialectTypeT == constant.DialectTypeOracle {
			clone := *rule
			clone.DialectTypeT = constant.DialectTypeTibero
			key := ruleKey(clone.DialectTypeS, clone.DialectTypeT, clone.DatatypeNameS)
			candidateKeys = append(candidateKeys, key)
			clones[key] = &clone
		}
	}
	derivable := stringutil.StringItemsFilterDifference(candidateKeys, authoredKeys)
	for _, key := range candidateKeys {
		if stringutil.IsContainedString(derivable, key) {
			r.Register(clones[key])
		}
	}
}
