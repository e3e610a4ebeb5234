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
	"sync"

	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

// ruleKey builds the registry lookup key, case and precision qualifiers never
// participate in rule matching.
func ruleKey(dialectS, dialectT constant.DialectType, name string) string {
	return stringutil.StringBuilder(string(dialectS), "->", string(dialectT), "#",
		stringutil.StringUpper(stringutil.StripPrecision(name)))
}

// FunctionRuleRegistry holds the per-dialect-pair function mapping rules.
// It is populated once during startup and read-only afterwards, concurrent
// lookups need no locking.
type FunctionRuleRegistry struct {
	rules map[string]*FunctionMappingRule
	order []*FunctionMappingRule
}

func NewFunctionRuleRegistry() *FunctionRuleRegistry {
	return &FunctionRuleRegistry{rules: make(map[string]*FunctionMappingRule)}
}

// Register inserts or overwrites a rule by key, startup phase only.
func (r *FunctionRuleRegistry) Register(rule *FunctionMappingRule) {
	key := ruleKey(rule.DialectTypeS, rule.DialectTypeT, rule.FunctionNameS)
	if old, ok := r.rules[key]; ok {
		for i, o := range r.order {
			if o == old {
				r.order[i] = rule
				break
			}
		}
	} else {
		r.order = append(r.order, rule)
	}
	r.rules[key] = rule
}

// Lookup resolves a rule, the name may carry a parenthesized qualifier and
// arbitrary case.
func (r *FunctionRuleRegistry) Lookup(dialectS, dialectT constant.DialectType, name string) *FunctionMappingRule {
	return r.rules[ruleKey(dialectS, dialectT, name)]
}

// ListRules returns the registered rules of one dialect pair in registration
// order.
func (r *FunctionRuleRegistry) ListRules(dialectS, dialectT constant.DialectType) []*FunctionMappingRule {
	var rules []*FunctionMappingRule
	for _, rule := range r.order {
		if rule.DialectTypeS == dialectS && rule.DialectTypeT == dialectT {
			rules = append(rules, rule)
		}
	}
	return rules
}

// DatatypeRuleRegistry holds the per-dialect-pair datatype mapping rules,
// same lifecycle as FunctionRuleRegistry.
type DatatypeRuleRegistry struct {
	rules map[string]*DatatypeMappingRule
	order []*DatatypeMappingRule
}

func NewDatatypeRuleRegistry() *DatatypeRuleRegistry {
	return &DatatypeRuleRegistry{rules: make(map[string]*DatatypeMappingRule)}
}

// Register inserts or overwrites a rule by key, startup phase only.
func (r *DatatypeRuleRegistry) Register(rule *DatatypeMappingRule) {
	key := ruleKey(rule.DialectTypeS, rule.DialectTypeT, rule.DatatypeNameS)
	if old, ok := r.rules[key]; ok {
		for i, o := range r.order {
			if o == old {
				r.order[i] = rule
				break
			}
		}
	} else {
		r.order = append(r.order, rule)
	}
	r.rules[key] = rule
}

// Lookup resolves a rule, the name may carry a parenthesized precision/scale
// qualifier and arbitrary case.
func (r *DatatypeRuleRegistry) Lookup(dialectS, dialectT constant.DialectType, name string) *DatatypeMappingRule {
	return r.rules[ruleKey(dialectS, dialectT, name)]
}

// ListRules returns the registered rules of one dialect pair in registration
// order.
func (r *DatatypeRuleRegistry) ListRules(dialectS, dialectT constant.DialectType) []*DatatypeMappingRule {
	var rules []*DatatypeMappingRule
	for _, rule := range r.order {
		if rule.DialectTypeS == dialectS && rule.DialectTypeT == dialectT {
			rules = append(rules, rule)
		}
	}
	return rules
}

var (
	registryOnce     sync.Once
	functionRegistry *FunctionRuleRegistry
	datatypeRegistry *DatatypeRuleRegistry
)

// FunctionRules returns the process-wide function rule registry, building
// both registries on first use. The sync.Once is the happens-before barrier
// between population and concurrent lookups.
func FunctionRules() *FunctionRuleRegistry {
	buildRegistries()
	return functionRegistry
}

// DatatypeRules returns the process-wide datatype rule registry.
func DatatypeRules() *DatatypeRuleRegistry {
	buildRegistries()
	return datatypeRegistry
}

func buildRegistries() {
	registryOnce.Do(func() {
		fr := NewFunctionRuleRegistry()
		dr := NewDatatypeRuleRegistry()
		registerFunctionRules(fr)
		registerDatatypeRules(dr)
		// tibero derivation requires the oracle pairs to be complete
		deriveTiberoFunctionRules(fr)
		deriveTiberoDatatypeRules(dr)
		functionRegistry = fr
		datatypeRegistry = dr
	})
}
