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
package processor

import (
	"github.com/scylladb/go-set/strset"

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/utils/constant"
)

// ConvertOptions carries the caller-facing conversion flags.
type ConvertOptions struct {
	// EnableComments retains human-readable annotations of applied rules in
	// the converted output
	EnableComments bool `json:"enableComments"`
	// FormatSQL pretty-prints the converted output
	FormatSQL bool `json:"formatSql"`
	// StrictMode upgrades WARNING severity entries to ERROR
	StrictMode bool `json:"strictMode"`
	// ReplaceUnsupportedFunctions substitutes best-effort placeholders for
	// vendor calls with no target equivalent instead of leaving them untouched
	ReplaceUnsupportedFunctions bool `json:"replaceUnsupportedFunctions"`
}

// DefaultConvertOptions matches the REST layer defaults.
func DefaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{ReplaceUnsupportedFunctions: true}
}

// ConversionResult collects converted SQL together with the deduplicated
// warning and applied-rule streams of one conversion request. All state is
// request-local, the zero value is not usable, build it via
// NewConversionResult.
type ConversionResult struct {
	OriginSQL    string `json:"originSql"`
	ConvertedSQL string `json:"convertedSql"`

	options *ConvertOptions

	warnings   []*mapping.ConversionWarning
	warningSet *strset.Set

	appliedRules []string
	appliedSet   *strset.Set
}

func NewConversionResult(originSQL string, options *ConvertOptions) *ConversionResult {
	if options == nil {
		options = DefaultConvertOptions()
	}
	return &ConversionResult{
		OriginSQL:    originSQL,
		ConvertedSQL: originSQL,
		options:      options,
		warningSet:   strset.New(),
		appliedSet:   strset.New(),
	}
}

// Options returns the request options, never nil.
func (r *ConversionResult) Options() *ConvertOptions {
	return r.options
}

// AppendWarning records a warning, deduplicated by message text. StrictMode
// upgrades WARNING severity to ERROR at append time, INFO stays untouched.
func (r *ConversionResult) AppendWarning(w *mapping.ConversionWarning) {
	if w == nil || r.warningSet.Has(w.Message) {
		return
	}
	r.warningSet.Add(w.Message)
	if r.options.StrictMode && w.Severity == constant.WarningSeverityWarning {
		upgraded := *w
		upgraded.Severity = constant.WarningSeverityError
		r.warnings = append(r.warnings, &upgraded)
		return
	}
	r.warnings = append(r.warnings, w)
}

// AppendRule records an applied-rule description, deduplicated by exact text.
func (r *ConversionResult) AppendRule(desc string) {
	if desc == "" || r.appliedSet.Has(desc) {
		return
	}
	r.appliedSet.Add(desc)
	r.appliedRules = append(r.appliedRules, desc)
}

// Warnings returns the ordered deduplicated warnings.
func (r *ConversionResult) Warnings() []*mapping.ConversionWarning {
	return r.warnings
}

// AppliedRules returns the ordered deduplicated applied-rule descriptions.
func (r *ConversionResult) AppliedRules() []string {
	return r.appliedRules
}

// HasErrorWarning reports whether any collected warning carries ERROR
// severity, the signal that output needs manual intervention.
func (r *ConversionResult) HasErrorWarning() bool {
	for _, w := range r.warnings {
		if w.Severity == constant.WarningSeverityError {
			return true
		}
	}
	return false
}

// MergeFrom absorbs another result's warning and rule streams, keeping this
// result's dedup sets authoritative. Used by batch conversion.
func (r *ConversionResult) MergeFrom(other *ConversionResult) {
	if other == nil {
		return
	}
	for _, w := range other.warnings {
		r.AppendWarning(w)
	}
	for _, rule := range other.appliedRules {
		r.AppendRule(rule)
	}
}
