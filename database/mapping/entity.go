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
)

// ParameterTransform describes how a function call's argument list must be
// restructured beyond the name swap.
type ParameterTransform string

const (
	ParameterTransformNone              ParameterTransform = "NONE"
	ParameterTransformSwapFirstTwo      ParameterTransform = "SWAP_FIRST_TWO"
	ParameterTransformDateFormatConvert ParameterTransform = "DATE_FORMAT_CONVERT"
	ParameterTransformToCaseWhen        ParameterTransform = "TO_CASE_WHEN"
	ParameterTransformWrapWithFunction  ParameterTransform = "WRAP_WITH_FUNCTION"
)

// PrecisionHandler describes how a numeric or length precision qualifier is
// carried across a datatype conversion.
type PrecisionHandler string

const (
	PrecisionHandlerPreserve     PrecisionHandler = "PRESERVE"
	PrecisionHandlerConvert      PrecisionHandler = "CONVERT"
	PrecisionHandlerDrop         PrecisionHandler = "DROP"
	PrecisionHandlerMapToInteger PrecisionHandler = "MAP_TO_INTEGER"
)

// ConversionWarning is a severity-tagged note attached to a conversion
// result, ERROR severity marks constructs with no mechanical equivalent.
type ConversionWarning struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewInfoWarning builds an INFO severity warning.
func NewInfoWarning(kind, message string) *ConversionWarning {
	return &ConversionWarning{Kind: kind, Message: message, Severity: constant.WarningSeverityInfo}
}

// NewWarning builds a WARNING severity warning.
func NewWarning(kind, message, suggestion string) *ConversionWarning {
	return &ConversionWarning{Kind: kind, Message: message, Severity: constant.WarningSeverityWarning, Suggestion: suggestion}
}

// NewErrorWarning builds an ERROR severity warning, the signal that the
// output is not safely executable as-is.
func NewErrorWarning(kind, message, suggestion string) *ConversionWarning {
	return &ConversionWarning{Kind: kind, Message: message, Severity: constant.WarningSeverityError, Suggestion: suggestion}
}

// FunctionMappingRule maps one source-dialect function name onto the target
// dialect equivalent. Rules are immutable once registered.
type FunctionMappingRule struct {
	DialectTypeS       constant.DialectType
	DialectTypeT       constant.DialectType
	FunctionNameS      string
	FunctionNameT      string
	ParameterTransform ParameterTransform
	// WrapTemplate is a printf-style template applied around the translated
	// argument list when ParameterTransform is WRAP_WITH_FUNCTION
	WrapTemplate string
	Warning      *ConversionWarning
}

// DatatypeMappingRule maps one source-dialect column datatype onto the
// target dialect equivalent. Type names match after stripping any
// parenthesized precision qualifier and upper-casing.
type DatatypeMappingRule struct {
	DialectTypeS     constant.DialectType
	DialectTypeT     constant.DialectType
	DatatypeNameS    string
	DatatypeNameT    string
	PrecisionHandler PrecisionHandler
	Warning          *ConversionWarning
}
