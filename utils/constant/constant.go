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
package constant

import "strings"

// DialectType identifies a SQL-speaking database product.
type DialectType string

const (
	DialectTypeOracle     DialectType = "ORACLE"
	DialectTypeMySQL      DialectType = "MYSQL"
	DialectTypePostgresql DialectType = "POSTGRESQL"
	// DialectTypeTibero is Oracle-syntax-compatible, its mapping rules are
	// derived from the ORACLE rules at registry build time
	DialectTypeTibero DialectType = "TIBERO"
)

// DialectTypes lists every supported dialect tag.
var DialectTypes = []DialectType{
	DialectTypeOracle,
	DialectTypeMySQL,
	DialectTypePostgresql,
	DialectTypeTibero,
}

// ParseDialectType normalizes a user-supplied dialect name, the empty string
// is returned untyped when the name isn't supported.
func ParseDialectType(name string) (DialectType, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ORACLE":
		return DialectTypeOracle, true
	case "MYSQL", "MARIADB":
		return DialectTypeMySQL, true
	case "POSTGRESQL", "POSTGRES", "PG":
		return DialectTypePostgresql, true
	case "TIBERO":
		return DialectTypeTibero, true
	default:
		return "", false
	}
}

// IsOracleCompatible reports whether the dialect speaks Oracle syntax.
func (d DialectType) IsOracleCompatible() bool {
	return d == DialectTypeOracle || d == DialectTypeTibero
}

const (
	StringSeparatorComma        = ","
	StringSeparatorDot          = "."
	StringSeparatorSemicolon    = ";"
	StringSeparatorUnderline    = "_"
	StringSeparatorDoubleQuotes = "\""
	StringSeparatorSingleQuotes = "'"
	StringSplicingSymbol        = "||"
)

// Conversion warning severities
const (
	WarningSeverityInfo    = "INFO"
	WarningSeverityWarning = "WARNING"
	WarningSeverityError   = "ERROR"
)

// Conversion warning kinds
const (
	WarningKindParseFallback       = "PARSE_FALLBACK"
	WarningKindLossyConversion     = "LOSSY_CONVERSION"
	WarningKindNoEquivalent        = "NO_EQUIVALENT"
	WarningKindManualReview        = "MANUAL_REVIEW"
	WarningKindStatementFailed     = "STATEMENT_FAILED"
	WarningKindConversionFailed    = "CONVERSION_FAILED"
	WarningKindCosmeticRemoval     = "COSMETIC_REMOVAL"
	WarningKindExtensionRequired   = "EXTENSION_REQUIRED"
	WarningKindUnsupportedFeature  = "UNSUPPORTED_FEATURE"
	WarningKindBestEffortEmulation = "BEST_EFFORT_EMULATION"
)
