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

func fnRule(dialectS, dialectT constant.DialectType, nameS, nameT string, transform ParameterTransform) *FunctionMappingRule {
	return &FunctionMappingRule{
		DialectTypeS:       dialectS,
		DialectTypeT:       dialectT,
		FunctionNameS:      nameS,
		FunctionNameT:      nameT,
		ParameterTransform: transform,
	}
}

func fnRuleWarn(dialectS, dialectT constant.DialectType, nameS, nameT string, transform ParameterTransform, warning *ConversionWarning) *FunctionMappingRule {
	rule := fnRule(dialectS, dialectT, nameS, nameT, transform)
	rule.Warning = warning
	return rule
}

func fnRuleWrap(dialectS, dialectT constant.DialectType, nameS, nameT, template string) *FunctionMappingRule {
	rule := fnRule(dialectS, dialectT, nameS, nameT, ParameterTransformWrapWithFunction)
	rule.WrapTemplate = template
	return rule
}

func registerFunctionRules(r *FunctionRuleRegistry) {
	for _, rules := range [][]*FunctionMappingRule{
		oracleToMySQLFunctionRules,
		oracleToPostgresFunctionRules,
		mysqlToOracleFunctionRules,
		mysqlToPostgresFunctionRules,
		postgresToOracleFunctionRules,
		postgresToMySQLFunctionRules,
	} {
		for _, rule := range rules {
			r.Register(rule)
		}
	}
}

var (
	oracle   = constant.DialectTypeOracle
	mysql    = constant.DialectTypeMySQL
	postgres = constant.DialectTypePostgresql
)

// oracle -> mysql
var oracleToMySQLFunctionRules = []*FunctionMappingRule{
	fnRule(oracle, mysql, "NVL", "IFNULL", ParameterTransformNone),
	fnRule(oracle, mysql, "NVL2", "CASE", ParameterTransformToCaseWhen),
	fnRule(oracle, mysql, "DECODE", "CASE", ParameterTransformToCaseWhen),
	fnRule(oracle, mysql, "SYSDATE", "NOW()", ParameterTransformNone),
	fnRule(oracle, mysql, "SYSTIMESTAMP", "NOW(6)", ParameterTransformNone),
	fnRule(oracle, mysql, "CURRENT_DATE", "CURDATE()", ParameterTransformNone),
	fnRule(oracle, mysql, "TO_CHAR", "DATE_FORMAT", ParameterTransformDateFormatConvert),
	fnRule(oracle, mysql, "TO_DATE", "STR_TO_DATE", ParameterTransformDateFormatConvert),
	fnRule(oracle, mysql, "TO_TIMESTAMP", "STR_TO_DATE", ParameterTransformDateFormatConvert),
	fnRuleWrap(oracle, mysql, "TO_NUMBER", "CAST", "CAST(%s AS DECIMAL)"),
	fnRule(oracle, mysql, "INSTR", "LOCATE", ParameterTransformSwapFirstTwo),
	fnRule(oracle, mysql, "SUBSTR", "SUBSTRING", ParameterTransformNone),
	fnRule(oracle, mysql, "LENGTH", "CHAR_LENGTH", ParameterTransformNone),
	fnRule(oracle, mysql, "LENGTHB", "LENGTH", ParameterTransformNone),
	fnRule(oracle, mysql, "CHR", "CHAR", ParameterTransformNone),
	fnRule(oracle, mysql, "SYS_GUID", "UUID", ParameterTransformNone),
	fnRule(oracle, mysql, "LAST_DAY", "LAST_DAY", ParameterTransformNone),
	fnRuleWarn(oracle, mysql, "TRUNC", "TRUNCATE", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"oracle TRUNC over dates has no direct mysql equivalent, TRUNCATE only covers numerics",
			"use DATE(expr) or DATE_FORMAT for date truncation")),
	fnRuleWarn(oracle, mysql, "ADD_MONTHS", "DATE_ADD", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"ADD_MONTHS(date, n) maps to DATE_ADD(date, INTERVAL n MONTH), the interval clause needs manual rewriting", "")),
	fnRuleWarn(oracle, mysql, "MONTHS_BETWEEN", "TIMESTAMPDIFF", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"MONTHS_BETWEEN returns fractional months, TIMESTAMPDIFF(MONTH,...) truncates and swaps argument order", "")),
	fnRuleWarn(oracle, mysql, "LISTAGG", "GROUP_CONCAT", ParameterTransformNone,
		NewWarning(constant.WarningKindLossyConversion,
			"LISTAGG WITHIN GROUP ordering must be rewritten as GROUP_CONCAT(... ORDER BY ... SEPARATOR ...)", "")),
	fnRuleWarn(oracle, mysql, "REGEXP_LIKE", "REGEXP_LIKE", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"REGEXP_LIKE match-parameter flags differ between oracle and mysql 8.0", "")),
	fnRuleWarn(oracle, mysql, "REGEXP_SUBSTR", "REGEXP_SUBSTR", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"REGEXP_SUBSTR occurrence/position arguments differ between oracle and mysql 8.0", "")),
	fnRule(oracle, mysql, "UPPER", "UPPER", ParameterTransformNone),
	fnRule(oracle, mysql, "LOWER", "LOWER", ParameterTransformNone),
	fnRule(oracle, mysql, "LPAD", "LPAD", ParameterTransformNone),
	fnRule(oracle, mysql, "RPAD", "RPAD", ParameterTransformNone),
	fnRule(oracle, mysql, "GREATEST", "GREATEST", ParameterTransformNone),
	fnRule(oracle, mysql, "LEAST", "LEAST", ParameterTransformNone),
	fnRule(oracle, mysql, "MOD", "MOD", ParameterTransformNone),
	fnRule(oracle, mysql, "CEIL", "CEILING", ParameterTransformNone),
	fnRuleWrap(oracle, mysql, "USERENV", "", "NULL /* USERENV(%s) */"),
}

// oracle -> postgres
var oracleToPostgresFunctionRules = []*FunctionMappingRule{
	fnRule(oracle, postgres, "NVL", "COALESCE", ParameterTransformNone),
	fnRule(oracle, postgres, "NVL2", "CASE", ParameterTransformToCaseWhen),
	fnRule(oracle, postgres, "DECODE", "CASE", ParameterTransformToCaseWhen),
	fnRule(oracle, postgres, "SYSDATE", "CURRENT_TIMESTAMP", ParameterTransformNone),
	fnRule(oracle, postgres, "SYSTIMESTAMP", "CURRENT_TIMESTAMP", ParameterTransformNone),
	fnRule(oracle, postgres, "TO_CHAR", "TO_CHAR", ParameterTransformNone),
	fnRule(oracle, postgres, "TO_DATE", "TO_DATE", ParameterTransformNone),
	fnRule(oracle, postgres, "TO_TIMESTAMP", "TO_TIMESTAMP", ParameterTransformNone),
	fnRule(oracle, postgres, "TO_NUMBER", "TO_NUMBER", ParameterTransformNone),
	fnRule(oracle, postgres, "INSTR", "STRPOS", ParameterTransformNone),
	fnRule(oracle, postgres, "SUBSTR", "SUBSTR", ParameterTransformNone),
	fnRule(oracle, postgres, "LENGTH", "LENGTH", ParameterTransformNone),
	fnRule(oracle, postgres, "LENGTHB", "OCTET_LENGTH", ParameterTransformNone),
	fnRule(oracle, postgres, "CHR", "CHR", ParameterTransformNone),
	fnRuleWarn(oracle, postgres, "SYS_GUID", "GEN_RANDOM_UUID", ParameterTransformNone,
		NewWarning(constant.WarningKindExtensionRequired,
			"GEN_RANDOM_UUID() needs postgres 13+ or the pgcrypto extension",
			"CREATE EXTENSION IF NOT EXISTS pgcrypto")),
	fnRuleWarn(oracle, postgres, "ADD_MONTHS", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"ADD_MONTHS(date, n) must be rewritten as date + (n || ' months')::interval", "")),
	fnRuleWarn(oracle, postgres, "MONTHS_BETWEEN", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"MONTHS_BETWEEN must be rewritten over AGE()/EXTRACT arithmetic", "")),
	fnRuleWarn(oracle, postgres, "LAST_DAY", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"LAST_DAY must be rewritten as (date_trunc('month', d) + interval '1 month - 1 day')::date", "")),
	fnRuleWarn(oracle, postgres, "LISTAGG", "STRING_AGG", ParameterTransformNone,
		NewWarning(constant.WarningKindLossyConversion,
			"LISTAGG WITHIN GROUP ordering must move into STRING_AGG(expr, sep ORDER BY ...)", "")),
	fnRuleWarn(oracle, postgres, "TRUNC", "TRUNC", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"oracle TRUNC over dates maps to DATE_TRUNC('day', ...), the numeric form carries over unchanged", "")),
	fnRule(oracle, postgres, "REGEXP_LIKE", "REGEXP_LIKE", ParameterTransformNone),
	fnRule(oracle, postgres, "REGEXP_SUBSTR", "REGEXP_SUBSTR", ParameterTransformNone),
	fnRule(oracle, postgres, "CEIL", "CEIL", ParameterTransformNone),
	fnRule(oracle, postgres, "MOD", "MOD", ParameterTransformNone),
	fnRule(oracle, postgres, "GREATEST", "GREATEST", ParameterTransformNone),
	fnRule(oracle, postgres, "LEAST", "LEAST", ParameterTransformNone),
}

// mysql -> oracle
var mysqlToOracleFunctionRules = []*FunctionMappingRule{
	fnRule(mysql, oracle, "IFNULL", "NVL", ParameterTransformNone),
	fnRule(mysql, oracle, "IF", "CASE", ParameterTransformToCaseWhen),
	fnRule(mysql, oracle, "NOW", "SYSDATE", ParameterTransformNone),
	fnRule(mysql, oracle, "SYSDATE", "SYSDATE", ParameterTransformNone),
	fnRuleWrap(mysql, oracle, "CURDATE", "TRUNC", "TRUNC(SYSDATE)"),
	fnRule(mysql, oracle, "DATE_FORMAT", "TO_CHAR", ParameterTransformDateFormatConvert),
	fnRule(mysql, oracle, "STR_TO_DATE", "TO_DATE", ParameterTransformDateFormatConvert),
	fnRule(mysql, oracle, "LOCATE", "INSTR", ParameterTransformSwapFirstTwo),
	fnRule(mysql, oracle, "SUBSTRING", "SUBSTR", ParameterTransformNone),
	fnRule(mysql, oracle, "CHAR_LENGTH", "LENGTH", ParameterTransformNone),
	fnRule(mysql, oracle, "UUID", "SYS_GUID", ParameterTransformNone),
	fnRule(mysql, oracle, "TRUNCATE", "TRUNC", ParameterTransformNone),
	fnRule(mysql, oracle, "CEILING", "CEIL", ParameterTransformNone),
	fnRuleWarn(mysql, oracle, "GROUP_CONCAT", "LISTAGG", ParameterTransformNone,
		NewWarning(constant.WarningKindLossyConversion,
			"GROUP_CONCAT separators and ordering must be rewritten as LISTAGG(expr, sep) WITHIN GROUP (ORDER BY ...)", "")),
	fnRuleWarn(mysql, oracle, "RAND", "DBMS_RANDOM.VALUE", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"RAND() maps to DBMS_RANDOM.VALUE, seeded RAND(n) has no direct equivalent", "")),
	fnRuleWarn(mysql, oracle, "CONCAT", "CONCAT", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"oracle CONCAT accepts exactly two arguments, n-ary calls must chain or use ||", "")),
	fnRuleWarn(mysql, oracle, "DATE_ADD", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"DATE_ADD(date, INTERVAL ...) must be rewritten with oracle interval arithmetic", "")),
	fnRuleWarn(mysql, oracle, "DATE_SUB", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"DATE_SUB(date, INTERVAL ...) must be rewritten with oracle interval arithmetic", "")),
}

// mysql -> postgres
var mysqlToPostgresFunctionRules = []*FunctionMappingRule{
	fnRule(mysql, postgres, "IFNULL", "COALESCE", ParameterTransformNone),
	fnRule(mysql, postgres, "IF", "CASE", ParameterTransformToCaseWhen),
	fnRule(mysql, postgres, "NOW", "NOW", ParameterTransformNone),
	fnRule(mysql, postgres, "SYSDATE", "CURRENT_TIMESTAMP", ParameterTransformNone),
	fnRule(mysql, postgres, "CURDATE", "CURRENT_DATE", ParameterTransformNone),
	fnRule(mysql, postgres, "DATE_FORMAT", "TO_CHAR", ParameterTransformDateFormatConvert),
	fnRule(mysql, postgres, "STR_TO_DATE", "TO_DATE", ParameterTransformDateFormatConvert),
	fnRule(mysql, postgres, "LOCATE", "STRPOS", ParameterTransformSwapFirstTwo),
	fnRule(mysql, postgres, "SUBSTRING", "SUBSTRING", ParameterTransformNone),
	fnRule(mysql, postgres, "CHAR_LENGTH", "CHAR_LENGTH", ParameterTransformNone),
	fnRule(mysql, postgres, "RAND", "RANDOM", ParameterTransformNone),
	fnRule(mysql, postgres, "CEILING", "CEIL", ParameterTransformNone),
	fnRuleWarn(mysql, postgres, "UUID", "GEN_RANDOM_UUID", ParameterTransformNone,
		NewWarning(constant.WarningKindExtensionRequired,
			"GEN_RANDOM_UUID() needs postgres 13+ or the pgcrypto extension",
			"CREATE EXTENSION IF NOT EXISTS pgcrypto")),
	fnRuleWarn(mysql, postgres, "GROUP_CONCAT", "STRING_AGG", ParameterTransformNone,
		NewWarning(constant.WarningKindLossyConversion,
			"GROUP_CONCAT separators and ordering must move into STRING_AGG(expr, sep ORDER BY ...)", "")),
	fnRuleWarn(mysql, postgres, "DATE_ADD", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"DATE_ADD(date, INTERVAL n unit) must be rewritten as date + interval 'n unit'", "")),
	fnRuleWarn(mysql, postgres, "DATE_SUB", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"DATE_SUB(date, INTERVAL n unit) must be rewritten as date - interval 'n unit'", "")),
}

// postgres -> oracle
var postgresToOracleFunctionRules = []*FunctionMappingRule{
	fnRule(postgres, oracle, "NOW", "SYSDATE", ParameterTransformNone),
	fnRule(postgres, oracle, "STRPOS", "INSTR", ParameterTransformNone),
	fnRule(postgres, oracle, "RANDOM", "DBMS_RANDOM.VALUE", ParameterTransformNone),
	fnRule(postgres, oracle, "GEN_RANDOM_UUID", "SYS_GUID", ParameterTransformNone),
	fnRule(postgres, oracle, "CHAR_LENGTH", "LENGTH", ParameterTransformNone),
	fnRule(postgres, oracle, "OCTET_LENGTH", "LENGTHB", ParameterTransformNone),
	fnRuleWarn(postgres, oracle, "STRING_AGG", "LISTAGG", ParameterTransformNone,
		NewWarning(constant.WarningKindLossyConversion,
			"STRING_AGG ordering must be rewritten as LISTAGG ... WITHIN GROUP (ORDER BY ...)", "")),
	fnRuleWarn(postgres, oracle, "DATE_TRUNC", "TRUNC", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"DATE_TRUNC('unit', d) maps to TRUNC(d, 'fmt'), the unit names differ", "")),
}

// postgres -> mysql
var postgresToMySQLFunctionRules = []*FunctionMappingRule{
	fnRule(postgres, mysql, "NOW", "NOW", ParameterTransformNone),
	fnRule(postgres, mysql, "CURRENT_TIMESTAMP", "NOW()", ParameterTransformNone),
	fnRule(postgres, mysql, "STRPOS", "LOCATE", ParameterTransformSwapFirstTwo),
	fnRule(postgres, mysql, "RANDOM", "RAND", ParameterTransformNone),
	fnRule(postgres, mysql, "TO_CHAR", "DATE_FORMAT", ParameterTransformDateFormatConvert),
	fnRule(postgres, mysql, "TO_DATE", "STR_TO_DATE", ParameterTransformDateFormatConvert),
	fnRule(postgres, mysql, "TO_TIMESTAMP", "STR_TO_DATE", ParameterTransformDateFormatConvert),
	fnRule(postgres, mysql, "GEN_RANDOM_UUID", "UUID", ParameterTransformNone),
	fnRuleWarn(postgres, mysql, "STRING_AGG", "GROUP_CONCAT", ParameterTransformNone,
		NewWarning(constant.WarningKindLossyConversion,
			"STRING_AGG(expr, sep ORDER BY ...) must be rewritten as GROUP_CONCAT(expr ORDER BY ... SEPARATOR sep)", "")),
	fnRuleWarn(postgres, mysql, "DATE_TRUNC", "", ParameterTransformNone,
		NewWarning(constant.WarningKindManualReview,
			"DATE_TRUNC has no mysql equivalent, use DATE_FORMAT buckets", "")),
}
