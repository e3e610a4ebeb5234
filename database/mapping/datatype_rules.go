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

func dtRule(dialectS, dialectT constant.DialectType, nameS, nameT string, handler PrecisionHandler) *DatatypeMappingRule {
	return &DatatypeMappingRule{
		DialectTypeS:     dialectS,
		DialectTypeT:     dialectT,
		DatatypeNameS:    nameS,
		DatatypeNameT:    nameT,
		PrecisionHandler: handler,
	}
}

func dtRuleWarn(dialectS, dialectT constant.DialectType, nameS, nameT string, handler PrecisionHandler, warning *ConversionWarning) *DatatypeMappingRule {
	rule := dtRule(dialectS, dialectT, nameS, nameT, handler)
	rule.Warning = warning
	return rule
}

func registerDatatypeRules(r *DatatypeRuleRegistry) {
	for _, rules := range [][]*DatatypeMappingRule{
		oracleToMySQLDatatypeRules,
		oracleToPostgresDatatypeRules,
		mysqlToOracleDatatypeRules,
		mysqlToPostgresDatatypeRules,
		postgresToOracleDatatypeRules,
		postgresToMySQLDatatypeRules,
	} {
		for _, rule := range rules {
			r.Register(rule)
		}
	}
}

// oracle -> mysql
// https://docs.oracle.com/cd/E12151_01/doc.150/e12155/oracle_mysql_compared.htm
var oracleToMySQLDatatypeRules = []*DatatypeMappingRule{
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeNumber, constant.BuildInMySQLDatatypeDecimal, PrecisionHandlerMapToInteger),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeVarchar2, constant.BuildInMySQLDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeNvarchar2, constant.BuildInMySQLDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeChar, constant.BuildInMySQLDatatypeChar, PrecisionHandlerPreserve),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeNchar, constant.BuildInMySQLDatatypeChar, PrecisionHandlerPreserve),
	dtRuleWarn(oracle, mysql, constant.BuildInOracleDatatypeDate, constant.BuildInMySQLDatatypeDatetime, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion,
			"oracle DATE carries a time component, mapped to DATETIME rather than DATE", "")),
	dtRuleWarn(oracle, mysql, constant.BuildInOracleDatatypeTimestamp, constant.BuildInMySQLDatatypeDatetime, PrecisionHandlerConvert,
		NewWarning(constant.WarningKindLossyConversion,
			"mysql DATETIME fractional seconds cap at 6 digits, oracle TIMESTAMP precision above 6 is truncated", "")),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeClob, constant.BuildInMySQLDatatypeLongtext, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeNclob, constant.BuildInMySQLDatatypeLongtext, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeBlob, constant.BuildInMySQLDatatypeLongblob, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeRaw, constant.BuildInMySQLDatatypeVarbinary, PrecisionHandlerPreserve),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeLong, constant.BuildInMySQLDatatypeLongtext, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeLongRaw, constant.BuildInMySQLDatatypeLongblob, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeBinaryFloat, constant.BuildInMySQLDatatypeFloat, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeBinaryDouble, constant.BuildInMySQLDatatypeDouble, PrecisionHandlerDrop),
	dtRule(oracle, mysql, constant.BuildInOracleDatatypeFloat, constant.BuildInMySQLDatatypeDouble, PrecisionHandlerDrop),
	dtRuleWarn(oracle, mysql, constant.BuildInOracleDatatypeRowid, "VARCHAR(18)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "ROWID has no mysql equivalent, mapped to VARCHAR(18)", "")),
	dtRuleWarn(oracle, mysql, constant.BuildInOracleDatatypeUrowid, "VARCHAR(4000)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "UROWID has no mysql equivalent, mapped to VARCHAR(4000)", "")),
	dtRuleWarn(oracle, mysql, constant.BuildInOracleDatatypeXmltype, constant.BuildInMySQLDatatypeLongtext, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "XMLTYPE mapped to LONGTEXT, xml validation and xpath functions are lost", "")),
	dtRuleWarn(oracle, mysql, constant.BuildInOracleDatatypeBfile, "VARCHAR(255)", PrecisionHandlerDrop,
		NewErrorWarning(constant.WarningKindNoEquivalent,
			"BFILE references an external file, mysql has no equivalent, mapped to VARCHAR(255) locator text", "")),
}

// oracle -> postgres
var oracleToPostgresDatatypeRules = []*DatatypeMappingRule{
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeNumber, constant.BuildInPostgresDatatypeNumeric, PrecisionHandlerMapToInteger),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeVarchar2, constant.BuildInPostgresDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeNvarchar2, constant.BuildInPostgresDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeChar, "CHAR", PrecisionHandlerPreserve),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeNchar, "CHAR", PrecisionHandlerPreserve),
	dtRuleWarn(oracle, postgres, constant.BuildInOracleDatatypeDate, constant.BuildInPostgresDatatypeTimestamp, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion,
			"oracle DATE carries a time component, mapped to TIMESTAMP(0) rather than DATE", "")),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeTimestamp, constant.BuildInPostgresDatatypeTimestamp, PrecisionHandlerPreserve),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeClob, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeNclob, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeBlob, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeRaw, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeLong, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeLongRaw, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeBinaryFloat, constant.BuildInPostgresDatatypeReal, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeBinaryDouble, constant.BuildInPostgresDatatypeDoublePrecision, PrecisionHandlerDrop),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeFloat, constant.BuildInPostgresDatatypeDoublePrecision, PrecisionHandlerDrop),
	dtRuleWarn(oracle, postgres, constant.BuildInOracleDatatypeRowid, "VARCHAR(18)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "ROWID has no postgres equivalent, mapped to VARCHAR(18), consider ctid", "")),
	dtRule(oracle, postgres, constant.BuildInOracleDatatypeXmltype, constant.BuildInPostgresDatatypeXML, PrecisionHandlerDrop),
	dtRuleWarn(oracle, postgres, constant.BuildInOracleDatatypeBfile, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop,
		NewErrorWarning(constant.WarningKindNoEquivalent,
			"BFILE references an external file, postgres has no equivalent, mapped to TEXT locator text", "")),
}

// mysql -> oracle, integer widths land on the NUMBER precision that holds
// the full source range
var mysqlToOracleDatatypeRules = []*DatatypeMappingRule{
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeTinyint, "NUMBER(3,0)", PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeSmallint, "NUMBER(5,0)", PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeMediumint, "NUMBER(7,0)", PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeInt, "NUMBER(10,0)", PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeBigint, "NUMBER(19,0)", PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeDecimal, constant.BuildInOracleDatatypeNumber, PrecisionHandlerPreserve),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeFloat, constant.BuildInOracleDatatypeBinaryFloat, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeDouble, constant.BuildInOracleDatatypeBinaryDouble, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeVarchar, constant.BuildInOracleDatatypeVarchar2, PrecisionHandlerPreserve),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeChar, constant.BuildInOracleDatatypeChar, PrecisionHandlerPreserve),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeText, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeTinytext, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeMediumtext, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeLongtext, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeBlob, constant.BuildInOracleDatatypeBlob, PrecisionHandlerDrop),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeLongblob, constant.BuildInOracleDatatypeBlob, PrecisionHandlerDrop),
	dtRuleWarn(mysql, oracle, constant.BuildInMySQLDatatypeDatetime, constant.BuildInOracleDatatypeDate, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion,
			"DATETIME fractional seconds are lost in oracle DATE, use TIMESTAMP when sub-second precision matters", "")),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeTimestamp, constant.BuildInOracleDatatypeTimestamp, PrecisionHandlerPreserve),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeDate, constant.BuildInOracleDatatypeDate, PrecisionHandlerDrop),
	dtRuleWarn(mysql, oracle, constant.BuildInMySQLDatatypeTime, constant.BuildInOracleDatatypeDate, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "TIME has no oracle equivalent, mapped to DATE with the date part zeroed", "")),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeYear, "NUMBER(4,0)", PrecisionHandlerDrop),
	dtRuleWarn(mysql, oracle, constant.BuildInMySQLDatatypeEnum, constant.BuildInOracleDatatypeVarchar2, PrecisionHandlerConvert,
		NewWarning(constant.WarningKindLossyConversion, "ENUM mapped to VARCHAR2, add a CHECK constraint to keep the value set", "")),
	dtRuleWarn(mysql, oracle, constant.BuildInMySQLDatatypeSet, constant.BuildInOracleDatatypeVarchar2, PrecisionHandlerConvert,
		NewWarning(constant.WarningKindLossyConversion, "SET mapped to VARCHAR2, membership semantics are lost", "")),
	dtRuleWarn(mysql, oracle, constant.BuildInMySQLDatatypeJSON, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "JSON mapped to CLOB, add an IS JSON check constraint on oracle 12c+", "")),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeVarbinary, constant.BuildInOracleDatatypeRaw, PrecisionHandlerPreserve),
	dtRule(mysql, oracle, constant.BuildInMySQLDatatypeBinary, constant.BuildInOracleDatatypeRaw, PrecisionHandlerPreserve),
	dtRuleWarn(mysql, oracle, constant.BuildInMySQLDatatypeBit, constant.BuildInOracleDatatypeRaw, PrecisionHandlerConvert,
		NewWarning(constant.WarningKindLossyConversion, "BIT mapped to RAW, bitwise column semantics are lost", "")),
}

// mysql -> postgres
var mysqlToPostgresDatatypeRules = []*DatatypeMappingRule{
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeTinyint, constant.BuildInPostgresDatatypeSmallint, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeSmallint, constant.BuildInPostgresDatatypeSmallint, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeMediumint, constant.BuildInPostgresDatatypeInteger, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeInt, constant.BuildInPostgresDatatypeInteger, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeBigint, constant.BuildInPostgresDatatypeBigint, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeDecimal, constant.BuildInPostgresDatatypeNumeric, PrecisionHandlerPreserve),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeFloat, constant.BuildInPostgresDatatypeReal, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeDouble, constant.BuildInPostgresDatatypeDoublePrecision, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeVarchar, constant.BuildInPostgresDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeChar, "CHAR", PrecisionHandlerPreserve),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeText, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeTinytext, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeMediumtext, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeLongtext, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeBlob, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeLongblob, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeDatetime, constant.BuildInPostgresDatatypeTimestamp, PrecisionHandlerPreserve),
	dtRuleWarn(mysql, postgres, constant.BuildInMySQLDatatypeTimestamp, constant.BuildInPostgresDatatypeTimestamptz, PrecisionHandlerPreserve,
		NewWarning(constant.WarningKindLossyConversion,
			"mysql TIMESTAMP is session-timezone converted, TIMESTAMPTZ is the closest match but storage differs", "")),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeDate, constant.BuildInPostgresDatatypeDate, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeTime, constant.BuildInPostgresDatatypeTime, PrecisionHandlerPreserve),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeYear, constant.BuildInPostgresDatatypeSmallint, PrecisionHandlerDrop),
	dtRuleWarn(mysql, postgres, constant.BuildInMySQLDatatypeEnum, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "ENUM mapped to TEXT", "declare a postgres enum type with CREATE TYPE ... AS ENUM")),
	dtRuleWarn(mysql, postgres, constant.BuildInMySQLDatatypeSet, constant.BuildInPostgresDatatypeText, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "SET mapped to TEXT, consider a text[] column", "")),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeJSON, constant.BuildInPostgresDatatypeJSONB, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeVarbinary, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeBinary, constant.BuildInPostgresDatatypeBytea, PrecisionHandlerDrop),
	dtRule(mysql, postgres, constant.BuildInMySQLDatatypeBit, "BIT", PrecisionHandlerPreserve),
}

// postgres -> oracle
var postgresToOracleDatatypeRules = []*DatatypeMappingRule{
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeSmallint, "NUMBER(5,0)", PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeInteger, "NUMBER(10,0)", PrecisionHandlerDrop),
	dtRule(postgres, oracle, "INT", "NUMBER(10,0)", PrecisionHandlerDrop),
	dtRule(postgres, oracle, "INT4", "NUMBER(10,0)", PrecisionHandlerDrop),
	dtRule(postgres, oracle, "INT8", "NUMBER(19,0)", PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeBigint, "NUMBER(19,0)", PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeNumeric, constant.BuildInOracleDatatypeNumber, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, "DECIMAL", constant.BuildInOracleDatatypeNumber, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeReal, constant.BuildInOracleDatatypeBinaryFloat, PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeDoublePrecision, constant.BuildInOracleDatatypeBinaryDouble, PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeVarchar, constant.BuildInOracleDatatypeVarchar2, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, "CHARACTER VARYING", constant.BuildInOracleDatatypeVarchar2, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeCharacter, constant.BuildInOracleDatatypeChar, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, "CHAR", constant.BuildInOracleDatatypeChar, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeText, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeBytea, constant.BuildInOracleDatatypeBlob, PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeTimestamp, constant.BuildInOracleDatatypeTimestamp, PrecisionHandlerPreserve),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeTimestamptz, "TIMESTAMP WITH TIME ZONE", PrecisionHandlerDrop),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeDate, constant.BuildInOracleDatatypeDate, PrecisionHandlerDrop),
	dtRuleWarn(postgres, oracle, constant.BuildInPostgresDatatypeBoolean, "NUMBER(1,0)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "BOOLEAN mapped to NUMBER(1,0) with 0/1 semantics", "")),
	dtRuleWarn(postgres, oracle, constant.BuildInPostgresDatatypeJSON, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "JSON mapped to CLOB, add an IS JSON check constraint on oracle 12c+", "")),
	dtRuleWarn(postgres, oracle, constant.BuildInPostgresDatatypeJSONB, constant.BuildInOracleDatatypeClob, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "JSONB mapped to CLOB, binary json indexing is lost", "")),
	dtRuleWarn(postgres, oracle, constant.BuildInPostgresDatatypeUUID, "VARCHAR2(36)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "UUID mapped to VARCHAR2(36), consider RAW(16) with SYS_GUID defaults", "")),
	dtRule(postgres, oracle, constant.BuildInPostgresDatatypeXML, constant.BuildInOracleDatatypeXmltype, PrecisionHandlerDrop),
	dtRuleWarn(postgres, oracle, "SERIAL", "NUMBER(10,0)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindManualReview, "SERIAL mapped to NUMBER(10,0), create a sequence plus trigger or identity column", "")),
	dtRuleWarn(postgres, oracle, "BIGSERIAL", "NUMBER(19,0)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindManualReview, "BIGSERIAL mapped to NUMBER(19,0), create a sequence plus trigger or identity column", "")),
	dtRuleWarn(postgres, oracle, constant.BuildInPostgresDatatypeInterval, "INTERVAL DAY TO SECOND", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindManualReview, "postgres INTERVAL spans year-month and day-second ranges, oracle splits them into two types", "")),
}

// postgres -> mysql
var postgresToMySQLDatatypeRules = []*DatatypeMappingRule{
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeSmallint, constant.BuildInMySQLDatatypeSmallint, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeInteger, constant.BuildInMySQLDatatypeInt, PrecisionHandlerDrop),
	dtRule(postgres, mysql, "INT", constant.BuildInMySQLDatatypeInt, PrecisionHandlerDrop),
	dtRule(postgres, mysql, "INT4", constant.BuildInMySQLDatatypeInt, PrecisionHandlerDrop),
	dtRule(postgres, mysql, "INT8", constant.BuildInMySQLDatatypeBigint, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeBigint, constant.BuildInMySQLDatatypeBigint, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeNumeric, constant.BuildInMySQLDatatypeDecimal, PrecisionHandlerPreserve),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeReal, constant.BuildInMySQLDatatypeFloat, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeDoublePrecision, constant.BuildInMySQLDatatypeDouble, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeVarchar, constant.BuildInMySQLDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(postgres, mysql, "CHARACTER VARYING", constant.BuildInMySQLDatatypeVarchar, PrecisionHandlerPreserve),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeCharacter, constant.BuildInMySQLDatatypeChar, PrecisionHandlerPreserve),
	dtRule(postgres, mysql, "CHAR", constant.BuildInMySQLDatatypeChar, PrecisionHandlerPreserve),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeText, constant.BuildInMySQLDatatypeLongtext, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeBytea, constant.BuildInMySQLDatatypeLongblob, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeTimestamp, constant.BuildInMySQLDatatypeDatetime, PrecisionHandlerPreserve),
	dtRuleWarn(postgres, mysql, constant.BuildInPostgresDatatypeTimestamptz, constant.BuildInMySQLDatatypeTimestamp, PrecisionHandlerPreserve,
		NewWarning(constant.WarningKindLossyConversion,
			"TIMESTAMPTZ offset handling differs from mysql TIMESTAMP session conversion", "")),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeDate, constant.BuildInMySQLDatatypeDate, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeTime, constant.BuildInMySQLDatatypeTime, PrecisionHandlerPreserve),
	dtRuleWarn(postgres, mysql, constant.BuildInPostgresDatatypeBoolean, "TINYINT(1)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "BOOLEAN mapped to TINYINT(1) with 0/1 semantics", "")),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeJSON, constant.BuildInMySQLDatatypeJSON, PrecisionHandlerDrop),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeJSONB, constant.BuildInMySQLDatatypeJSON, PrecisionHandlerDrop),
	dtRuleWarn(postgres, mysql, constant.BuildInPostgresDatatypeUUID, "CHAR(36)", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "UUID mapped to CHAR(36)", "")),
	dtRule(postgres, mysql, constant.BuildInPostgresDatatypeXML, constant.BuildInMySQLDatatypeLongtext, PrecisionHandlerDrop),
	dtRuleWarn(postgres, mysql, "SERIAL", "INT AUTO_INCREMENT", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindManualReview, "SERIAL mapped to INT AUTO_INCREMENT, sequence ownership semantics differ", "")),
	dtRuleWarn(postgres, mysql, "BIGSERIAL", "BIGINT AUTO_INCREMENT", PrecisionHandlerDrop,
		NewWarning(constant.WarningKindManualReview, "BIGSERIAL mapped to BIGINT AUTO_INCREMENT, sequence ownership semantics differ", "")),
	dtRuleWarn(postgres, mysql, constant.BuildInPostgresDatatypeInterval, constant.BuildInMySQLDatatypeTime, PrecisionHandlerDrop,
		NewWarning(constant.WarningKindLossyConversion, "INTERVAL mapped to TIME, ranges beyond 838:59:59 overflow", "")),
}
