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

/*
	MySQL datatype names
*/
const (
	BuildInMySQLDatatypeTinyint    = "TINYINT"
	BuildInMySQLDatatypeSmallint   = "SMALLINT"
	BuildInMySQLDatatypeMediumint  = "MEDIUMINT"
	BuildInMySQLDatatypeInt        = "INT"
	BuildInMySQLDatatypeBigint     = "BIGINT"
	BuildInMySQLDatatypeDecimal    = "DECIMAL"
	BuildInMySQLDatatypeFloat      = "FLOAT"
	BuildInMySQLDatatypeDouble     = "DOUBLE"
	BuildInMySQLDatatypeVarchar    = "VARCHAR"
	BuildInMySQLDatatypeChar       = "CHAR"
	BuildInMySQLDatatypeText       = "TEXT"
	BuildInMySQLDatatypeTinytext   = "TINYTEXT"
	BuildInMySQLDatatypeMediumtext = "MEDIUMTEXT"
	BuildInMySQLDatatypeLongtext   = "LONGTEXT"
	BuildInMySQLDatatypeBlob       = "BLOB"
	BuildInMySQLDatatypeLongblob   = "LONGBLOB"
	BuildInMySQLDatatypeDatetime   = "DATETIME"
	BuildInMySQLDatatypeTimestamp  = "TIMESTAMP"
	BuildInMySQLDatatypeDate       = "DATE"
	BuildInMySQLDatatypeTime       = "TIME"
	BuildInMySQLDatatypeYear       = "YEAR"
	BuildInMySQLDatatypeEnum       = "ENUM"
	BuildInMySQLDatatypeSet        = "SET"
	BuildInMySQLDatatypeJSON       = "JSON"
	BuildInMySQLDatatypeVarbinary  = "VARBINARY"
	BuildInMySQLDatatypeBinary     = "BINARY"
	BuildInMySQLDatatypeBit        = "BIT"
)
