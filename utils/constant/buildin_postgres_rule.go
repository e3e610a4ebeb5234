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
	Postgres datatype names
*/
const (
	BuildInPostgresDatatypeSmallint        = "SMALLINT"
	BuildInPostgresDatatypeInteger         = "INTEGER"
	BuildInPostgresDatatypeBigint          = "BIGINT"
	BuildInPostgresDatatypeNumeric         = "NUMERIC"
	BuildInPostgresDatatypeReal            = "REAL"
	BuildInPostgresDatatypeDoublePrecision = "DOUBLE PRECISION"
	BuildInPostgresDatatypeCharacter       = "CHARACTER"
	BuildInPostgresDatatypeVarchar         = "VARCHAR"
	BuildInPostgresDatatypeText            = "TEXT"
	BuildInPostgresDatatypeBytea           = "BYTEA"
	BuildInPostgresDatatypeDate            = "DATE"
	BuildInPostgresDatatypeTime            = "TIME"
	BuildInPostgresDatatypeTimestamp       = "TIMESTAMP"
	BuildInPostgresDatatypeTimestamptz     = "TIMESTAMPTZ"
	BuildInPostgresDatatypeInterval        = "INTERVAL"
	BuildInPostgresDatatypeBoolean         = "BOOLEAN"
	BuildInPostgresDatatypeJSON            = "JSON"
	BuildInPostgresDatatypeJSONB           = "JSONB"
	BuildInPostgresDatatypeUUID            = "UUID"
	BuildInPostgresDatatypeXML             = "XML"
	BuildInPostgresDatatypeRefcursor       = "REFCURSOR"
)

// BuildInPostgresExtensionPgcrypto and friends name the extensions some
// conversions depend on, surfaced in warnings.
const (
	BuildInPostgresExtensionPgcrypto   = "pgcrypto"
	BuildInPostgresExtensionPgHintPlan = "pg_hint_plan"
	BuildInPostgresExtensionPgPartman  = "pg_partman"
	BuildInPostgresExtensionDblink     = "dblink"
)
