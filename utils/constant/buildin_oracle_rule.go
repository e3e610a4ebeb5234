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
	Oracle builtin runtime package names
*/
const (
	BuildInOraclePackageDBMSOutput    = "DBMS_OUTPUT"
	BuildInOraclePackageDBMSRandom    = "DBMS_RANDOM"
	BuildInOraclePackageDBMSLob       = "DBMS_LOB"
	BuildInOraclePackageDBMSUtility   = "DBMS_UTILITY"
	BuildInOraclePackageDBMSLock      = "DBMS_LOCK"
	BuildInOraclePackageDBMSCrypto    = "DBMS_CRYPTO"
	BuildInOraclePackageDBMSSQL       = "DBMS_SQL"
	BuildInOraclePackageDBMSScheduler = "DBMS_SCHEDULER"
	BuildInOraclePackageUTLFile       = "UTL_FILE"
	BuildInOraclePackageUTLHTTP       = "UTL_HTTP"
)

// BuildInOracleRuntimePackages lists every vendor runtime package the
// converter probes for.
var BuildInOracleRuntimePackages = []string{
	BuildInOraclePackageDBMSOutput,
	BuildInOraclePackageDBMSRandom,
	BuildInOraclePackageDBMSLob,
	BuildInOraclePackageDBMSUtility,
	BuildInOraclePackageDBMSLock,
	BuildInOraclePackageDBMSCrypto,
	BuildInOraclePackageDBMSSQL,
	BuildInOraclePackageDBMSScheduler,
	BuildInOraclePackageUTLFile,
	BuildInOraclePackageUTLHTTP,
}

/*
	Oracle datatype names
*/
const (
	BuildInOracleDatatypeNumber       = "NUMBER"
	BuildInOracleDatatypeVarchar2     = "VARCHAR2"
	BuildInOracleDatatypeNvarchar2    = "NVARCHAR2"
	BuildInOracleDatatypeChar         = "CHAR"
	BuildInOracleDatatypeNchar        = "NCHAR"
	BuildInOracleDatatypeDate         = "DATE"
	BuildInOracleDatatypeTimestamp    = "TIMESTAMP"
	BuildInOracleDatatypeClob         = "CLOB"
	BuildInOracleDatatypeNclob        = "NCLOB"
	BuildInOracleDatatypeBlob         = "BLOB"
	BuildInOracleDatatypeRaw          = "RAW"
	BuildInOracleDatatypeLong         = "LONG"
	BuildInOracleDatatypeLongRaw      = "LONG RAW"
	BuildInOracleDatatypeBinaryFloat  = "BINARY_FLOAT"
	BuildInOracleDatatypeBinaryDouble = "BINARY_DOUBLE"
	BuildInOracleDatatypeFloat        = "FLOAT"
	BuildInOracleDatatypeRowid        = "ROWID"
	BuildInOracleDatatypeUrowid       = "UROWID"
	BuildInOracleDatatypeXmltype      = "XMLTYPE"
	BuildInOracleDatatypeBfile        = "BFILE"
)

/*
	Oracle-only DDL storage options stripped by the fallback pipeline
*/
const (
	BuildInOracleDDLOptionTablespace      = "TABLESPACE"
	BuildInOracleDDLOptionStorage         = "STORAGE"
	BuildInOracleDDLOptionPctfree         = "PCTFREE"
	BuildInOracleDDLOptionPctused         = "PCTUSED"
	BuildInOracleDDLOptionInitrans        = "INITRANS"
	BuildInOracleDDLOptionMaxtrans        = "MAXTRANS"
	BuildInOracleDDLOptionLogging         = "LOGGING"
	BuildInOracleDDLOptionNologging       = "NOLOGGING"
	BuildInOracleDDLOptionCompress        = "COMPRESS"
	BuildInOracleDDLOptionNocompress      = "NOCOMPRESS"
	BuildInOracleDDLOptionCache           = "CACHE"
	BuildInOracleDDLOptionNocache         = "NOCACHE"
	BuildInOracleDDLOptionParallel        = "PARALLEL"
	BuildInOracleDDLOptionMonitoring      = "MONITORING"
	BuildInOracleDDLOptionRowdependencies = "ROWDEPENDENCIES"
	BuildInOracleDDLOptionSegmentCreation = "SEGMENT CREATION"
	BuildInOracleDDLOptionRowMovement     = "ROW MOVEMENT"
	BuildInOracleDDLOptionFlashbackArch   = "FLASHBACK ARCHIVE"
	BuildInOracleDDLOptionSecurefile      = "SECUREFILE"
)

/*
	Oracle optimizer hint names
*/
const (
	BuildInOracleHintIndex     = "INDEX"
	BuildInOracleHintNoIndex   = "NO_INDEX"
	BuildInOracleHintLeading   = "LEADING"
	BuildInOracleHintParallel  = "PARALLEL"
	BuildInOracleHintFull      = "FULL"
	BuildInOracleHintUseNl     = "USE_NL"
	BuildInOracleHintUseHash   = "USE_HASH"
	BuildInOracleHintFirstRows = "FIRST_ROWS"
	BuildInOracleHintAllRows   = "ALL_ROWS"
	BuildInOracleHintAppend    = "APPEND"
)
