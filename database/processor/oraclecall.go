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
	"fmt"
	"regexp"
	"strings"

	"github.com/wentaojin/sqltrans/database/mapping"
	"github.com/wentaojin/sqltrans/utils/constant"
	"github.com/wentaojin/sqltrans/utils/stringutil"
)

var oraclePackageCallRe = regexp.MustCompile(`\b(DBMS_[A-Za-z_]+|UTL_[A-Za-z_]+)\s*\.\s*([A-Za-z_][\w$#]*)\s*(\()?`)

// packages whose members never have a target-side equivalent, every call is
// replaced with a placeholder and flagged at ERROR severity
var noEquivalentPackages = map[string]string{
	constant.BuildInOraclePackageUTLFile:       "file-system access from SQL",
	constant.BuildInOraclePackageUTLHTTP:       "outbound HTTP from SQL",
	constant.BuildInOraclePackageDBMSScheduler: "database-resident job scheduling",
	constant.BuildInOraclePackageDBMSSQL:       "dynamic-cursor APIs",
}

// ConvertOracleCalls rewrites oracle builtin package call sites into native
// equivalents where one exists and placeholders where none can.
func ConvertOracleCalls(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}
	sql = rewritePackageCalls(sql, dialectT, res)
	return rewriteRaiseApplicationError(sql, dialectT, res)
}

func rewritePackageCalls(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	if !strings.Contains(stringutil.StringUpper(sql), "DBMS_") && !strings.Contains(stringutil.StringUpper(sql), "UTL_") {
		return sql
	}
	masked := MaskStringLiterals(sql)
	locs := oraclePackageCallRe.FindAllStringSubmatchIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}

	var b strings.Builder
	pos := 0
	for _, loc := range locs {
		if loc[0] < pos {
			continue
		}
		pkg := stringutil.StringUpper(sql[loc[2]:loc[3]])
		member := stringutil.StringUpper(sql[loc[4]:loc[5]])
		callEnd := loc[1]
		args := ""
		if loc[6] >= 0 {
			end := stringutil.FindMatchingBracket(sql, loc[7])
			if end == stringutil.BracketNotFound {
				continue
			}
			args = sql[loc[7] : end-1]
			callEnd = end
		}
		original := sql[loc[0]:callEnd]

		replacement, handled := rewriteOracleCall(pkg, member, args, original, dialectT, res)
		if !handled {
			continue
		}
		b.WriteString(sql[pos:loc[0]])
		b.WriteString(replacement)
		pos = callEnd
	}
	b.WriteString(sql[pos:])
	return b.String()
}

func rewriteOracleCall(pkg, member, args, original string, dialectT constant.DialectType, res *ConversionResult) (string, bool) {
	if reason, ok := noEquivalentPackages[pkg]; ok {
		return replaceWithPlaceholder(pkg, member, original, reason, dialectT, res)
	}

	qualified := stringutil.StringBuilder(pkg, ".", member)
	argv := stringutil.SplitArguments(args)

	switch qualified {
	case "DBMS_OUTPUT.PUT_LINE":
		res.AppendRule("DBMS_OUTPUT.PUT_LINE rewritten as a diagnostic statement")
		if dialectT == constant.DialectTypePostgresql {
			return fmt.Sprintf("RAISE NOTICE '%%', %s", args), true
		}
		res.AppendWarning(mapping.NewWarning(constant.WarningKindBestEffortEmulation,
			"DBMS_OUTPUT.PUT_LINE became a bare SELECT, mysql has no session message buffer", ""))
		return fmt.Sprintf("SELECT %s", args), true

	case "DBMS_RANDOM.VALUE":
		res.AppendRule("DBMS_RANDOM.VALUE rewritten as a native random expression")
		native := "RAND()"
		if dialectT == constant.DialectTypePostgresql {
			native = "random()"
		}
		if len(argv) == 2 {
			return fmt.Sprintf("(%s * (%s - %s) + %s)", native, argv[1], argv[0], argv[0]), true
		}
		return native, true

	case "DBMS_LOCK.SLEEP":
		res.AppendRule("DBMS_LOCK.SLEEP rewritten as a native sleep call")
		if dialectT == constant.DialectTypePostgresql {
			return fmt.Sprintf("pg_sleep(%s)", args), true
		}
		return fmt.Sprintf("SLEEP(%s)", args), true

	case "DBMS_LOB.GETLENGTH":
		res.AppendRule("DBMS_LOB.GETLENGTH rewritten as LENGTH")
		return fmt.Sprintf("LENGTH(%s)", args), true

	case "DBMS_LOB.SUBSTR":
		// oracle order is (lob, amount, offset), the targets take
		// (str, offset, amount)
		res.AppendRule("DBMS_LOB.SUBSTR rewritten as SUBSTRING")
		if len(argv) == 3 {
			return fmt.Sprintf("SUBSTRING(%s, %s, %s)", argv[0], argv[2], argv[1]), true
		}
		return fmt.Sprintf("SUBSTRING(%s)", args), true

	case "DBMS_LOB.INSTR":
		res.AppendRule("DBMS_LOB.INSTR rewritten as a native position function")
		if dialectT == constant.DialectTypePostgresql {
			if len(argv) >= 2 {
				return fmt.Sprintf("STRPOS(%s, %s)", argv[0], argv[1]), true
			}
			return fmt.Sprintf("STRPOS(%s)", args), true
		}
		if len(argv) >= 2 {
			return fmt.Sprintf("LOCATE(%s, %s)", argv[1], argv[0]), true
		}
		return fmt.Sprintf("LOCATE(%s)", args), true

	case "DBMS_LOB.APPEND":
		res.AppendRule("DBMS_LOB.APPEND rewritten as concatenation")
		res.AppendWarning(mapping.NewWarning(constant.WarningKindBestEffortEmulation,
			"DBMS_LOB.APPEND mutates its first argument in place, the CONCAT rewrite needs an enclosing assignment", ""))
		if dialectT == constant.DialectTypePostgresql && len(argv) == 2 {
			return fmt.Sprintf("%s || %s", argv[0], argv[1]), true
		}
		return fmt.Sprintf("CONCAT(%s)", args), true

	case "DBMS_CRYPTO.HASH":
		return rewriteCryptoHash(argv, args, original, dialectT, res)

	case "DBMS_UTILITY.FORMAT_ERROR_BACKTRACE":
		return replaceWithPlaceholder(pkg, member, original, "error backtrace introspection", dialectT, res)
	}

	// unrecognized member of a known package family
	res.AppendWarning(mapping.NewWarning(constant.WarningKindUnsupportedFeature,
		fmt.Sprintf("oracle builtin call %s.%s has no automatic conversion, review manually", pkg, member), ""))
	return "", false
}

func rewriteCryptoHash(argv []string, args, original string, dialectT constant.DialectType, res *ConversionResult) (string, bool) {
	if len(argv) < 2 {
		return replaceWithPlaceholder("DBMS_CRYPTO", "HASH", original, "hash algorithm argument missing", dialectT, res)
	}
	src := argv[0]
	algo := stringutil.StringUpper(strings.TrimSpace(argv[1]))

	res.AppendRule("DBMS_CRYPTO.HASH rewritten as a native digest function")
	if dialectT == constant.DialectTypePostgresql {
		switch {
		case strings.Contains(algo, "MD5") || algo == "2":
			return fmt.Sprintf("MD5(%s)", src), true
		case strings.Contains(algo, "SH512"), strings.Contains(algo, "SHA512"):
			res.AppendWarning(pgcryptoDigestWarning())
			return fmt.Sprintf("digest(%s, 'sha512')", src), true
		default:
			res.AppendWarning(pgcryptoDigestWarning())
			return fmt.Sprintf("digest(%s, 'sha256')", src), true
		}
	}
	switch {
	case strings.Contains(algo, "MD5") || algo == "2":
		return fmt.Sprintf("MD5(%s)", src), true
	case strings.Contains(algo, "SH512"), strings.Contains(algo, "SHA512"):
		return fmt.Sprintf("SHA2(%s, 512)", src), true
	default:
		return fmt.Sprintf("SHA2(%s, 256)", src), true
	}
}

func pgcryptoDigestWarning() *mapping.ConversionWarning {
	return mapping.NewWarning(constant.WarningKindExtensionRequired,
		"digest() needs the pgcrypto extension", "CREATE EXTENSION IF NOT EXISTS pgcrypto")
}

func replaceWithPlaceholder(pkg, member, original, reason string, dialectT constant.DialectType, res *ConversionResult) (string, bool) {
	qualified := stringutil.StringBuilder(pkg, ".", member)
	res.AppendWarning(mapping.NewErrorWarning(constant.WarningKindNoEquivalent,
		fmt.Sprintf("%s call removed, %s has no %s equivalent (%s), manual intervention required", qualified, pkg, dialectT, reason), ""))
	if !res.Options().ReplaceUnsupportedFunctions {
		return "", false
	}
	res.AppendRule(fmt.Sprintf("%s replaced with a NULL placeholder", qualified))
	return fmt.Sprintf("NULL /* %s removed, no %s equivalent */", strings.TrimSpace(original), dialectT), true
}

var raiseAppErrorRe = regexp.MustCompile(`(?i)\bRAISE_APPLICATION_ERROR\s*\(`)

// rewriteRaiseApplicationError converts RAISE_APPLICATION_ERROR(code, msg)
// into the target's error-signaling statement.
func rewriteRaiseApplicationError(sql string, dialectT constant.DialectType, res *ConversionResult) string {
	masked := MaskStringLiterals(sql)
	locs := raiseAppErrorRe.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	pos := 0
	for _, loc := range locs {
		if loc[0] < pos {
			continue
		}
		end := stringutil.FindMatchingBracket(sql, loc[1])
		if end == stringutil.BracketNotFound {
			continue
		}
		argv := stringutil.SplitArguments(sql[loc[1] : end-1])
		msg := ""
		if len(argv) >= 2 {
			msg = argv[1]
		} else if len(argv) == 1 {
			msg = argv[0]
		}

		b.WriteString(sql[pos:loc[0]])
		if dialectT == constant.DialectTypePostgresql {
			b.WriteString(fmt.Sprintf("RAISE EXCEPTION %s USING ERRCODE = 'P0001'", msg))
		} else {
			b.WriteString(fmt.Sprintf("SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = %s", msg))
		}
		pos = end
		res.AppendRule("RAISE_APPLICATION_ERROR rewritten as a native error signal")
	}
	b.WriteString(sql[pos:])
	return b.String()
}
