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

type partitionSpec struct {
	TableName    string
	Kind         string
	Key          string
	Interval     string
	Subpartition string
	Count        int
	Partitions   []partitionDef
	Head         string
}

type partitionDef struct {
	Name     string
	Operator string
	Bounds   string
}

var partitionByRe = regexp.MustCompile(`(?i)\bPARTITION\s+BY\s+(RANGE|LIST|HASH)\s*\(`)

var createTableNameRe = regexp.MustCompile(`(?i)^\s*CREATE\s+(GLOBAL\s+TEMPORARY\s+)?TABLE\s+("?[\w$#]+"?(?:\s*\.\s*"?[\w$#]+"?)?)`)

var intervalClauseRe = regexp.MustCompile(`(?i)\bINTERVAL\s*\(`)

var subpartitionByRe = regexp.MustCompile(`(?i)\bSUBPARTITION\s+BY\s+(RANGE|LIST|HASH)\s*\(`)

var partitionCountRe = regexp.MustCompile(`(?i)\bPARTITIONS\s+(\d+)\b`)

var partitionDefRe = regexp.MustCompile(`(?i)\bPARTITION\s+([\w$#]+)\s+VALUES\s+(LESS\s+THAN|IN)\s*\(`)

// ConvertPartition rewrites oracle partitioned-table DDL into the target's
// partition syntax. Unpartitioned statements pass through unchanged.
func ConvertPartition(sql string, dialectS, dialectT constant.DialectType, res *ConversionResult) string {
	if !dialectS.IsOracleCompatible() || dialectT.IsOracleCompatible() {
		return sql
	}
	spec, ok := parsePartitionClause(sql, res)
	if !ok {
		return sql
	}

	switch dialectT {
	case constant.DialectTypeMySQL:
		return convertPartitionForMySQL(sql, spec, res)
	case constant.DialectTypePostgresql:
		return convertPartitionForPostgres(spec, res)
	default:
		return sql
	}
}

func parsePartitionClause(sql string, res *ConversionResult) (*partitionSpec, bool) {
	masked := MaskStringLiterals(sql)
	byLoc := partitionByRe.FindStringSubmatchIndex(masked)
	if byLoc == nil {
		return nil, false
	}
	nameLoc := createTableNameRe.FindStringSubmatchIndex(masked)
	if nameLoc == nil {
		return nil, false
	}

	keyEnd := stringutil.FindMatchingBracket(sql, byLoc[1])
	if keyEnd == stringutil.BracketNotFound {
		return nil, false
	}

	spec := &partitionSpec{
		TableName: strings.TrimSpace(sql[nameLoc[4]:nameLoc[5]]),
		Kind:      stringutil.StringUpper(sql[byLoc[2]:byLoc[3]]),
		Key:       strings.TrimSpace(sql[byLoc[1] : keyEnd-1]),
		Head:      strings.TrimRight(sql[:byLoc[0]], " \t\r\n"),
	}

	if loc := intervalClauseRe.FindStringIndex(masked[keyEnd:]); loc != nil {
		if end := stringutil.FindMatchingBracket(sql, keyEnd+loc[1]); end != stringutil.BracketNotFound {
			spec.Interval = strings.TrimSpace(sql[keyEnd+loc[1] : end-1])
		}
	}
	if loc := subpartitionByRe.FindStringSubmatchIndex(masked); loc != nil {
		spec.Subpartition = stringutil.StringUpper(masked[loc[2]:loc[3]])
	}
	if m := partitionCountRe.FindStringSubmatch(masked); m != nil {
		fmt.Sscanf(m[1], "%d", &spec.Count)
	}

	for _, loc := range partitionDefRe.FindAllStringSubmatchIndex(masked, -1) {
		end := stringutil.FindMatchingBracket(sql, loc[1])
		if end == stringutil.BracketNotFound {
			continue
		}
		spec.Partitions = append(spec.Partitions, partitionDef{
			Name:     sql[loc[2]:loc[3]],
			Operator: stringutil.StringUpper(multiSpaceRe.ReplaceAllString(sql[loc[4]:loc[5]], " ")),
			Bounds:   strings.TrimSpace(sql[loc[1] : end-1]),
		})
	}
	return spec, true
}

func convertPartitionForMySQL(sql string, spec *partitionSpec, res *ConversionResult) string {
	if spec.Interval != "" {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindNoEquivalent,
			fmt.Sprintf("INTERVAL (%s) automatic partition creation has no mysql equivalent, new partitions must be added by a maintenance job", spec.Interval), ""))
	}
	if spec.Subpartition == "LIST" {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindNoEquivalent,
			"LIST sub-partitioning is not supported by mysql, the sub-partition clause was dropped", ""))
	}
	if spec.Kind == "HASH" && len(spec.Partitions) == 0 {
		var b strings.Builder
		b.WriteString(spec.Head)
		fmt.Fprintf(&b, "\nPARTITION BY HASH (%s)", spec.Key)
		if spec.Count > 0 {
			fmt.Fprintf(&b, "\nPARTITIONS %d", spec.Count)
		}
		res.AppendRule(fmt.Sprintf("hash partitioning on [%s] rewritten for mysql", spec.TableName))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(spec.Head)
	fmt.Fprintf(&b, "\nPARTITION BY %s (%s)", spec.Kind, spec.Key)
	if len(spec.Partitions) > 0 {
		b.WriteString("\n(\n")
		var defs []string
		for _, p := range spec.Partitions {
			defs = append(defs, fmt.Sprintf("  PARTITION %s VALUES %s (%s)", p.Name, p.Operator, p.Bounds))
		}
		b.WriteString(stringutil.StringJoin(defs, ",\n"))
		b.WriteString("\n)")
	}
	res.AppendRule(fmt.Sprintf("%s partitioning on [%s] rewritten for mysql", stringutil.StringLower(spec.Kind), spec.TableName))
	return b.String()
}

func convertPartitionForPostgres(spec *partitionSpec, res *ConversionResult) string {
	if spec.Interval != "" {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindExtensionRequired,
			fmt.Sprintf("INTERVAL (%s) automatic partition creation is not native to postgres, the pg_partman extension automates it", spec.Interval),
			"CREATE EXTENSION pg_partman"))
	}
	if spec.Subpartition != "" {
		res.AppendWarning(mapping.NewWarning(constant.WarningKindManualReview,
			"sub-partitioning carries over by declaring each child table PARTITION BY in turn, declare the second level manually", ""))
	}

	parent := stringutil.StringBuilder(spec.Head, "\nPARTITION BY ", spec.Kind, " (", spec.Key, ")")
	statements := []string{parent}
	table := bareObjectName(spec.TableName)

	switch spec.Kind {
	case "RANGE":
		prev := "MINVALUE"
		for _, p := range spec.Partitions {
			upper := p.Bounds
			statements = append(statements, fmt.Sprintf(
				"CREATE TABLE %s_%s PARTITION OF %s FOR VALUES FROM (%s) TO (%s)",
				table, p.Name, spec.TableName, prev, upper))
			prev = upper
		}
	case "LIST":
		for _, p := range spec.Partitions {
			statements = append(statements, fmt.Sprintf(
				"CREATE TABLE %s_%s PARTITION OF %s FOR VALUES IN (%s)",
				table, p.Name, spec.TableName, p.Bounds))
		}
	case "HASH":
		count := spec.Count
		if count == 0 {
			count = len(spec.Partitions)
		}
		for i := 0; i < count; i++ {
			statements = append(statements, fmt.Sprintf(
				"CREATE TABLE %s_p%d PARTITION OF %s FOR VALUES WITH (MODULUS %d, REMAINDER %d)",
				table, i, spec.TableName, count, i))
		}
	}

	res.AppendRule(fmt.Sprintf("%s partitioning on [%s] rewritten as postgres declarative partitions", stringutil.StringLower(spec.Kind), spec.TableName))
	return stringutil.StringJoin(statements, ";\n\n")
}
