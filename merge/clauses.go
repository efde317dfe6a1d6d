package merge

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/thoas/go-funk"
)

// MatchCondition joins one target/source equality per key column with AND,
// preserving input order:
//
//	MatchCondition([]string{"BELNR", "GJAHR"})
//	// target.BELNR = source.BELNR AND target.GJAHR = source.GJAHR
//
// An empty input yields an empty string; callers must guard.
func MatchCondition(keyColumns []string) string {
	parts := funk.Map(keyColumns, func(column string) string {
		return fmt.Sprintf("%s.%s = %s.%s", targetAlias, column, sourceAlias, column)
	}).([]string)
	return strings.Join(parts, " AND ")
}

// PartitionCondition pairs partition columns with their pre-formatted value
// lists positionally and joins one IN predicate per pair with AND:
//
//	PartitionCondition([]string{"RBUKRS", "GJAHR"}, []string{"'S030'", "'2025', '2024'"})
//	// target.RBUKRS IN ('S030') AND target.GJAHR IN ('2025', '2024')
//
// Value lists are inserted verbatim; quoting is the caller's business.
// Lists of different lengths return ErrLengthMismatch.
func PartitionCondition(partitionColumns, partitionValues []string) (string, error) {
	if len(partitionColumns) != len(partitionValues) {
		return "", fmt.Errorf("%w: %d columns, %d value lists",
			ErrLengthMismatch, len(partitionColumns), len(partitionValues))
	}

	parts := make([]string, 0, len(partitionColumns))
	for i, column := range partitionColumns {
		parts = append(parts, fmt.Sprintf("%s.%s IN (%s)", targetAlias, column, partitionValues[i]))
	}
	return strings.Join(parts, " AND "), nil
}

// Condition builds the full join condition for a merge: the key-column
// match condition, narrowed by the partition condition when both partition
// lists are non-empty.
func Condition(keyColumns, partitionColumns, partitionValues []string) (string, error) {
	matchCondition := MatchCondition(keyColumns)

	if len(partitionColumns) > 0 && len(partitionValues) > 0 {
		partitionCondition, err := PartitionCondition(partitionColumns, partitionValues)
		if err != nil {
			return "", err
		}
		return matchCondition + " AND " + partitionCondition, nil
	}

	return matchCondition, nil
}

// SetClause joins one "col = source.col" assignment per column with ", ",
// skipping the exclude columns and preserving the order of the rest:
//
//	SetClause([]string{"BELNR", "GJAHR", "__created_timestamp"}, "__created_timestamp")
//	// BELNR = source.BELNR, GJAHR = source.GJAHR
func SetClause(columns []string, excludeColumns ...string) string {
	exclude := hashset.New()
	for _, column := range excludeColumns {
		exclude.Add(column)
	}

	kept := funk.FilterString(columns, func(column string) bool {
		return !exclude.Contains(column)
	})
	parts := funk.Map(kept, func(column string) string {
		return fmt.Sprintf("%s = %s.%s", column, sourceAlias, column)
	}).([]string)
	return strings.Join(parts, ", ")
}

// ValuesClause builds the "(cols...) VALUES (source.cols...)" insert list,
// preserving input order:
//
//	ValuesClause([]string{"BELNR", "GJAHR"})
//	// (BELNR, GJAHR) VALUES (source.BELNR, source.GJAHR)
func ValuesClause(columns []string) string {
	sourced := funk.Map(columns, func(column string) string {
		return sourceAlias + "." + column
	}).([]string)
	return fmt.Sprintf("(%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(sourced, ", "))
}
