// Package merge builds MERGE INTO (upsert) statement text for lakehouse
// SQL engines. A Writer accumulates WHEN branches through short-lived
// branch scopes and renders the statement once all branches are recorded;
// the companion clause generators produce the join condition, SET list and
// VALUES list fragments from column name lists.
//
// The package assembles text only. It does not quote or validate
// identifiers and never talks to an engine.
package merge

import (
	"fmt"
	"strings"
)

const (
	targetAlias = "target"
	sourceAlias = "source"
)

// Writer accumulates the parts of a MERGE INTO statement.
//
// A Writer is a reusable template: SQL clears the recorded branches on
// success but keeps the target table, source relation and join condition,
// so the same instance can render a new statement after recording new
// branches. It is not safe for concurrent mutation.
type Writer struct {
	table     string
	view      string
	condition string

	matchedActions            []string
	notMatchedActions         []string
	notMatchedBySourceActions []string
}

// Into returns a Writer targeting the given table. The table name is not
// validated here; an empty name surfaces as ErrMissingConfiguration when
// SQL is called.
func Into(table string) *Writer {
	return &Writer{table: table}
}

// Using sets the relation supplying source rows, typically a table name or
// a registered view. It overwrites any prior value.
func (w *Writer) Using(view string) *Writer {
	w.view = view
	return w
}

// On sets the join condition between target and source rows. It overwrites
// any prior value.
func (w *Writer) On(condition string) *Writer {
	w.condition = condition
	return w
}

// WhenMatched opens a branch for rows present in both target and source.
// An optional extra predicate narrows the branch:
//
//	w.WhenMatched()              // WHEN MATCHED ...
//	w.WhenMatched("col > 0")     // WHEN MATCHED AND col > 0 ...
func (w *Writer) WhenMatched(condition ...string) Matched {
	return Matched{writer: w, condition: optional(condition)}
}

// WhenNotMatched opens a branch for source rows with no matching target row.
func (w *Writer) WhenNotMatched(condition ...string) NotMatched {
	return NotMatched{writer: w, condition: optional(condition)}
}

// WhenNotMatchedBySource opens a branch for target rows with no matching
// source row.
func (w *Writer) WhenNotMatchedBySource(condition ...string) NotMatchedBySource {
	return NotMatchedBySource{writer: w, condition: optional(condition)}
}

// SQL validates the accumulated state and renders the statement.
//
// The line order is fixed: MERGE INTO, USING, ON, then every matched
// branch, every not-matched branch and every not-matched-by-source branch,
// each category in recording order. On success the recorded branches are
// cleared and the configuration is kept; on failure nothing is touched, so
// the caller can fix the configuration and render again without losing
// recorded branches.
func (w *Writer) SQL() (string, error) {
	if missing := w.missingConfiguration(); len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingConfiguration, strings.Join(missing, ", "))
	}
	if len(w.matchedActions)+len(w.notMatchedActions)+len(w.notMatchedBySourceActions) == 0 {
		return "", ErrNoActions
	}

	lines := make([]string, 0, 3+len(w.matchedActions)+len(w.notMatchedActions)+len(w.notMatchedBySourceActions))
	lines = append(lines,
		fmt.Sprintf("MERGE INTO %s AS %s", w.table, targetAlias),
		fmt.Sprintf("USING %s AS %s", w.view, sourceAlias),
		fmt.Sprintf("ON %s", w.condition),
	)
	lines = append(lines, w.matchedActions...)
	lines = append(lines, w.notMatchedActions...)
	lines = append(lines, w.notMatchedBySourceActions...)

	w.clearActions()
	return strings.Join(lines, "\n"), nil
}

func (w *Writer) missingConfiguration() (missing []string) {
	if w.table == "" {
		missing = append(missing, "target table")
	}
	if w.view == "" {
		missing = append(missing, "source relation")
	}
	if w.condition == "" {
		missing = append(missing, "join condition")
	}
	return
}

func (w *Writer) clearActions() {
	w.matchedActions = nil
	w.notMatchedActions = nil
	w.notMatchedBySourceActions = nil
}

// Matched scopes one WHEN MATCHED branch. It is a transient view over the
// writer: exactly one of its methods appends the finished branch line and
// hands control back to the writer.
type Matched struct {
	writer    *Writer
	condition string
}

// UpdateAll records "... THEN UPDATE SET *".
func (m Matched) UpdateAll() *Writer {
	m.writer.matchedActions = append(m.writer.matchedActions, m.when()+" THEN UPDATE SET *")
	return m.writer
}

// UpdateExpr records an update with an explicit SET list, typically built
// with SetClause.
func (m Matched) UpdateExpr(set string) *Writer {
	m.writer.matchedActions = append(m.writer.matchedActions, m.when()+" THEN UPDATE SET "+set)
	return m.writer
}

// Delete records "... THEN DELETE".
func (m Matched) Delete() *Writer {
	m.writer.matchedActions = append(m.writer.matchedActions, m.when()+" THEN DELETE")
	return m.writer
}

func (m Matched) when() string {
	return when("WHEN MATCHED", m.condition)
}

// NotMatched scopes one WHEN NOT MATCHED branch. Only inserts are legal
// here, so the type carries no delete or update methods.
type NotMatched struct {
	writer    *Writer
	condition string
}

// InsertAll records "... THEN INSERT *".
func (m NotMatched) InsertAll() *Writer {
	m.writer.notMatchedActions = append(m.writer.notMatchedActions, m.when()+" THEN INSERT *")
	return m.writer
}

// InsertExpr records an insert with an explicit column/values list,
// typically built with ValuesClause.
func (m NotMatched) InsertExpr(values string) *Writer {
	m.writer.notMatchedActions = append(m.writer.notMatchedActions, m.when()+" THEN INSERT "+values)
	return m.writer
}

func (m NotMatched) when() string {
	return when("WHEN NOT MATCHED", m.condition)
}

// NotMatchedBySource scopes one WHEN NOT MATCHED BY SOURCE branch.
type NotMatchedBySource struct {
	writer    *Writer
	condition string
}

// UpdateAll records "... THEN UPDATE SET *".
func (m NotMatchedBySource) UpdateAll() *Writer {
	m.writer.notMatchedBySourceActions = append(m.writer.notMatchedBySourceActions, m.when()+" THEN UPDATE SET *")
	return m.writer
}

// UpdateExpr records an update with an explicit SET list.
func (m NotMatchedBySource) UpdateExpr(set string) *Writer {
	m.writer.notMatchedBySourceActions = append(m.writer.notMatchedBySourceActions, m.when()+" THEN UPDATE SET "+set)
	return m.writer
}

// Delete records "... THEN DELETE".
func (m NotMatchedBySource) Delete() *Writer {
	m.writer.notMatchedBySourceActions = append(m.writer.notMatchedBySourceActions, m.when()+" THEN DELETE")
	return m.writer
}

func (m NotMatchedBySource) when() string {
	return when("WHEN NOT MATCHED BY SOURCE", m.condition)
}

func when(prefix, condition string) string {
	if condition != "" {
		return prefix + " AND " + condition
	}
	return prefix
}

func optional(condition []string) string {
	if len(condition) > 0 {
		return condition[0]
	}
	return ""
}
