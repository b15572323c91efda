// Package schema defines the in-memory relational model shared by every
// stage of the warehouse loader, plus the fixed star schema the loader
// produces.
//
// A Table is an ordered-column relation: a header plus rows of []any aligned
// to that header, the same positional shape the storage backends consume.
// Cell values are restricted to a small vocabulary:
//
//   - string           text and ISO dates ("2006-01-02")
//   - int64            integer measures and 0/1 flags
//   - decimal.Decimal  money
//   - nil              SQL NULL
//
// Tables are plain values with no behavior beyond column lookup and a few
// set-style helpers; all domain logic lives in the normalize, fact, and
// dimension packages.
package schema

import (
	"fmt"
	"sort"
)

// Table is an ordered-column in-memory relation. Rows are positional: every
// row has exactly len(Cols) cells, aligned to Cols.
type Table struct {
	Name string
	Cols []string
	Rows [][]any
}

// NewTable returns an empty table with the given name and column order.
func NewTable(name string, cols []string) *Table {
	return &Table{Name: name, Cols: append([]string(nil), cols...)}
}

// Col returns the positional index of the named column, or -1 when absent.
func (t *Table) Col(name string) int {
	for i, c := range t.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Append adds one row. The row width must match the column count.
func (t *Table) Append(row []any) error {
	if len(row) != len(t.Cols) {
		return fmt.Errorf("schema: table %s: row width %d != %d columns", t.Name, len(row), len(t.Cols))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Distinct returns the distinct non-NULL string values of the named column in
// first-seen order. Non-string cells are skipped; callers use this only on
// key columns, which are strings by construction.
func (t *Table) Distinct(col string) []string {
	i := t.Col(col)
	if i < 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(t.Rows))
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		s, ok := row[i].(string)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// KeySet returns the distinct non-NULL string values of the named column as a
// membership set.
func (t *Table) KeySet(col string) map[string]struct{} {
	vals := t.Distinct(col)
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

// SortByCol orders rows ascending by the string value of the named column.
// Used for deterministic output of derived dimensions.
func (t *Table) SortByCol(col string) {
	i := t.Col(col)
	if i < 0 {
		return
	}
	sort.SliceStable(t.Rows, func(a, b int) bool {
		sa, _ := t.Rows[a][i].(string)
		sb, _ := t.Rows[b][i].(string)
		return sa < sb
	})
}
