// Package dimension synthesizes dimension tables the source system has no
// authority for, and patches every dimension into a superset of the fact
// table's foreign-key values.
//
// All functions here are pure table transforms with no persistence
// dependency: facts in, dimension out. Synthesis exists to satisfy
// referential integrity: a fact is never invalidated by a missing dimension
// row, the dimension is enriched instead.
package dimension

import (
	"fmt"
	"time"

	"salesdw/internal/schema"
)

// Calendar derives the dates dimension from the distinct dates present in the
// fact table: one row per date, ascending, with year/quarter/month/day and a
// weekend flag (Saturday or Sunday). Fact dates are already validated ISO
// strings, so a parse failure here is a programming error, not a data defect.
func Calendar(facts *schema.Table) (*schema.Table, error) {
	out := schema.NewTable(schema.TableDates, schema.DatesCols)
	for _, d := range facts.Distinct("date") {
		t, err := time.Parse(schema.DateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("dimension: calendar: fact date %q: %w", d, err)
		}
		weekend := int64(0)
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend = 1
		}
		out.Rows = append(out.Rows, []any{
			d,
			int64(t.Year()),
			int64((int(t.Month())-1)/3 + 1),
			int64(t.Month()),
			int64(t.Day()),
			weekend,
		})
	}
	out.SortByCol("date")
	return out, nil
}
