package dimension

import (
	"sort"

	"github.com/shopspring/decimal"

	"salesdw/internal/schema"
)

// zeroMoney is the synthesized-product price: 0.00.
var zeroMoney = decimal.Zero.Round(2)

// Default supplies the value of one non-key attribute on a synthesized
// dimension row: either a constant or a function of the key.
type Default struct {
	Col     string
	Value   any
	FromKey func(key string) any
}

// Const builds a constant-valued Default.
func Const(col string, v any) Default { return Default{Col: col, Value: v} }

// FromKey builds a key-derived Default.
func FromKey(col string, f func(string) any) Default { return Default{Col: col, FromKey: f} }

// Attribute defaults for every dimension the closure step patches. A
// synthesized payment method names itself; everything else gets empty or zero
// attributes.
var (
	CustomerDefaults = []Default{
		Const("name", ""),
		Const("region", ""),
		Const("join_date", ""),
		Const("last_purchase_date", ""),
		Const("email_opt_in", int64(0)),
	}
	ProductDefaults = []Default{
		Const("product_name", ""),
		Const("category", ""),
		Const("unit_price", zeroMoney),
		Const("stock_level", int64(0)),
		Const("discontinued", int64(0)),
	}
	StoreDefaults = []Default{
		Const("store_name", ""),
		Const("region", ""),
	}
	CampaignDefaults = []Default{
		Const("campaign_name", ""),
		Const("start_date", ""),
		Const("end_date", ""),
	}
	PaymentDefaults = []Default{
		FromKey("method_name", func(key string) any { return key }),
	}
)

// Skeleton builds a minimal dimension from the distinct non-NULL values of a
// fact foreign-key column: one row per value, key first-seen order, remaining
// attributes filled from defaults.
func Skeleton(facts *schema.Table, key, name string, cols []string, defaults []Default) *schema.Table {
	dim := schema.NewTable(name, cols)
	for _, k := range facts.Distinct(key) {
		dim.Rows = append(dim.Rows, synthRow(dim, key, k, defaults))
	}
	return dim
}

// Enforce returns the dimension extended so that its key column covers every
// distinct non-NULL value of the fact table's key column. Keys already
// present are untouched; missing ones are appended in sorted order with
// default attributes. Running Enforce twice adds nothing the second time.
//
// The second return value is the number of rows synthesized.
func Enforce(facts, dim *schema.Table, key string, defaults []Default) (*schema.Table, int) {
	have := dim.KeySet(key)
	var missing []string
	for k := range facts.KeySet(key) {
		if _, ok := have[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return dim, 0
	}
	sort.Strings(missing)

	out := schema.NewTable(dim.Name, dim.Cols)
	out.Rows = append(out.Rows, dim.Rows...)
	for _, k := range missing {
		out.Rows = append(out.Rows, synthRow(out, key, k, defaults))
	}
	return out, len(missing)
}

// synthRow assembles one skeleton row: the key plus default attributes,
// aligned to the dimension's column order. Columns without a default stay
// NULL.
func synthRow(dim *schema.Table, key, k string, defaults []Default) []any {
	row := make([]any, len(dim.Cols))
	row[dim.Col(key)] = k
	for _, d := range defaults {
		i := dim.Col(d.Col)
		if i < 0 {
			continue
		}
		if d.FromKey != nil {
			row[i] = d.FromKey(k)
			continue
		}
		row[i] = d.Value
	}
	return row
}
