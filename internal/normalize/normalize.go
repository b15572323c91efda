package normalize

import (
	"fmt"

	"salesdw/internal/schema"
)

// Customers normalizes the cleaned customers extract in place: email_opt_in
// becomes a 0/1 int64, the remaining columns stay as text (dates are already
// ISO strings from upstream cleaning; missing ones stay NULL).
func Customers(t *schema.Table) error {
	opt := t.Col("email_opt_in")
	if opt < 0 {
		return fmt.Errorf("normalize: customers: missing email_opt_in column")
	}
	for _, row := range t.Rows {
		row[opt] = YNToInt(row[opt])
	}
	return nil
}

// Products normalizes the cleaned products extract in place: unit_price to a
// non-negative 2-dp decimal, stock_level to a non-negative int64, and
// discontinued to a 0/1 int64.
func Products(t *schema.Table) error {
	price := t.Col("unit_price")
	stock := t.Col("stock_level")
	disc := t.Col("discontinued")
	if price < 0 || stock < 0 || disc < 0 {
		return fmt.Errorf("normalize: products: missing unit_price, stock_level, or discontinued column")
	}
	for _, row := range t.Rows {
		row[price] = ToDecimal(row[price])
		row[stock] = ToInt64(row[stock])
		row[disc] = YNToInt(row[disc])
	}
	return nil
}
