package normalize

import (
	"testing"

	"github.com/shopspring/decimal"

	"salesdw/internal/schema"
)

func TestCustomers(t *testing.T) {
	tab := schema.NewTable(schema.TableCustomers, schema.CustomersCols)
	tab.Rows = append(tab.Rows,
		[]any{"C1", "Alice", "North", "2023-01-01", "2024-02-02", "Yes"},
		[]any{"C2", "Bob", "South", "2023-06-15", nil, nil},
	)
	if err := Customers(tab); err != nil {
		t.Fatalf("Customers: %v", err)
	}
	if tab.Rows[0][5] != int64(1) {
		t.Fatalf("opt-in Yes = %#v, want int64(1)", tab.Rows[0][5])
	}
	if tab.Rows[1][5] != int64(0) {
		t.Fatalf("opt-in NULL = %#v, want int64(0)", tab.Rows[1][5])
	}
	// Dates pass through untouched.
	if tab.Rows[1][4] != nil {
		t.Fatalf("NULL last_purchase_date changed: %#v", tab.Rows[1][4])
	}
}

func TestCustomersMissingColumn(t *testing.T) {
	tab := schema.NewTable(schema.TableCustomers, []string{"customer_id", "name"})
	if err := Customers(tab); err == nil {
		t.Fatalf("missing email_opt_in did not fail")
	}
}

func TestProducts(t *testing.T) {
	tab := schema.NewTable(schema.TableProducts, schema.ProductsCols)
	tab.Rows = append(tab.Rows,
		[]any{"P1", "Widget", "Tools", "19.999", "12.0", "no"},
		[]any{"P2", "Gadget", "Toys", "-4", "oops", "true"},
	)
	if err := Products(tab); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if d := tab.Rows[0][3].(decimal.Decimal); !d.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("unit_price = %s, want 20", d)
	}
	if tab.Rows[0][4] != int64(12) {
		t.Fatalf("stock_level = %#v, want int64(12)", tab.Rows[0][4])
	}
	if tab.Rows[0][5] != int64(0) || tab.Rows[1][5] != int64(1) {
		t.Fatalf("discontinued = %#v / %#v", tab.Rows[0][5], tab.Rows[1][5])
	}
	// Negative price and unparseable stock clamp to zero.
	if d := tab.Rows[1][3].(decimal.Decimal); !d.IsZero() {
		t.Fatalf("negative unit_price = %s, want 0", d)
	}
	if tab.Rows[1][4] != int64(0) {
		t.Fatalf("bad stock_level = %#v, want int64(0)", tab.Rows[1][4])
	}
}

func TestProductsMissingColumn(t *testing.T) {
	tab := schema.NewTable(schema.TableProducts, []string{"product_id", "unit_price"})
	if err := Products(tab); err == nil {
		t.Fatalf("missing stock_level/discontinued did not fail")
	}
}
