package schema

import (
	"testing"

	"github.com/shopspring/decimal"
)

func fpTable(rows ...[]any) *Table {
	t := NewTable("payment_methods", PaymentCols)
	t.Rows = append(t.Rows, rows...)
	return t
}

func TestFingerprintDeterministic(t *testing.T) {
	a := fpTable([]any{"Visa", "Visa"}, []any{"Cash", "Cash"})
	b := fpTable([]any{"Visa", "Visa"}, []any{"Cash", "Cash"})
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("identical tables hash differently")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := fpTable([]any{"Visa", "Visa"})

	reordered := fpTable([]any{"Visa", "Visa"}, []any{"Cash", "Cash"})
	if base.Fingerprint() == reordered.Fingerprint() {
		t.Fatalf("added row did not change fingerprint")
	}

	// NULL and "" must not collide.
	withNull := fpTable([]any{"Visa", nil})
	withEmpty := fpTable([]any{"Visa", ""})
	if withNull.Fingerprint() == withEmpty.Fingerprint() {
		t.Fatalf("NULL and empty string collide")
	}
}

func TestFingerprintCellTypes(t *testing.T) {
	a := NewTable("sales", []string{"quantity", "sales_amount"})
	a.Rows = append(a.Rows, []any{int64(2), decimal.RequireFromString("19.99")})

	b := NewTable("sales", []string{"quantity", "sales_amount"})
	b.Rows = append(b.Rows, []any{int64(2), decimal.RequireFromString("19.99")})

	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("typed cells hash differently across identical tables")
	}
}
