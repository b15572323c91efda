package fact

import (
	"testing"

	"github.com/shopspring/decimal"

	"salesdw/internal/schema"
)

func TestCanonPayment(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"visa", "Visa"},
		{"VISA", "Visa"},
		{" Visa ", "Visa"},
		{"american express", "Amex"},
		{"AmericanExpress", "Amex"},
		{"amex", "Amex"},
		{"MasterCard", "Mastercard"},
		{"apple pay", "ApplePay"},
		{"google pay", "GooglePay"},
		{"discover", "Discover"},
		{"CASH", "Cash"},
		{"", "UNKNOWN"},
		{"   ", "UNKNOWN"},
		{nil, "UNKNOWN"},
		{"Crypto", "Crypto"},
	}
	for _, c := range cases {
		if got := CanonPayment(c.in); got != c.want {
			t.Fatalf("CanonPayment(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

// salesRow builds an input row in schema.SalesCols order.
func salesRow(id, date, cust, prod, store, camp, method, qty, amount any) []any {
	return []any{id, date, cust, prod, store, camp, method, qty, amount}
}

func salesInput(rows ...[]any) *schema.Table {
	t := schema.NewTable(schema.TableSales, schema.SalesCols)
	t.Rows = append(t.Rows, rows...)
	return t
}

func TestBuild(t *testing.T) {
	in := salesInput(
		salesRow("T1", "2024-03-09", "C1", "P1", nil, "nan", "VISA", "2", "19.999"),
		salesRow("T2", "not-a-date", "C1", "P1", "S1", "CAMP1", "cash", "1", "5.00"),
		salesRow("T3", "2024-03-10", "C2", "P2", "S1", "CAMP1", "", "3", "7.50"),
	)

	out, st, err := Build(in, "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if st.In != 3 || st.Out != 2 || st.DroppedDates != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if st.UnknownStores != 1 || st.UnknownMethods != 1 || st.NullCampaigns != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if out.Len() != 2 {
		t.Fatalf("rows = %d, want 2", out.Len())
	}

	r := out.Rows[0]
	date := out.Col("date")
	store := out.Col("store_id")
	camp := out.Col("campaign_id")
	method := out.Col("payment_method_id")
	qty := out.Col("quantity")
	amount := out.Col("sales_amount")

	if r[date] != "2024-03-09" {
		t.Fatalf("date = %#v", r[date])
	}
	if r[store] != schema.UnknownStore {
		t.Fatalf("store = %#v, want sentinel", r[store])
	}
	if r[camp] != nil {
		t.Fatalf("campaign nan = %#v, want nil", r[camp])
	}
	if r[method] != "Visa" {
		t.Fatalf("method = %#v, want Visa", r[method])
	}
	if r[qty] != int64(2) {
		t.Fatalf("quantity = %#v, want int64(2)", r[qty])
	}
	if d := r[amount].(decimal.Decimal); !d.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("amount = %s, want 20", d)
	}

	// The row with the unparseable date never reaches the output.
	if out.Rows[1][out.Col("sale_id")] != "T3" {
		t.Fatalf("surviving rows = %v", out.Rows)
	}
	if out.Rows[1][method] != schema.UnknownPaymentMethod {
		t.Fatalf("empty method = %#v, want sentinel", out.Rows[1][method])
	}
}

func TestBuildAlternativeLayout(t *testing.T) {
	in := salesInput(
		salesRow("T1", "09.03.2024", "C1", "P1", "S1", "CAMP1", "cash", "1", "5.00"),
	)
	out, st, err := Build(in, "02.01.2006")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.DroppedDates != 0 || out.Len() != 1 {
		t.Fatalf("stats = %+v rows = %d", st, out.Len())
	}
	// Stored dates are always ISO regardless of the source layout.
	if out.Rows[0][out.Col("date")] != "2024-03-09" {
		t.Fatalf("date = %#v, want 2024-03-09", out.Rows[0][out.Col("date")])
	}
}

func TestBuildMissingColumn(t *testing.T) {
	in := schema.NewTable(schema.TableSales, []string{"sale_id", "date"})
	if _, _, err := Build(in, ""); err == nil {
		t.Fatalf("missing fact columns did not fail")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	out, st, err := Build(salesInput(), "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out.Len() != 0 || st.In != 0 || st.Out != 0 {
		t.Fatalf("empty input produced %d rows, stats %+v", out.Len(), st)
	}
}
