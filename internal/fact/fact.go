// Package fact derives the sales fact table from the cleaned sales extract.
//
// This is the only core stage that drops rows: a sale whose date does not
// parse cannot anchor to the calendar dimension, so it is excluded (and
// counted). Every other defect is repaired in place with a lossy default:
// zero measures, sentinel store and payment-method keys, NULL campaign.
package fact

import (
	"fmt"
	"strings"
	"time"

	"salesdw/internal/normalize"
	"salesdw/internal/schema"
)

// Stats reports the row-level corrections applied while building the fact
// table. Diagnostic only; none of these are errors.
type Stats struct {
	In             int // rows entering the builder
	Out            int // fact rows produced
	DroppedDates   int // rows excluded for an unparseable date
	UnknownStores  int // rows given the UNKNOWN-STORE sentinel
	UnknownMethods int // rows given the UNKNOWN payment-method sentinel
	NullCampaigns  int // rows whose campaign was normalized to NULL
}

// paymentCanon maps squashed lowercase payment tokens to their canonical
// dimension keys. Tokens outside the map pass through trimmed; inventing a
// catch-all here would split the UNKNOWN sentinel into two keys.
var paymentCanon = map[string]string{
	"visa":            "Visa",
	"mastercard":      "Mastercard",
	"amex":            "Amex",
	"americanexpress": "Amex",
	"discover":        "Discover",
	"cash":            "Cash",
	"applepay":        "ApplePay",
	"googlepay":       "GooglePay",
}

// CanonPayment resolves a raw payment token to its canonical dimension key.
// NULL or empty input yields the UNKNOWN sentinel.
func CanonPayment(v any) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return schema.UnknownPaymentMethod
	}
	key := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if canon, ok := paymentCanon[key]; ok {
		return canon
	}
	return s
}

// Build produces the sales fact table from the renamed sales extract. layout
// is the expected source date layout (schema.DateLayout unless configured
// otherwise); surviving dates are reformatted to schema.DateLayout regardless
// of the source layout.
//
// The input table must already carry the canonical fact columns
// (schema.SalesCols); Build neither reorders nor renames.
func Build(in *schema.Table, layout string) (*schema.Table, Stats, error) {
	for _, c := range schema.SalesCols {
		if in.Col(c) < 0 {
			return nil, Stats{}, fmt.Errorf("fact: sales input missing column %s", c)
		}
	}
	if layout == "" {
		layout = schema.DateLayout
	}

	var (
		date     = in.Col("date")
		store    = in.Col("store_id")
		campaign = in.Col("campaign_id")
		method   = in.Col("payment_method_id")
		qty      = in.Col("quantity")
		amount   = in.Col("sales_amount")
	)

	out := schema.NewTable(schema.TableSales, in.Cols)
	st := Stats{In: in.Len()}
	for _, row := range in.Rows {
		s, _ := row[date].(string)
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			st.DroppedDates++
			continue
		}

		cells := append([]any(nil), row...)
		cells[date] = t.Format(schema.DateLayout)
		cells[qty] = normalize.ToInt64(row[qty])
		cells[amount] = normalize.ToDecimal(row[amount])

		if v, _ := row[store].(string); strings.TrimSpace(v) == "" {
			cells[store] = schema.UnknownStore
			st.UnknownStores++
		}
		pm := CanonPayment(row[method])
		if pm == schema.UnknownPaymentMethod {
			st.UnknownMethods++
		}
		cells[method] = pm

		if c, _ := row[campaign].(string); row[campaign] == nil || isNullToken(c) {
			cells[campaign] = nil
			st.NullCampaigns++
		}

		out.Rows = append(out.Rows, cells)
	}
	st.Out = out.Len()
	return out, st, nil
}

// isNullToken reports whether a campaign value is one of the textual null
// spellings the upstream cleaners leak through ("", "nan", "NaN").
func isNullToken(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}
