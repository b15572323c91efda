package schema

// DateLayout is the canonical layout for every date in the warehouse. The
// loader accepts alternative source layouts by configuration, but all stored
// dates are reformatted to this one.
const DateLayout = "2006-01-02"

// Sentinel keys substituted by the fact builder when a source row carries no
// usable value. They are ordinary dimension keys from the closure step's
// point of view.
const (
	UnknownStore         = "UNKNOWN-STORE"
	UnknownPaymentMethod = "UNKNOWN"
)

// Warehouse table names.
const (
	TableDates          = "dates"
	TableCustomers      = "customers"
	TableProducts       = "products"
	TableStores         = "stores"
	TableCampaigns      = "campaigns"
	TablePaymentMethods = "payment_methods"
	TableSales          = "sales"
)

// Canonical column orders. The storage backends build their INSERT lists and
// DDL from these, so order here is load-bearing.
var (
	DatesCols     = []string{"date", "year", "quarter", "month", "day", "is_weekend"}
	CustomersCols = []string{"customer_id", "name", "region", "join_date", "last_purchase_date", "email_opt_in"}
	ProductsCols  = []string{"product_id", "product_name", "category", "unit_price", "stock_level", "discontinued"}
	StoresCols    = []string{"store_id", "store_name", "region"}
	CampaignsCols = []string{"campaign_id", "campaign_name", "start_date", "end_date"}
	PaymentCols   = []string{"payment_method_id", "method_name"}
	SalesCols     = []string{"sale_id", "date", "customer_id", "product_id", "store_id", "campaign_id", "payment_method_id", "quantity", "sales_amount"}
)

// LoadOrder lists the warehouse tables in insert order: dimensions first so
// every fact foreign key has its referent present at insert time.
var LoadOrder = []string{
	TableDates,
	TableCustomers,
	TableProducts,
	TableStores,
	TableCampaigns,
	TablePaymentMethods,
	TableSales,
}

// DeleteOrder lists the warehouse tables in delete order: facts first so
// foreign-key constraints hold while rows are being cleared.
var DeleteOrder = []string{
	TableSales,
	TablePaymentMethods,
	TableCampaigns,
	TableStores,
	TableProducts,
	TableCustomers,
	TableDates,
}

// Columns returns the canonical column order for a warehouse table name.
func Columns(table string) []string {
	switch table {
	case TableDates:
		return DatesCols
	case TableCustomers:
		return CustomersCols
	case TableProducts:
		return ProductsCols
	case TableStores:
		return StoresCols
	case TableCampaigns:
		return CampaignsCols
	case TablePaymentMethods:
		return PaymentCols
	case TableSales:
		return SalesCols
	}
	return nil
}
