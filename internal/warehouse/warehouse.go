// Package warehouse orchestrates one full-refresh run: it reads the three
// cleaned extracts, builds the fact table and the six dimensions, closes the
// dimensions over the fact foreign keys, and hands the finished star schema
// to a storage backend for the atomic delete-and-reload.
package warehouse

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"salesdw/internal/config"
	"salesdw/internal/datasource"
	"salesdw/internal/dimension"
	"salesdw/internal/fact"
	"salesdw/internal/metrics"
	"salesdw/internal/normalize"
	"salesdw/internal/parser/csv"
	"salesdw/internal/schema"
	"salesdw/internal/storage"
)

// SalesSource binds the raw sales extract headers to the canonical fact
// columns. Most headers differ only in case, which folding absorbs; these
// four differ in wording and need an explicit alias.
var SalesSource = []csv.Column{
	{Name: "sale_id", Source: "TransactionID"},
	{Name: "date", Source: "SaleDate"},
	{Name: "customer_id"},
	{Name: "product_id"},
	{Name: "store_id"},
	{Name: "campaign_id"},
	{Name: "payment_method_id", Source: "PaymentMethod"},
	{Name: "quantity"},
	{Name: "sales_amount", Source: "SaleAmount"},
}

// Result summarizes one run for logging, metrics, and tests.
type Result struct {
	// Read counts rows read per input file (after header).
	Read map[string]int
	// Skipped counts malformed rows dropped per input file.
	Skipped map[string]int
	// Facts reports the fact builder's corrections.
	Facts fact.Stats
	// Synthesized is the total number of dimension rows invented by the
	// referential closure step, across all five key dimensions.
	Synthesized int
	// Counts holds rows committed per warehouse table.
	Counts storage.Counts
	// Fingerprints holds a content hash per staged table, taken before the
	// write. Two runs over identical inputs produce identical fingerprints.
	Fingerprints map[string]uint64
}

// Run executes one warehouse load under cfg. The staged tables are built
// entirely in memory and written in a single transaction; on error the
// destination keeps its prior committed contents.
func Run(ctx context.Context, cfg config.Load) (*Result, error) {
	res := &Result{
		Read:         map[string]int{},
		Skipped:      map[string]int{},
		Fingerprints: map[string]uint64{},
	}

	start := time.Now()
	customers, products, sales, err := readInputs(ctx, cfg, res)
	metrics.RecordStep(cfg.Job, "read", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	start = time.Now()
	facts, stats, err := fact.Build(sales, cfg.Dates.Layout)
	metrics.RecordStep(cfg.Job, "fact_build", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	res.Facts = stats
	if stats.DroppedDates > 0 {
		log.Printf("loader: dropped %d sales rows with unparseable dates", stats.DroppedDates)
	}

	start = time.Now()
	tables, synthesized, err := buildDimensions(facts, customers, products)
	metrics.RecordStep(cfg.Job, "dimensions", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	res.Synthesized = synthesized

	for name, t := range tables {
		res.Fingerprints[name] = t.Fingerprint()
	}

	start = time.Now()
	counts, err := write(ctx, cfg, tables)
	metrics.RecordStep(cfg.Job, "write", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	res.Counts = counts

	recordRows(cfg.Job, res)
	report(res)
	return res, nil
}

// readInputs parses the three extracts concurrently. Customers and products
// are coerced in place after parsing; sales stays raw for the fact builder.
// Each goroutine writes only its own locals; the shared Result maps are
// populated after the group has finished.
func readInputs(ctx context.Context, cfg config.Load, res *Result) (customers, products, sales *schema.Table, err error) {
	g, ctx := errgroup.WithContext(ctx)

	var customersSkipped, productsSkipped, salesSkipped int
	g.Go(func() error {
		t, skipped, err := readCSV(ctx, cfg.Inputs.Customers, schema.TableCustomers, csv.Cols(schema.CustomersCols...))
		if err != nil {
			return err
		}
		if err := normalize.Customers(t); err != nil {
			return err
		}
		customers, customersSkipped = t, skipped
		return nil
	})
	g.Go(func() error {
		t, skipped, err := readCSV(ctx, cfg.Inputs.Products, schema.TableProducts, csv.Cols(schema.ProductsCols...))
		if err != nil {
			return err
		}
		if err := normalize.Products(t); err != nil {
			return err
		}
		products, productsSkipped = t, skipped
		return nil
	})
	g.Go(func() error {
		t, skipped, err := readCSV(ctx, cfg.Inputs.Sales, schema.TableSales, SalesSource)
		if err != nil {
			return err
		}
		sales, salesSkipped = t, skipped
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	res.Read[schema.TableCustomers] = customers.Len()
	res.Skipped[schema.TableCustomers] = customersSkipped
	res.Read[schema.TableProducts] = products.Len()
	res.Skipped[schema.TableProducts] = productsSkipped
	res.Read[schema.TableSales] = sales.Len()
	res.Skipped[schema.TableSales] = salesSkipped
	return customers, products, sales, nil
}

// readCSV opens one input (local path or URL) and parses it into a table.
func readCSV(ctx context.Context, path, name string, want []csv.Column) (*schema.Table, int, error) {
	rc, err := datasource.ForPath(path).Open(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", name, err)
	}
	defer rc.Close()

	p := csv.NewParser(csv.Options{TrimSpace: true})
	t, skipped, err := p.ReadTable(rc, name, want)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", name, err)
	}
	if skipped > 0 {
		log.Printf("loader: %s: skipped %d malformed rows", name, skipped)
	}
	return t, skipped, nil
}

// buildDimensions derives the calendar, synthesizes the three dimensions that
// have no source extract, and closes every key dimension over the fact keys.
// The returned map holds all seven staged tables.
func buildDimensions(facts, customers, products *schema.Table) (map[string]*schema.Table, int, error) {
	dates, err := dimension.Calendar(facts)
	if err != nil {
		return nil, 0, err
	}

	stores := dimension.Skeleton(facts, "store_id", schema.TableStores, schema.StoresCols, dimension.StoreDefaults)
	campaigns := dimension.Skeleton(facts, "campaign_id", schema.TableCampaigns, schema.CampaignsCols, dimension.CampaignDefaults)
	payments := dimension.Skeleton(facts, "payment_method_id", schema.TablePaymentMethods, schema.PaymentCols, dimension.PaymentDefaults)

	var synthesized int
	add := func(t *schema.Table, n int) *schema.Table {
		synthesized += n
		if n > 0 {
			log.Printf("loader: %s: synthesized %d rows for unreferenced keys", t.Name, n)
		}
		return t
	}

	customers = add(dimension.Enforce(facts, customers, "customer_id", dimension.CustomerDefaults))
	products = add(dimension.Enforce(facts, products, "product_id", dimension.ProductDefaults))
	stores = add(dimension.Enforce(facts, stores, "store_id", dimension.StoreDefaults))
	campaigns = add(dimension.Enforce(facts, campaigns, "campaign_id", dimension.CampaignDefaults))
	payments = add(dimension.Enforce(facts, payments, "payment_method_id", dimension.PaymentDefaults))

	return map[string]*schema.Table{
		schema.TableDates:          dates,
		schema.TableCustomers:      customers,
		schema.TableProducts:       products,
		schema.TableStores:         stores,
		schema.TableCampaigns:      campaigns,
		schema.TablePaymentMethods: payments,
		schema.TableSales:          facts,
	}, synthesized, nil
}

// write opens the configured backend, applies the DDL, and runs the atomic
// delete-and-reload.
func write(ctx context.Context, cfg config.Load, tables map[string]*schema.Table) (storage.Counts, error) {
	repo, err := storage.New(ctx, storage.Config{
		Kind:      cfg.Storage.Kind,
		DSN:       cfg.Storage.DSN,
		BatchSize: cfg.Runtime.BatchSize,
	})
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo.Refresh(ctx, tables)
}

func recordRows(job string, res *Result) {
	var read, skipped int64
	for _, n := range res.Read {
		read += int64(n)
	}
	for _, n := range res.Skipped {
		skipped += int64(n)
	}
	metrics.RecordRows(job, "read", read)
	metrics.RecordRows(job, "skipped", skipped)
	metrics.RecordRows(job, "facts", int64(res.Facts.Out))
	metrics.RecordRows(job, "dropped_dates", int64(res.Facts.DroppedDates))
	metrics.RecordRows(job, "synthesized", int64(res.Synthesized))

	var inserted int64
	for table, n := range res.Counts {
		inserted += n
		metrics.RecordTableLoad(job, table, n)
	}
	metrics.RecordRows(job, "inserted", inserted)
}

// report prints the per-table row counts in load order, then the totals line.
func report(res *Result) {
	for _, table := range schema.LoadOrder {
		log.Printf("loader: %-15s %6d rows", table, res.Counts[table])
	}
	log.Printf("loader: facts in=%d out=%d dropped_dates=%d unknown_stores=%d unknown_methods=%d null_campaigns=%d synthesized=%d",
		res.Facts.In, res.Facts.Out, res.Facts.DroppedDates,
		res.Facts.UnknownStores, res.Facts.UnknownMethods, res.Facts.NullCampaigns,
		res.Synthesized)
}
