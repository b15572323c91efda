// Package config defines the canonical, JSON-serializable configuration model
// for the warehouse loader. It is intentionally small and explicit so a run
// can be described by one file on disk and passed through the program without
// additional glue code.
//
// Example:
//
//	{
//	  "job": "smart_sales_dw",
//	  "inputs": {
//	    "customers": "data/clean/customers_data_clean.csv",
//	    "products":  "data/clean/products_data_clean.csv",
//	    "sales":     "data/clean/sales_data_clean.csv"
//	  },
//	  "dates":   { "layout": "2006-01-02" },
//	  "storage": { "kind": "sqlite", "dsn": "file:data/dw/smart_sales.dw?_fk=1" },
//	  "runtime": { "batch_size": 500 }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"salesdw/internal/schema"
)

// Load describes one full warehouse run: the three cleaned inputs, the date
// layout they use, and the destination store.
type Load struct {
	// Job identifies the run for logging and metrics labeling.
	Job string `json:"job"`

	// Inputs locates the three cleaned CSV extracts.
	Inputs Inputs `json:"inputs"`

	// Dates configures source date parsing.
	Dates Dates `json:"dates"`

	// Storage selects and configures the warehouse backend.
	Storage Storage `json:"storage"`

	// Runtime controls batching during the bulk insert.
	Runtime Runtime `json:"runtime"`
}

// Inputs holds the local filesystem paths of the cleaned extracts. All three
// are required.
type Inputs struct {
	Customers string `json:"customers"`
	Products  string `json:"products"`
	Sales     string `json:"sales"`
}

// Dates configures date handling. Layout is a Go reference layout for the
// SaleDate column; when empty, the canonical ISO layout is used. Stored dates
// are always reformatted to ISO regardless of the source layout.
type Dates struct {
	Layout string `json:"layout"`
}

// Storage selects the warehouse backend.
type Storage struct {
	// Kind selects the backend implementation: "sqlite", "postgres",
	// "mysql", or "mssql". Empty defaults to "sqlite".
	Kind string `json:"kind"`

	// DSN is the backend connection string, passed through verbatim.
	DSN string `json:"dsn"`
}

// Runtime controls insert batching. BatchSize <= 0 selects the default.
type Runtime struct {
	BatchSize int `json:"batch_size"`
}

// DefaultBatchSize is used when runtime.batch_size is unset.
const DefaultBatchSize = 500

// ReadFile decodes a Load from a JSON file and applies defaults.
func ReadFile(path string) (Load, error) {
	f, err := os.Open(path)
	if err != nil {
		return Load{}, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	var l Load
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return Load{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	l.ApplyDefaults()
	return l, nil
}

// ApplyDefaults fills unset fields with their documented defaults.
func (l *Load) ApplyDefaults() {
	if l.Dates.Layout == "" {
		l.Dates.Layout = schema.DateLayout
	}
	if l.Storage.Kind == "" {
		l.Storage.Kind = "sqlite"
	}
	if l.Runtime.BatchSize <= 0 {
		l.Runtime.BatchSize = DefaultBatchSize
	}
}
