// Command dwprobe inspects a cleaned extract before a warehouse run: it
// reads the file (or URL), folds the headers the way the loader will, and
// reports which canonical columns resolve, which are missing, and how many
// body rows parse. Useful when an upstream export changes shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"salesdw/internal/datasource"
	"salesdw/internal/parser/csv"
	"salesdw/internal/schema"
	"salesdw/internal/warehouse"
)

var (
	flagInput     = flag.String("input", "", "extract path or URL to inspect")
	flagTable     = flag.String("table", "sales", "extract kind: customers, products, or sales")
	flagDelimiter = flag.String("delimiter", ",", "CSV field delimiter (single character)")
)

// wantColumns returns the column list the loader would request for an
// extract kind, including the sales header aliases.
func wantColumns(table string) ([]csv.Column, error) {
	switch table {
	case schema.TableCustomers:
		return csv.Cols(schema.CustomersCols...), nil
	case schema.TableProducts:
		return csv.Cols(schema.ProductsCols...), nil
	case schema.TableSales:
		return warehouse.SalesSource, nil
	}
	return nil, fmt.Errorf("unknown extract kind %q (want customers, products, or sales)", table)
}

func main() {
	flag.Parse()

	if *flagInput == "" {
		fatalf("-input is required")
	}
	want, err := wantColumns(*flagTable)
	if err != nil {
		fatalf("%v", err)
	}

	delim := ','
	if *flagDelimiter != "" {
		if r, _ := utf8.DecodeRuneInString(*flagDelimiter); r != utf8.RuneError {
			delim = r
		}
	}

	ctx := context.Background()
	rc, err := datasource.ForPath(*flagInput).Open(ctx)
	if err != nil {
		fatalf("open input: %v", err)
	}
	defer rc.Close()

	p := csv.NewParser(csv.Options{Comma: delim, TrimSpace: true, MaxSkipLogs: 10})
	t, skipped, err := p.ReadTable(rc, *flagTable, want)
	if err != nil {
		// The parse error already names the missing columns.
		fatalf("%v", err)
	}

	fmt.Printf("extract: %s\n", *flagInput)
	fmt.Printf("kind:    %s\n", *flagTable)
	fmt.Printf("rows:    %d parsed, %d skipped\n", t.Len(), skipped)
	fmt.Println("columns:")
	for _, c := range want {
		src := c.Source
		if src == "" {
			src = c.Name
		}
		fmt.Printf("  %-20s <- %s\n", c.Name, src)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
