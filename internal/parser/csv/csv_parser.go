// Package csv reads a cleaned CSV extract into an in-memory schema.Table.
//
// The reader is deliberately tolerant of the header, not the shape: source
// headers are matched case-insensitively with spaces, underscores, dashes and
// diacritics folded away ("Customer ID", "customer_id" and "CustomerID" all
// resolve to the same column), while a source file missing a required column
// is a fatal precondition failure. Data rows with the wrong field count are
// skipped softly and counted, never fatal.
//
// Extra source columns (e.g. synthetic columns added by upstream augmenters)
// are ignored; only the requested canonical columns are materialized.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"salesdw/internal/schema"
)

// Options configures the CSV reader. Zero values are sensible defaults.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing ASCII spaces from each field value.
	TrimSpace bool

	// MaxSkipLogs caps per-file "skipping row" log lines. Zero means the
	// default of 400.
	MaxSkipLogs int
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Column binds a canonical output column to the source header it is read
// from. An empty Source means the canonical name itself (most columns only
// differ from their source header in case and separators, which folding
// already absorbs).
type Column struct {
	Name   string
	Source string
}

// Cols builds a Column list for canonical names that match their source
// headers under folding.
func Cols(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n}
	}
	return cols
}

// ReadTable consumes CSV from r and returns a table named name whose columns
// are exactly the canonical names in want, in order. Source headers are
// matched by folding both sides (see FoldHeader). Empty cells become NULL.
// The second return value is the number of body rows skipped for parse errors
// or width mismatches.
//
// A required column absent from the source header is returned as an error and
// no table is produced.
func (p *Parser) ReadTable(r io.Reader, name string, want []Column) (*schema.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("csv: read %s header: %w", name, err)
	}
	header = stripHeaderBOM(append([]string(nil), header...))

	// Resolve each wanted canonical column to a source index.
	byFold := make(map[string]int, len(header))
	for i, h := range header {
		f := FoldHeader(h)
		if _, dup := byFold[f]; !dup {
			byFold[f] = i
		}
	}
	idx := make([]int, len(want))
	var missing []string
	names := make([]string, len(want))
	for i, col := range want {
		names[i] = col.Name
		src := col.Source
		if src == "" {
			src = col.Name
		}
		j, ok := byFold[FoldHeader(src)]
		if !ok {
			missing = append(missing, src)
			continue
		}
		idx[i] = j
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("csv: %s: missing required columns %s", name, strings.Join(missing, ", "))
	}

	limit := p.opt.MaxSkipLogs
	if limit <= 0 {
		limit = 400
	}

	t := schema.NewTable(name, names)
	var skipped int
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < limit {
				log.Printf("csv: %s: skipping row %d: %v", name, line, err)
			}
			skipped++
			continue
		}
		if len(row) != len(header) {
			if skipped < limit {
				log.Printf("csv: %s: skipping row %d: expected %d fields, got %d", name, line, len(header), len(row))
			}
			skipped++
			continue
		}

		cells := make([]any, len(want))
		for i, j := range idx {
			val := row[j]
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			cells[i] = emptyToNil(val)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, skipped, nil
}

// emptyToNil converts an empty string to nil; all other values are returned as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// stripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func stripHeaderBOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	return headers
}
