// This file adds a lightweight linter/validator for Load values. It performs
// static checks over a decoded Load and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
	"time"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "storage.kind"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownKinds are the storage backends a binary built with storage/all
// supports.
var knownKinds = map[string]struct{}{
	"sqlite":   {},
	"postgres": {},
	"mysql":    {},
	"mssql":    {},
}

// Validate performs static validation of a Load. It does not mutate the
// config; it returns a slice of Issue values and lets the caller decide
// whether warnings block execution.
func Validate(l Load) []Issue {
	var issues []Issue

	if strings.TrimSpace(l.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and logs will use a generic run label",
		})
	}

	for _, in := range []struct{ path, val string }{
		{"inputs.customers", l.Inputs.Customers},
		{"inputs.products", l.Inputs.Products},
		{"inputs.sales", l.Inputs.Sales},
	} {
		if strings.TrimSpace(in.val) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     in.path,
				Message:  "path must not be empty; all three cleaned extracts are required",
			})
		}
	}

	if _, ok := knownKinds[l.Storage.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q (want sqlite, postgres, mysql, or mssql)", l.Storage.Kind),
		})
	}
	if strings.TrimSpace(l.Storage.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "dsn must not be empty",
		})
	}

	if layout := l.Dates.Layout; layout != "" {
		// A layout must round-trip a reference date back to the same day.
		// Comparing components catches non-layouts like "YYYY-MM-DD",
		// which format to themselves and would pass a parse-only check.
		ref := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
		got, err := time.Parse(layout, ref.Format(layout))
		if err != nil || !got.Equal(ref) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "dates.layout",
				Message:  fmt.Sprintf("layout %q does not round-trip a reference date (use Go reference layouts, e.g. 2006-01-02)", layout),
			})
		}
	}

	if l.Runtime.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runtime.batch_size",
			Message:  "batch_size must not be negative",
		})
	}

	return issues
}
