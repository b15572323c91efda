// Shared database/sql implementation of the full-refresh load. The SQLite,
// MySQL and MSSQL backends differ only in driver, DSN, DDL dialect, and
// placeholder syntax; the transaction shape lives here once.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"salesdw/internal/schema"
)

// Placeholder renders the i-th (1-based) SQL parameter for a dialect.
type Placeholder func(i int) string

// QuestionMark is the SQLite/MySQL parameter style.
func QuestionMark(int) string { return "?" }

// AtP is the SQL Server parameter style ("@p1", "@p2", ...).
func AtP(i int) string { return "@p" + strconv.Itoa(i) }

// DollarN is the Postgres parameter style ("$1", "$2", ...). The Postgres
// backend speaks pgx natively, but keeps its SQL here for symmetry.
func DollarN(i int) string { return "$" + strconv.Itoa(i) }

// RefreshTx performs the two-phase full refresh over a database/sql
// connection: one transaction that clears every warehouse table in
// schema.DeleteOrder and inserts the new rows in schema.LoadOrder. Deleting
// facts first and inserting dimensions first keeps foreign-key constraints
// satisfied at every point inside the transaction.
//
// Any failure rolls the whole transaction back; the store keeps its prior
// committed contents.
func RefreshTx(ctx context.Context, db *sql.DB, ph Placeholder, tables map[string]*schema.Table, batchSize int) (Counts, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("storage: batch size must be > 0")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: begin refresh tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range schema.DeleteOrder {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+name); err != nil {
			return nil, fmt.Errorf("storage: clear %s: %w", name, err)
		}
	}

	counts := make(Counts, len(schema.LoadOrder))
	for _, name := range schema.LoadOrder {
		t, ok := tables[name]
		if !ok {
			return nil, fmt.Errorf("storage: refresh is missing table %s", name)
		}
		n, err := insertBatched(ctx, tx, ph, t, batchSize)
		if err != nil {
			return nil, err
		}
		counts[name] = n
		log.Printf("loader: %s: inserted=%d", name, n)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: commit refresh: %w", err)
	}
	return counts, nil
}

// insertBatched inserts a table's rows with multi-row VALUES statements of at
// most batchSize rows each.
func insertBatched(ctx context.Context, tx *sql.Tx, ph Placeholder, t *schema.Table, batchSize int) (int64, error) {
	var total int64
	for off := 0; off < len(t.Rows); off += batchSize {
		end := min(off+batchSize, len(t.Rows))
		chunk := t.Rows[off:end]
		stmt, args := BuildInsert(t.Name, t.Cols, chunk, ph)
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return total, fmt.Errorf("storage: insert %s: %w", t.Name, err)
		}
		total += int64(len(chunk))
	}
	return total, nil
}

// BuildInsert renders a multi-row INSERT statement for one chunk of rows,
// with bind values converted via BindValue. Shared by the database/sql
// refresh above and the pgx-native Postgres backend.
func BuildInsert(table string, cols []string, chunk [][]any, ph Placeholder) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(chunk)*len(cols))
	p := 1
	for i, row := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ph(p))
			p++
			args = append(args, BindValue(v))
		}
		sb.WriteByte(')')
	}
	return sb.String(), args
}

// BindValue maps a schema cell to a driver-friendly bind value. Decimals are
// bound as their exact string form and cast by the server; everything else
// passes through.
func BindValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.StringFixed(2)
	}
	return v
}
