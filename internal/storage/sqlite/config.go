package sqlite

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:smart_sales.dw?_fk=1"
	//   "smart_sales.dw" (interpreted by the driver)
	DSN string

	// BatchSize bounds rows per INSERT during Refresh.
	BatchSize int
}
