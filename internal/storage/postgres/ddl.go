package postgres

// createSchemaStmts is the star-schema DDL in Postgres dialect. Dates are ISO
// text to match the other backends; money is NUMERIC(12,2).
var createSchemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS dates (
  date TEXT PRIMARY KEY,
  year INTEGER, quarter INTEGER, month INTEGER, day INTEGER, is_weekend INTEGER)`,

	`CREATE TABLE IF NOT EXISTS customers (
  customer_id TEXT PRIMARY KEY,
  name TEXT, region TEXT, join_date TEXT, last_purchase_date TEXT, email_opt_in INTEGER)`,

	`CREATE TABLE IF NOT EXISTS products (
  product_id TEXT PRIMARY KEY,
  product_name TEXT, category TEXT, unit_price NUMERIC(12,2), stock_level INTEGER, discontinued INTEGER)`,

	`CREATE TABLE IF NOT EXISTS stores (
  store_id TEXT PRIMARY KEY, store_name TEXT, region TEXT)`,

	`CREATE TABLE IF NOT EXISTS campaigns (
  campaign_id TEXT PRIMARY KEY, campaign_name TEXT, start_date TEXT, end_date TEXT)`,

	`CREATE TABLE IF NOT EXISTS payment_methods (
  payment_method_id TEXT PRIMARY KEY, method_name TEXT)`,

	`CREATE TABLE IF NOT EXISTS sales (
  sale_id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  customer_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  campaign_id TEXT,
  payment_method_id TEXT NOT NULL,
  quantity INTEGER, sales_amount NUMERIC(12,2),
  FOREIGN KEY (date) REFERENCES dates(date),
  FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
  FOREIGN KEY (product_id) REFERENCES products(product_id),
  FOREIGN KEY (store_id) REFERENCES stores(store_id),
  FOREIGN KEY (campaign_id) REFERENCES campaigns(campaign_id),
  FOREIGN KEY (payment_method_id) REFERENCES payment_methods(payment_method_id))`,
}
