package mysql

// createSchemaStmts is the star-schema DDL in MySQL dialect. Key columns are
// VARCHAR because MySQL cannot index bare TEXT; dates stay ISO text for
// portability with the other backends.
var createSchemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS dates (
  date VARCHAR(10) PRIMARY KEY,
  year INT, quarter INT, month INT, day INT, is_weekend INT) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS customers (
  customer_id VARCHAR(64) PRIMARY KEY,
  name VARCHAR(255), region VARCHAR(255), join_date VARCHAR(10), last_purchase_date VARCHAR(10), email_opt_in INT) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS products (
  product_id VARCHAR(64) PRIMARY KEY,
  product_name VARCHAR(255), category VARCHAR(255), unit_price DECIMAL(12,2), stock_level INT, discontinued INT) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS stores (
  store_id VARCHAR(64) PRIMARY KEY, store_name VARCHAR(255), region VARCHAR(255)) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS campaigns (
  campaign_id VARCHAR(64) PRIMARY KEY, campaign_name VARCHAR(255), start_date VARCHAR(10), end_date VARCHAR(10)) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS payment_methods (
  payment_method_id VARCHAR(64) PRIMARY KEY, method_name VARCHAR(255)) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS sales (
  sale_id VARCHAR(64) PRIMARY KEY,
  date VARCHAR(10) NOT NULL,
  customer_id VARCHAR(64) NOT NULL,
  product_id VARCHAR(64) NOT NULL,
  store_id VARCHAR(64) NOT NULL,
  campaign_id VARCHAR(64),
  payment_method_id VARCHAR(64) NOT NULL,
  quantity INT, sales_amount DECIMAL(12,2),
  FOREIGN KEY (date) REFERENCES dates(date),
  FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
  FOREIGN KEY (product_id) REFERENCES products(product_id),
  FOREIGN KEY (store_id) REFERENCES stores(store_id),
  FOREIGN KEY (campaign_id) REFERENCES campaigns(campaign_id),
  FOREIGN KEY (payment_method_id) REFERENCES payment_methods(payment_method_id)) ENGINE=InnoDB`,
}
