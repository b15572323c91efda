package mssql

// createSchemaStmts is the star-schema DDL in T-SQL dialect. Each CREATE is
// wrapped in an IF OBJECT_ID guard since T-SQL lacks IF NOT EXISTS on CREATE
// TABLE.
var createSchemaStmts = []string{
	`IF OBJECT_ID(N'dates', N'U') IS NULL
CREATE TABLE dates (
  date NVARCHAR(10) PRIMARY KEY,
  year INT, quarter INT, month INT, day INT, is_weekend INT)`,

	`IF OBJECT_ID(N'customers', N'U') IS NULL
CREATE TABLE customers (
  customer_id NVARCHAR(64) PRIMARY KEY,
  name NVARCHAR(255), region NVARCHAR(255), join_date NVARCHAR(10), last_purchase_date NVARCHAR(10), email_opt_in INT)`,

	`IF OBJECT_ID(N'products', N'U') IS NULL
CREATE TABLE products (
  product_id NVARCHAR(64) PRIMARY KEY,
  product_name NVARCHAR(255), category NVARCHAR(255), unit_price DECIMAL(12,2), stock_level INT, discontinued INT)`,

	`IF OBJECT_ID(N'stores', N'U') IS NULL
CREATE TABLE stores (
  store_id NVARCHAR(64) PRIMARY KEY, store_name NVARCHAR(255), region NVARCHAR(255))`,

	`IF OBJECT_ID(N'campaigns', N'U') IS NULL
CREATE TABLE campaigns (
  campaign_id NVARCHAR(64) PRIMARY KEY, campaign_name NVARCHAR(255), start_date NVARCHAR(10), end_date NVARCHAR(10))`,

	`IF OBJECT_ID(N'payment_methods', N'U') IS NULL
CREATE TABLE payment_methods (
  payment_method_id NVARCHAR(64) PRIMARY KEY, method_name NVARCHAR(255))`,

	`IF OBJECT_ID(N'sales', N'U') IS NULL
CREATE TABLE sales (
  sale_id NVARCHAR(64) PRIMARY KEY,
  date NVARCHAR(10) NOT NULL,
  customer_id NVARCHAR(64) NOT NULL,
  product_id NVARCHAR(64) NOT NULL,
  store_id NVARCHAR(64) NOT NULL,
  campaign_id NVARCHAR(64),
  payment_method_id NVARCHAR(64) NOT NULL,
  quantity INT, sales_amount DECIMAL(12,2),
  FOREIGN KEY (date) REFERENCES dates(date),
  FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
  FOREIGN KEY (product_id) REFERENCES products(product_id),
  FOREIGN KEY (store_id) REFERENCES stores(store_id),
  FOREIGN KEY (campaign_id) REFERENCES campaigns(campaign_id),
  FOREIGN KEY (payment_method_id) REFERENCES payment_methods(payment_method_id))`,
}
