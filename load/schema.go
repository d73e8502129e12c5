package load

// DDL-определения таблиц хранилища
// Таблицы создаются лениво при первой загрузке; каждая пересборка
// материализует новое поколение и атомарно подменяет предыдущее
const (
	stagingCustomersDDL = `(
		customer_key CHAR(36) NOT NULL PRIMARY KEY,
		customer_id INT NOT NULL,
		full_name VARCHAR(120) NOT NULL,
		email VARCHAR(100),
		city VARCHAR(50),
		state VARCHAR(50),
		country VARCHAR(50),
		segment VARCHAR(20),
		registration_date DATE NOT NULL
	)`

	stagingProductsDDL = `(
		product_key CHAR(36) NOT NULL PRIMARY KEY,
		product_id INT NOT NULL,
		product_name VARCHAR(200) NOT NULL,
		category VARCHAR(50),
		subcategory VARCHAR(50),
		brand VARCHAR(50),
		supplier VARCHAR(50),
		cost_price DECIMAL(12,2) NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL
	)`

	stagingOrdersDDL = `(
		order_key CHAR(36) NOT NULL PRIMARY KEY,
		order_id INT NOT NULL,
		customer_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		discount DECIMAL(12,2) NOT NULL DEFAULT 0,
		tax DECIMAL(12,2) NOT NULL DEFAULT 0,
		total_amount DECIMAL(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL,
		order_date DATE NOT NULL
	)`

	dimCustomersDDL = `(
		customer_key CHAR(36) NOT NULL PRIMARY KEY,
		customer_id INT NOT NULL,
		full_name VARCHAR(120) NOT NULL,
		email VARCHAR(100),
		city VARCHAR(50),
		state VARCHAR(50),
		country VARCHAR(50),
		segment VARCHAR(20),
		registration_date DATE NOT NULL,
		tenure_class VARCHAR(15) NOT NULL,
		last_updated TIMESTAMP NOT NULL
	)`

	dimProductsDDL = `(
		product_key CHAR(36) NOT NULL PRIMARY KEY,
		product_id INT NOT NULL,
		product_name VARCHAR(200) NOT NULL,
		category VARCHAR(50),
		subcategory VARCHAR(50),
		brand VARCHAR(50),
		supplier VARCHAR(50),
		cost_price DECIMAL(12,2) NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		profit_margin_pct DECIMAL(7,2) NOT NULL,
		margin_tier VARCHAR(10) NOT NULL,
		price_tier VARCHAR(10) NOT NULL,
		last_updated TIMESTAMP NOT NULL
	)`

	dimDatesDDL = `(
		date_key INT NOT NULL PRIMARY KEY,
		full_date DATE NOT NULL,
		year INT NOT NULL,
		quarter INT NOT NULL,
		month INT NOT NULL,
		month_name VARCHAR(10) NOT NULL,
		week_of_year INT NOT NULL,
		day_of_month INT NOT NULL,
		day_of_week INT NOT NULL,
		day_name VARCHAR(10) NOT NULL,
		is_weekend BOOLEAN NOT NULL,
		is_holiday BOOLEAN NOT NULL
	)`

	factOrdersDDL = `(
		fact_key CHAR(36) NOT NULL PRIMARY KEY,
		order_id INT NOT NULL,
		customer_key CHAR(36) NULL,
		product_key CHAR(36) NULL,
		date_key INT NOT NULL,
		missing_date_flag BOOLEAN NOT NULL DEFAULT FALSE,
		quantity INT NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		discount DECIMAL(12,2) NOT NULL,
		tax DECIMAL(12,2) NOT NULL,
		gross_amount DECIMAL(14,2) NOT NULL,
		net_amount DECIMAL(14,2) NOT NULL,
		total_amount DECIMAL(14,2) NOT NULL,
		cost_amount DECIMAL(14,2) NOT NULL,
		profit_amount DECIMAL(14,2) NOT NULL,
		margin_pct DECIMAL(9,2) NOT NULL,
		INDEX idx_fact_orders_date (date_key),
		INDEX idx_fact_orders_customer (customer_key),
		INDEX idx_fact_orders_product (product_key)
	)`

	revenueAnalysisDDL = `(
		year INT NOT NULL,
		month INT NOT NULL,
		month_name VARCHAR(10) NOT NULL,
		total_orders INT NOT NULL,
		total_customers INT NOT NULL,
		total_quantity INT NOT NULL,
		total_revenue DECIMAL(16,2) NOT NULL,
		total_profit DECIMAL(16,2) NOT NULL,
		avg_order_value DECIMAL(14,2) NOT NULL,
		margin_pct DECIMAL(9,2) NOT NULL,
		revenue_growth_pct DECIMAL(9,2) NULL,
		profit_growth_pct DECIMAL(9,2) NULL,
		PRIMARY KEY (year, month)
	)`
)
