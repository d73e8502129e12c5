package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// DimensionLoader отвечает за материализацию измерений клиентов и товаров
type DimensionLoader struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewDimensionLoader создает новый экземпляр DimensionLoader
func NewDimensionLoader(db *sql.DB, logger *utils.BuildLogger) *DimensionLoader {
	return &DimensionLoader{
		db:     db,
		logger: logger,
	}
}

// LoadCustomers материализует таблицу dim_customers
func (l *DimensionLoader) LoadCustomers(customers []models.CustomerDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения клиентов (всего: %d)", len(customers))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "dim_customers", ddl: dimCustomersDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(customer_key, customer_id, full_name, email, city, state, country, segment,
			registration_date, tenure_class, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		processed := 0
		for _, customer := range customers {
			if _, err := stmt.Exec(
				customer.CustomerKey,
				customer.CustomerID,
				customer.FullName,
				customer.Email,
				customer.City,
				customer.State,
				customer.Country,
				customer.Segment,
				customer.RegistrationDate.Format("2006-01-02"),
				customer.TenureClass,
				customer.LastUpdated,
			); err != nil {
				return processed, err
			}
			processed++
		}
		return processed, nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("Измерение клиентов загружено. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}

// LoadProducts материализует таблицу dim_products
func (l *DimensionLoader) LoadProducts(products []models.ProductDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения товаров (всего: %d)", len(products))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "dim_products", ddl: dimProductsDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(product_key, product_id, product_name, category, subcategory, brand, supplier,
			cost_price, unit_price, profit_margin_pct, margin_tier, price_tier, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		processed := 0
		for _, product := range products {
			if _, err := stmt.Exec(
				product.ProductKey,
				product.ProductID,
				product.ProductName,
				product.Category,
				product.Subcategory,
				product.Brand,
				product.Supplier,
				product.CostPrice,
				product.UnitPrice,
				product.ProfitMarginPct,
				product.MarginTier,
				product.PriceTier,
				product.LastUpdated,
			); err != nil {
				return processed, err
			}
			processed++
		}
		return processed, nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("Измерение товаров загружено. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}
