package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// StagingLoader отвечает за материализацию staging-слоя
type StagingLoader struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewStagingLoader создает новый экземпляр StagingLoader
func NewStagingLoader(db *sql.DB, logger *utils.BuildLogger) *StagingLoader {
	return &StagingLoader{
		db:     db,
		logger: logger,
	}
}

// LoadCustomers материализует таблицу stg_customers
func (l *StagingLoader) LoadCustomers(customers []models.StagingCustomer) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки staging-слоя клиентов (всего: %d)", len(customers))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "stg_customers", ddl: stagingCustomersDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(customer_key, customer_id, full_name, email, city, state, country, segment, registration_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
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

	l.logger.Info("Staging-слой клиентов загружен. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}

// LoadProducts материализует таблицу stg_products
func (l *StagingLoader) LoadProducts(products []models.StagingProduct) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки staging-слоя товаров (всего: %d)", len(products))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "stg_products", ddl: stagingProductsDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(product_key, product_id, product_name, category, subcategory, brand, supplier, cost_price, unit_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
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

	l.logger.Info("Staging-слой товаров загружен. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}

// LoadOrders материализует таблицу stg_orders
func (l *StagingLoader) LoadOrders(orders []models.StagingOrder) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки staging-слоя заказов (всего: %d)", len(orders))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "stg_orders", ddl: stagingOrdersDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(order_key, order_id, customer_id, product_id, quantity, unit_price, discount, tax, total_amount, status, order_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		processed := 0
		for _, order := range orders {
			if _, err := stmt.Exec(
				order.OrderKey,
				order.OrderID,
				order.CustomerID,
				order.ProductID,
				order.Quantity,
				order.UnitPrice,
				order.Discount,
				order.Tax,
				order.TotalAmount,
				order.Status,
				order.OrderDate.Format("2006-01-02"),
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

	l.logger.Info("Staging-слой заказов загружен. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}
