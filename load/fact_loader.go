package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// FactLoader отвечает за материализацию фактов заказов
type FactLoader struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewFactLoader создает новый экземпляр FactLoader
func NewFactLoader(db *sql.DB, logger *utils.BuildLogger) *FactLoader {
	return &FactLoader{
		db:     db,
		logger: logger,
	}
}

// Load материализует таблицу fact_orders
// Пустые ключи измерений загружаются как NULL
func (l *FactLoader) Load(facts []models.OrderFact) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки фактов заказов (всего: %d)", len(facts))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "fact_orders", ddl: factOrdersDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(fact_key, order_id, customer_key, product_key, date_key, missing_date_flag,
			quantity, unit_price, discount, tax, gross_amount, net_amount, total_amount,
			cost_amount, profit_amount, margin_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		processed := 0
		for _, fact := range facts {
			// NULL-значения ключей измерений передаются как nil
			var customerKey, productKey interface{}
			if fact.CustomerKey != nil {
				customerKey = *fact.CustomerKey
			}
			if fact.ProductKey != nil {
				productKey = *fact.ProductKey
			}

			if _, err := stmt.Exec(
				fact.FactKey,
				fact.OrderID,
				customerKey,
				productKey,
				fact.DateKey,
				fact.MissingDateFlag,
				fact.Quantity,
				fact.UnitPrice,
				fact.Discount,
				fact.Tax,
				fact.GrossAmount,
				fact.NetAmount,
				fact.TotalAmount,
				fact.CostAmount,
				fact.ProfitAmount,
				fact.MarginPct,
			); err != nil {
				return processed, err
			}
			processed++

			// Логируем прогресс каждые 1000 фактов
			if processed%1000 == 0 {
				l.logger.Debug("Загружено %d из %d фактов заказов...", processed, len(facts))
			}
		}
		return processed, nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("Факты заказов загружены. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}
