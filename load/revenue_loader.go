package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// RevenueLoader отвечает за материализацию витрины выручки по месяцам
type RevenueLoader struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewRevenueLoader создает новый экземпляр RevenueLoader
func NewRevenueLoader(db *sql.DB, logger *utils.BuildLogger) *RevenueLoader {
	return &RevenueLoader{
		db:     db,
		logger: logger,
	}
}

// Load материализует таблицу revenue_analysis
// Проценты роста без предыдущего периода загружаются как NULL
func (l *RevenueLoader) Load(marts []models.MonthlyRevenueFact) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки витрины выручки (всего периодов: %d)", len(marts))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "revenue_analysis", ddl: revenueAnalysisDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(year, month, month_name, total_orders, total_customers, total_quantity,
			total_revenue, total_profit, avg_order_value, margin_pct,
			revenue_growth_pct, profit_growth_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		processed := 0
		for _, mart := range marts {
			// Рост без предыдущего периода остается NULL, а не нулем
			var revenueGrowth, profitGrowth interface{}
			if mart.RevenueGrowthPct != nil {
				revenueGrowth = *mart.RevenueGrowthPct
			}
			if mart.ProfitGrowthPct != nil {
				profitGrowth = *mart.ProfitGrowthPct
			}

			if _, err := stmt.Exec(
				mart.Year,
				mart.Month,
				mart.MonthName,
				mart.TotalOrders,
				mart.TotalCustomers,
				mart.TotalQuantity,
				mart.TotalRevenue,
				mart.TotalProfit,
				mart.AvgOrderValue,
				mart.MarginPct,
				revenueGrowth,
				profitGrowth,
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

	l.logger.Info("Витрина выручки загружена. Периодов: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}
