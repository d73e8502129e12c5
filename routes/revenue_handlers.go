// routes/revenue_handlers.go
package routes

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/report"
)

// RevenueResponse структура ответа API для витрины выручки
type RevenueResponse struct {
	Periods []models.MonthlyRevenueFact `json:"periods"`
}

// GetRevenueHandler обрабатывает запросы к аналитической витрине выручки
func GetRevenueHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		query := r.URL.Query()
		yearStr := query.Get("year")

		sqlQuery := `
			SELECT
				year, month, month_name,
				total_orders, total_customers, total_quantity,
				total_revenue, total_profit, avg_order_value, margin_pct,
				revenue_growth_pct, profit_growth_pct
			FROM revenue_analysis
		`
		var args []interface{}

		// Необязательная фильтрация по году
		if yearStr != "" {
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				http.Error(w, "Неверный формат параметра year", http.StatusBadRequest)
				return
			}
			sqlQuery += " WHERE year = ?"
			args = append(args, year)
		}

		sqlQuery += " ORDER BY year, month"

		rows, err := db.Query(sqlQuery, args...)
		if err != nil {
			log.Printf("❌ Ошибка при запросе витрины выручки: %v", err)
			http.Error(w, "Ошибка при получении витрины выручки", http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		var periods []models.MonthlyRevenueFact

		for rows.Next() {
			var period models.MonthlyRevenueFact
			var revenueGrowth, profitGrowth sql.NullFloat64

			err := rows.Scan(
				&period.Year,
				&period.Month,
				&period.MonthName,
				&period.TotalOrders,
				&period.TotalCustomers,
				&period.TotalQuantity,
				&period.TotalRevenue,
				&period.TotalProfit,
				&period.AvgOrderValue,
				&period.MarginPct,
				&revenueGrowth,
				&profitGrowth,
			)
			if err != nil {
				log.Printf("❌ Ошибка при сканировании витрины выручки: %v", err)
				continue
			}

			// NULL в колонках роста означает отсутствие базового периода
			if revenueGrowth.Valid {
				value := revenueGrowth.Float64
				period.RevenueGrowthPct = &value
			}
			if profitGrowth.Valid {
				value := profitGrowth.Float64
				period.ProfitGrowthPct = &value
			}

			periods = append(periods, period)
		}

		// Проверяем ошибки после итерации
		if err = rows.Err(); err != nil {
			log.Printf("❌ Ошибка при итерации по витрине выручки: %v", err)
			http.Error(w, "Ошибка при обработке витрины выручки", http.StatusInternalServerError)
			return
		}

		response := RevenueResponse{
			Periods: periods,
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлена витрина выручки из %d периодов", len(periods))
	}
}

// GetLatestReportHandler обрабатывает запросы последнего отчета о качестве сборки
func GetLatestReportHandler(archiver *report.Archiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest, err := archiver.Latest()
		if err != nil {
			log.Printf("❌ Ошибка при чтении архива отчетов: %v", err)
			http.Error(w, "Ошибка при получении отчета о сборке", http.StatusInternalServerError)
			return
		}

		if latest == nil {
			http.Error(w, "Отчетов о сборке еще нет", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(latest); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлен отчет о сборке %s", latest.RunID)
	}
}
