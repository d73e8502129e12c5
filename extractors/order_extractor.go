package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// OrderExtractor извлекает строки заказов из транзакционной БД
type OrderExtractor struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewOrderExtractor создает новый экземпляр OrderExtractor
func NewOrderExtractor(db *sql.DB, logger *utils.BuildLogger) *OrderExtractor {
	return &OrderExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractOrders извлекает строки заказов
// Статусы не фильтруются при извлечении: предикат включения применяет staging-слой
func (e *OrderExtractor) ExtractOrders(batchSize int) ([]models.OrderSource, error) {
	e.logger.Debug("Начало извлечения строк заказов")

	query := `
		SELECT order_id, customer_id, product_id, quantity, unit_price,
			discount, tax, total_amount, status, order_date, created_at
		FROM orders
		ORDER BY order_id
		LIMIT ?
	`

	// Выполняем запрос
	rows, err := e.db.Query(query, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении строк заказов: %v", err)
		return nil, fmt.Errorf("ошибка запроса заказов: %w", err)
	}
	defer rows.Close()

	// Обрабатываем результаты
	var orders []models.OrderSource
	for rows.Next() {
		var order models.OrderSource
		if err := rows.Scan(
			&order.OrderID,
			&order.CustomerID,
			&order.ProductID,
			&order.Quantity,
			&order.UnitPrice,
			&order.Discount,
			&order.Tax,
			&order.TotalAmount,
			&order.Status,
			&order.OrderDate,
			&order.CreatedAt,
		); err != nil {
			e.logger.Error("Ошибка при обработке строки заказа: %v", err)
			return nil, fmt.Errorf("ошибка обработки строки заказа: %w", err)
		}
		orders = append(orders, order)
	}

	// Проверяем ошибки после итерации по результатам
	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по заказам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по заказам: %w", err)
	}

	e.logger.Debug("Извлечено %d строк заказов", len(orders))
	return orders, nil
}
