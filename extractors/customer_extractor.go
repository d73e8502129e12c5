package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// CustomerExtractor извлекает данные о клиентах из транзакционной БД
type CustomerExtractor struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewCustomerExtractor создает новый экземпляр CustomerExtractor
func NewCustomerExtractor(db *sql.DB, logger *utils.BuildLogger) *CustomerExtractor {
	return &CustomerExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCustomers извлекает данные о клиентах
// Извлекаются все записи, включая неактивные: фильтрация выполняется в staging-слое
func (e *CustomerExtractor) ExtractCustomers(batchSize int) ([]models.CustomerSource, error) {
	e.logger.Debug("Начало извлечения данных о клиентах")

	query := `
		SELECT customer_id, first_name, last_name, IFNULL(email, ''),
			IFNULL(city, ''), IFNULL(state, ''), IFNULL(country, ''),
			IFNULL(customer_segment, ''), registration_date, is_active,
			created_at, updated_at
		FROM customers
		ORDER BY customer_id
		LIMIT ?
	`

	// Выполняем запрос
	rows, err := e.db.Query(query, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о клиентах: %v", err)
		return nil, fmt.Errorf("ошибка запроса клиентов: %w", err)
	}
	defer rows.Close()

	// Обрабатываем результаты
	var customers []models.CustomerSource
	for rows.Next() {
		var customer models.CustomerSource
		if err := rows.Scan(
			&customer.CustomerID,
			&customer.FirstName,
			&customer.LastName,
			&customer.Email,
			&customer.City,
			&customer.State,
			&customer.Country,
			&customer.Segment,
			&customer.RegistrationDate,
			&customer.IsActive,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных клиента: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных клиента: %w", err)
		}
		customers = append(customers, customer)
	}

	// Проверяем ошибки после итерации по результатам
	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по клиентам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по клиентам: %w", err)
	}

	e.logger.Debug("Извлечено %d клиентов", len(customers))
	return customers, nil
}
