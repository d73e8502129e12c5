package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// ProductExtractor извлекает данные о товарах из транзакционной БД
type ProductExtractor struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewProductExtractor создает новый экземпляр ProductExtractor
func NewProductExtractor(db *sql.DB, logger *utils.BuildLogger) *ProductExtractor {
	return &ProductExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractProducts извлекает данные о товарах
func (e *ProductExtractor) ExtractProducts(batchSize int) ([]models.ProductSource, error) {
	e.logger.Debug("Начало извлечения данных о товарах")

	query := `
		SELECT product_id, product_name, IFNULL(category, ''), IFNULL(subcategory, ''),
			IFNULL(brand, ''), IFNULL(supplier, ''), cost_price, unit_price,
			is_active, created_at, updated_at
		FROM products
		ORDER BY product_id
		LIMIT ?
	`

	// Выполняем запрос
	rows, err := e.db.Query(query, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении данных о товарах: %v", err)
		return nil, fmt.Errorf("ошибка запроса товаров: %w", err)
	}
	defer rows.Close()

	// Обрабатываем результаты
	var products []models.ProductSource
	for rows.Next() {
		var product models.ProductSource
		if err := rows.Scan(
			&product.ProductID,
			&product.ProductName,
			&product.Category,
			&product.Subcategory,
			&product.Brand,
			&product.Supplier,
			&product.CostPrice,
			&product.UnitPrice,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			e.logger.Error("Ошибка при обработке данных товара: %v", err)
			return nil, fmt.Errorf("ошибка обработки данных товара: %w", err)
		}
		products = append(products, product)
	}

	// Проверяем ошибки после итерации по результатам
	if err = rows.Err(); err != nil {
		e.logger.Error("Ошибка после итерации по товарам: %v", err)
		return nil, fmt.Errorf("ошибка после итерации по товарам: %w", err)
	}

	e.logger.Debug("Извлечено %d товаров", len(products))
	return products, nil
}
