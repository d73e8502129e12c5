package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// Extractor координирует процесс извлечения данных из транзакционной базы
type Extractor struct {
	db                *sql.DB
	logger            *utils.BuildLogger
	customerExtractor *CustomerExtractor
	productExtractor  *ProductExtractor
	orderExtractor    *OrderExtractor
	batchSize         int
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.BuildLogger, batchSize int) *Extractor {
	return &Extractor{
		db:                db,
		logger:            logger,
		customerExtractor: NewCustomerExtractor(db, logger),
		productExtractor:  NewProductExtractor(db, logger),
		orderExtractor:    NewOrderExtractor(db, logger),
		batchSize:         batchSize,
	}
}

// Extract выполняет извлечение данных всех сущностей для сборки хранилища
// Сборка всегда полная, поэтому извлекаются все записи в пределах batchSize
func (e *Extractor) Extract() (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.Info("Начало фазы Extract (Извлечение данных)")

	var extractedData models.ExtractedData
	var err error

	// Извлекаем клиентов
	extractedData.Customers, err = e.customerExtractor.ExtractCustomers(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении клиентов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения клиентов: %w", err)
	}

	// Извлекаем товары
	extractedData.Products, err = e.productExtractor.ExtractProducts(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении товаров: %v", err)
		return nil, fmt.Errorf("ошибка извлечения товаров: %w", err)
	}

	// Извлекаем заказы
	extractedData.Orders, err = e.orderExtractor.ExtractOrders(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении заказов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения заказов: %w", err)
	}

	// Записываем время извлечения
	extractedData.ExtractedAt = time.Now()

	e.logger.Info("Фаза Extract завершена. Длительность: %v", time.Since(startTime))
	e.logger.Info("Извлечено: %d клиентов, %d товаров, %d заказов",
		len(extractedData.Customers),
		len(extractedData.Products),
		len(extractedData.Orders),
	)

	return &extractedData, nil
}
