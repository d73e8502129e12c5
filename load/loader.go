package load

import (
	"database/sql"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// Loader интерфейс для материализации слоев хранилища
// Каждый метод полностью заменяет соответствующую таблицу новым поколением
type Loader interface {
	// LoadStagingCustomers материализует staging-слой клиентов
	LoadStagingCustomers(customers []models.StagingCustomer) error

	// LoadStagingProducts материализует staging-слой товаров
	LoadStagingProducts(products []models.StagingProduct) error

	// LoadStagingOrders материализует staging-слой заказов
	LoadStagingOrders(orders []models.StagingOrder) error

	// LoadCustomerDimension материализует измерение клиентов
	LoadCustomerDimension(customers []models.CustomerDimension) error

	// LoadProductDimension материализует измерение товаров
	LoadProductDimension(products []models.ProductDimension) error

	// LoadDateDimension материализует календарное измерение
	LoadDateDimension(dates []models.DateDimension) error

	// LoadOrderFacts материализует факты заказов
	LoadOrderFacts(facts []models.OrderFact) error

	// LoadMonthlyRevenue материализует витрину выручки по месяцам
	LoadMonthlyRevenue(marts []models.MonthlyRevenueFact) error
}

// WarehouseLoader реализация Loader для MySQL-хранилища
type WarehouseLoader struct {
	db     *sql.DB
	logger *utils.BuildLogger

	// Загрузчики для отдельных слоев
	stagingLoader   *StagingLoader
	dimensionLoader *DimensionLoader
	dateLoader      *DateLoader
	factLoader      *FactLoader
	revenueLoader   *RevenueLoader
}

// NewWarehouseLoader создает новый экземпляр WarehouseLoader
func NewWarehouseLoader(db *sql.DB, logger *utils.BuildLogger) *WarehouseLoader {
	return &WarehouseLoader{
		db:              db,
		logger:          logger,
		stagingLoader:   NewStagingLoader(db, logger),
		dimensionLoader: NewDimensionLoader(db, logger),
		dateLoader:      NewDateLoader(db, logger),
		factLoader:      NewFactLoader(db, logger),
		revenueLoader:   NewRevenueLoader(db, logger),
	}
}

// LoadStagingCustomers материализует staging-слой клиентов
func (l *WarehouseLoader) LoadStagingCustomers(customers []models.StagingCustomer) error {
	return l.stagingLoader.LoadCustomers(customers)
}

// LoadStagingProducts материализует staging-слой товаров
func (l *WarehouseLoader) LoadStagingProducts(products []models.StagingProduct) error {
	return l.stagingLoader.LoadProducts(products)
}

// LoadStagingOrders материализует staging-слой заказов
func (l *WarehouseLoader) LoadStagingOrders(orders []models.StagingOrder) error {
	return l.stagingLoader.LoadOrders(orders)
}

// LoadCustomerDimension материализует измерение клиентов
func (l *WarehouseLoader) LoadCustomerDimension(customers []models.CustomerDimension) error {
	return l.dimensionLoader.LoadCustomers(customers)
}

// LoadProductDimension материализует измерение товаров
func (l *WarehouseLoader) LoadProductDimension(products []models.ProductDimension) error {
	return l.dimensionLoader.LoadProducts(products)
}

// LoadDateDimension материализует календарное измерение
func (l *WarehouseLoader) LoadDateDimension(dates []models.DateDimension) error {
	return l.dateLoader.Load(dates)
}

// LoadOrderFacts материализует факты заказов
func (l *WarehouseLoader) LoadOrderFacts(facts []models.OrderFact) error {
	return l.factLoader.Load(facts)
}

// LoadMonthlyRevenue материализует витрину выручки по месяцам
func (l *WarehouseLoader) LoadMonthlyRevenue(marts []models.MonthlyRevenueFact) error {
	return l.revenueLoader.Load(marts)
}
