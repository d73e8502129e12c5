package transform

import (
	"math"
	"sort"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// CustomerDimensionProcessor отвечает за построение измерения клиентов
type CustomerDimensionProcessor struct {
	logger     *utils.BuildLogger
	newDays    int
	recentDays int
}

// NewCustomerDimensionProcessor создает новый экземпляр CustomerDimensionProcessor
func NewCustomerDimensionProcessor(logger *utils.BuildLogger, newDays, recentDays int) *CustomerDimensionProcessor {
	return &CustomerDimensionProcessor{
		logger:     logger,
		newDays:    newDays,
		recentDays: recentDays,
	}
}

// ProcessCustomerDimension строит измерение клиентов из staging-записей
// Класс стажа вычисляется относительно метки времени сборки buildTime:
// при фиксированных входных данных и buildTime результат детерминирован
func (p *CustomerDimensionProcessor) ProcessCustomerDimension(customers []models.StagingCustomer, buildTime time.Time) []models.CustomerDimension {
	p.logger.Debug("Построение измерения клиентов...")

	dimensions := make([]models.CustomerDimension, 0, len(customers))

	for _, customer := range customers {
		// Рассчитываем стаж клиента в днях относительно времени сборки
		tenureDays := int(math.Floor(buildTime.Sub(customer.RegistrationDate).Hours() / 24))

		// Определяем класс стажа:
		// NEW - менее newDays дней, RECENT - менее recentDays, иначе ESTABLISHED
		var tenureClass string
		switch {
		case tenureDays < p.newDays:
			tenureClass = models.TenureNew
		case tenureDays < p.recentDays:
			tenureClass = models.TenureRecent
		default:
			tenureClass = models.TenureEstablished
		}

		dimensions = append(dimensions, models.CustomerDimension{
			CustomerKey:      customer.CustomerKey,
			CustomerID:       customer.CustomerID,
			FullName:         customer.FullName,
			Email:            customer.Email,
			City:             customer.City,
			State:            customer.State,
			Country:          customer.Country,
			Segment:          customer.Segment,
			RegistrationDate: customer.RegistrationDate,
			TenureClass:      tenureClass,
			LastUpdated:      buildTime,
		})
	}

	sort.Slice(dimensions, func(i, j int) bool {
		return dimensions[i].CustomerID < dimensions[j].CustomerID
	})

	p.logger.Info("Построено измерение клиентов. Записей: %d", len(dimensions))
	return dimensions
}
