package transform

import (
	"sort"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/staging"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// OrderFactsProcessor отвечает за построение фактов заказов
type OrderFactsProcessor struct {
	logger *utils.BuildLogger
}

// NewOrderFactsProcessor создает новый экземпляр OrderFactsProcessor
func NewOrderFactsProcessor(logger *utils.BuildLogger) *OrderFactsProcessor {
	return &OrderFactsProcessor{
		logger: logger,
	}
}

// ProcessOrderFacts строит факты заказов с гранулярностью (заказ, товар)
// Семантика соединения с измерениями - left outer: заказ с неразрешенным
// клиентом или товаром сохраняется с пустым ключом измерения и предупреждением.
// Дата заказа разрешается точным совпадением с календарем; при отсутствии
// совпадения подставляется дата-заглушка и выставляется MissingDateFlag -
// строки с этим флагом учитываются в отчете качества для мониторинга
func (p *OrderFactsProcessor) ProcessOrderFacts(
	orders []models.StagingOrder,
	customers []models.CustomerDimension,
	products []models.ProductDimension,
	dates []models.DateDimension,
) ([]models.OrderFact, []models.ReferentialGapWarning) {
	p.logger.Debug("Построение фактов заказов (всего строк: %d)", len(orders))

	// Подготавливаем карты соответствия натуральных ключей измерениям
	customerKeys := make(map[int]string, len(customers))
	for _, customer := range customers {
		customerKeys[customer.CustomerID] = customer.CustomerKey
	}

	productKeys := make(map[int]string, len(products))
	productCosts := make(map[int]float64, len(products))
	for _, product := range products {
		productKeys[product.ProductID] = product.ProductKey
		productCosts[product.ProductID] = product.CostPrice
	}

	dateKeys := make(map[int]bool, len(dates))
	for _, date := range dates {
		dateKeys[date.DateKey] = true
	}

	facts := make([]models.OrderFact, 0, len(orders))
	var warnings []models.ReferentialGapWarning

	for _, order := range orders {
		fact := models.OrderFact{
			FactKey:   order.OrderKey,
			OrderID:   order.OrderID,
			Quantity:  order.Quantity,
			UnitPrice: order.UnitPrice,
			Discount:  order.Discount,
			Tax:       order.Tax,
		}

		// Разрешаем измерение клиентов
		if key, ok := customerKeys[order.CustomerID]; ok {
			fact.CustomerKey = &key
		} else {
			warnings = append(warnings, models.ReferentialGapWarning{
				OrderID:   order.OrderID,
				Dimension: "dim_customers",
				NaturalID: order.CustomerID,
			})
		}

		// Разрешаем измерение товаров
		productResolved := false
		if key, ok := productKeys[order.ProductID]; ok {
			fact.ProductKey = &key
			productResolved = true
		} else {
			warnings = append(warnings, models.ReferentialGapWarning{
				OrderID:   order.OrderID,
				Dimension: "dim_products",
				NaturalID: order.ProductID,
			})
		}

		// Разрешаем календарное измерение: точное совпадение по дню,
		// иначе дата-заглушка с флагом
		orderDateKey := staging.DateKey(order.OrderDate.Year(), int(order.OrderDate.Month()), order.OrderDate.Day())
		if dateKeys[orderDateKey] {
			fact.DateKey = orderDateKey
		} else {
			fact.DateKey = SentinelDateKey()
			fact.MissingDateFlag = true
		}

		// Рассчитываем денежные показатели
		fact.GrossAmount = round2(float64(order.Quantity) * order.UnitPrice)
		fact.NetAmount = round2(fact.GrossAmount - order.Discount)
		fact.TotalAmount = order.TotalAmount

		// Себестоимость равна нулю, если товар не разрешился
		if productResolved {
			fact.CostAmount = round2(float64(order.Quantity) * productCosts[order.ProductID])
		}
		fact.ProfitAmount = round2(fact.TotalAmount - fact.CostAmount)

		// Маржа от себестоимости; при нулевой себестоимости маржа равна нулю
		if fact.CostAmount != 0 {
			fact.MarginPct = round2(fact.ProfitAmount / fact.CostAmount * 100)
		}

		facts = append(facts, fact)
	}

	sort.Slice(facts, func(i, j int) bool {
		if facts[i].OrderID != facts[j].OrderID {
			return facts[i].OrderID < facts[j].OrderID
		}
		return facts[i].FactKey < facts[j].FactKey
	})

	missingDates := 0
	for _, fact := range facts {
		if fact.MissingDateFlag {
			missingDates++
		}
	}

	p.logger.Info("Построены факты заказов. Записей: %d, неразрешенных ссылок: %d, дат-заглушек: %d",
		len(facts), len(warnings), missingDates)
	return facts, warnings
}
