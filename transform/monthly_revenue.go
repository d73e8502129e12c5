package transform

import (
	"sort"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// MonthlyRevenueProcessor отвечает за построение витрины выручки по месяцам
type MonthlyRevenueProcessor struct {
	logger *utils.BuildLogger
}

// NewMonthlyRevenueProcessor создает новый экземпляр MonthlyRevenueProcessor
func NewMonthlyRevenueProcessor(logger *utils.BuildLogger) *MonthlyRevenueProcessor {
	return &MonthlyRevenueProcessor{
		logger: logger,
	}
}

// Внутренний аккумулятор показателей одного месяца
type monthlyAccumulator struct {
	year      int
	month     int
	monthName string
	orders    map[int]bool
	customers map[string]bool
	quantity  int
	revenue   float64
	profit    float64
	cost      float64
}

// ProcessMonthlyRevenue строит витрину выручки по месяцам из фактов заказов
// Группировка идет по атрибутам (год, месяц) календарного измерения.
// Факты с неразрешенными ключами клиентов и товаров включаются в агрегаты:
// выручка учитывается независимо от состояния измерений.
// Процент роста сравнивает период с непосредственно предыдущим заполненным
// периодом в хронологическом порядке; при отсутствии предыдущего периода
// или его неположительном значении рост равен nil
func (p *MonthlyRevenueProcessor) ProcessMonthlyRevenue(facts []models.OrderFact, dates []models.DateDimension) []models.MonthlyRevenueFact {
	p.logger.Debug("Построение витрины выручки по месяцам...")

	// Карта соответствия ключа даты атрибутам календаря
	dateAttrs := make(map[int]models.DateDimension, len(dates))
	for _, date := range dates {
		dateAttrs[date.DateKey] = date
	}

	// Группируем факты по (год, месяц)
	groups := make(map[int]*monthlyAccumulator)
	for _, fact := range facts {
		date, ok := dateAttrs[fact.DateKey]
		if !ok {
			// Ключ даты всегда разрешается, так как факт строился по этому же календарю
			continue
		}

		groupKey := date.Year*100 + date.Month
		group, exists := groups[groupKey]
		if !exists {
			group = &monthlyAccumulator{
				year:      date.Year,
				month:     date.Month,
				monthName: date.MonthName,
				orders:    make(map[int]bool),
				customers: make(map[string]bool),
			}
			groups[groupKey] = group
		}

		group.orders[fact.OrderID] = true
		if fact.CustomerKey != nil {
			group.customers[*fact.CustomerKey] = true
		}
		group.quantity += fact.Quantity
		group.revenue += fact.TotalAmount
		group.profit += fact.ProfitAmount
		group.cost += fact.CostAmount
	}

	// Сортируем периоды по возрастанию (год, месяц)
	groupKeys := make([]int, 0, len(groups))
	for key := range groups {
		groupKeys = append(groupKeys, key)
	}
	sort.Ints(groupKeys)

	marts := make([]models.MonthlyRevenueFact, 0, len(groups))
	for _, key := range groupKeys {
		group := groups[key]

		mart := models.MonthlyRevenueFact{
			Year:           group.year,
			Month:          group.month,
			MonthName:      group.monthName,
			TotalOrders:    len(group.orders),
			TotalCustomers: len(group.customers),
			TotalQuantity:  group.quantity,
			TotalRevenue:   round2(group.revenue),
			TotalProfit:    round2(group.profit),
		}

		// Средний чек
		if mart.TotalOrders > 0 {
			mart.AvgOrderValue = round2(group.revenue / float64(mart.TotalOrders))
		}

		// Агрегированная маржа от себестоимости периода
		if group.cost != 0 {
			mart.MarginPct = round2(group.profit / group.cost * 100)
		}

		marts = append(marts, mart)
	}

	// Проценты роста: сравниваем с непосредственно предыдущим заполненным периодом
	for i := 1; i < len(marts); i++ {
		prev := marts[i-1]
		cur := &marts[i]

		if prev.TotalRevenue > 0 {
			growth := round2((cur.TotalRevenue - prev.TotalRevenue) / prev.TotalRevenue * 100)
			cur.RevenueGrowthPct = &growth
		}

		if prev.TotalProfit > 0 {
			growth := round2((cur.TotalProfit - prev.TotalProfit) / prev.TotalProfit * 100)
			cur.ProfitGrowthPct = &growth
		}
	}

	p.logger.Info("Построена витрина выручки по месяцам. Периодов: %d", len(marts))
	return marts
}
