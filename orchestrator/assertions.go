package orchestrator

import (
	"fmt"

	"github.com/LilVoxy/coursework_warehouse/models"
)

// Проверки качества данных узлов графа сборки
// Каждая проверка возвращает результат с количеством нарушающих строк;
// непройденная проверка делает узел неуспешным

// assertUniqueKeys проверяет уникальность строковых суррогатных ключей
func assertUniqueKeys(check string, keys []string) models.AssertionResult {
	seen := make(map[string]bool, len(keys))
	failed := 0
	for _, key := range keys {
		if seen[key] {
			failed++
			continue
		}
		seen[key] = true
	}

	result := models.AssertionResult{Check: check, Passed: failed == 0, FailedRows: failed}
	if failed > 0 {
		result.Details = fmt.Sprintf("найдено %d дублирующихся ключей", failed)
	}
	return result
}

// assertUniqueIntKeys проверяет уникальность целочисленных суррогатных ключей
func assertUniqueIntKeys(check string, keys []int) models.AssertionResult {
	seen := make(map[int]bool, len(keys))
	failed := 0
	for _, key := range keys {
		if seen[key] {
			failed++
			continue
		}
		seen[key] = true
	}

	result := models.AssertionResult{Check: check, Passed: failed == 0, FailedRows: failed}
	if failed > 0 {
		result.Details = fmt.Sprintf("найдено %d дублирующихся ключей", failed)
	}
	return result
}

// assertNotEmpty проверяет, что обязательное строковое поле заполнено во всех строках
func assertNotEmpty(check string, values []string) models.AssertionResult {
	failed := 0
	for _, value := range values {
		if value == "" {
			failed++
		}
	}

	result := models.AssertionResult{Check: check, Passed: failed == 0, FailedRows: failed}
	if failed > 0 {
		result.Details = fmt.Sprintf("найдено %d пустых значений", failed)
	}
	return result
}

// assertSingleSentinel проверяет, что календарное измерение содержит
// ровно одну дату-заглушку
func assertSingleSentinel(dates []models.DateDimension, sentinelKey int) models.AssertionResult {
	count := 0
	for _, date := range dates {
		if date.DateKey == sentinelKey {
			count++
		}
	}

	result := models.AssertionResult{Check: "dim_dates_single_sentinel", Passed: count == 1}
	if count != 1 {
		result.FailedRows = count
		result.Details = fmt.Sprintf("дата-заглушка встречается %d раз вместо одного", count)
	}
	return result
}

// assertFactDatesResolved проверяет, что каждый факт ссылается на существующую
// запись календарного измерения (истинное совпадение или дата-заглушка)
func assertFactDatesResolved(facts []models.OrderFact, dates []models.DateDimension) models.AssertionResult {
	validKeys := make(map[int]bool, len(dates))
	for _, date := range dates {
		validKeys[date.DateKey] = true
	}

	failed := 0
	for _, fact := range facts {
		if !validKeys[fact.DateKey] {
			failed++
		}
	}

	result := models.AssertionResult{Check: "fact_orders_date_key_resolved", Passed: failed == 0, FailedRows: failed}
	if failed > 0 {
		result.Details = fmt.Sprintf("найдено %d фактов с неразрешенным ключом даты", failed)
	}
	return result
}

// assertFactReferences проверяет ссылочную целостность фактов:
// непустой ключ измерения обязан существовать в соответствующем измерении
func assertFactReferences(facts []models.OrderFact, customers []models.CustomerDimension, products []models.ProductDimension) models.AssertionResult {
	customerKeys := make(map[string]bool, len(customers))
	for _, customer := range customers {
		customerKeys[customer.CustomerKey] = true
	}

	productKeys := make(map[string]bool, len(products))
	for _, product := range products {
		productKeys[product.ProductKey] = true
	}

	failed := 0
	for _, fact := range facts {
		if fact.CustomerKey != nil && !customerKeys[*fact.CustomerKey] {
			failed++
			continue
		}
		if fact.ProductKey != nil && !productKeys[*fact.ProductKey] {
			failed++
		}
	}

	result := models.AssertionResult{Check: "fact_orders_referential_integrity", Passed: failed == 0, FailedRows: failed}
	if failed > 0 {
		result.Details = fmt.Sprintf("найдено %d фактов со ссылками на несуществующие измерения", failed)
	}
	return result
}

// assertAscendingPeriods проверяет, что витрина упорядочена по (год, месяц)
// по возрастанию и не содержит дублирующихся периодов
func assertAscendingPeriods(marts []models.MonthlyRevenueFact) models.AssertionResult {
	failed := 0
	for i := 1; i < len(marts); i++ {
		prev := marts[i-1].Year*100 + marts[i-1].Month
		cur := marts[i].Year*100 + marts[i].Month
		if cur <= prev {
			failed++
		}
	}

	result := models.AssertionResult{Check: "revenue_analysis_period_order", Passed: failed == 0, FailedRows: failed}
	if failed > 0 {
		result.Details = fmt.Sprintf("найдено %d нарушений порядка периодов", failed)
	}
	return result
}
