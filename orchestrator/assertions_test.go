package orchestrator

import (
	"testing"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/staging"
)

func TestAssertUniqueKeys(t *testing.T) {
	passed := assertUniqueKeys("check", []string{"a", "b", "c"})
	if !passed.Passed {
		t.Error("уникальные ключи должны проходить проверку")
	}

	failed := assertUniqueKeys("check", []string{"a", "b", "a", "a"})
	if failed.Passed {
		t.Error("дублирующиеся ключи должны проваливать проверку")
	}
	if failed.FailedRows != 2 {
		t.Errorf("ожидалось 2 нарушающих строки, получено %d", failed.FailedRows)
	}
}

func TestAssertNotEmpty(t *testing.T) {
	passed := assertNotEmpty("check", []string{"NEW", "RECENT"})
	if !passed.Passed {
		t.Error("заполненные значения должны проходить проверку")
	}

	failed := assertNotEmpty("check", []string{"NEW", "", ""})
	if failed.Passed {
		t.Error("пустые значения должны проваливать проверку")
	}
	if failed.FailedRows != 2 {
		t.Errorf("ожидалось 2 нарушающих строки, получено %d", failed.FailedRows)
	}
}

func TestAssertSingleSentinel(t *testing.T) {
	sentinelKey := staging.DateKey(1900, 1, 1)

	dates := []models.DateDimension{
		{DateKey: sentinelKey},
		{DateKey: 20240101},
	}
	if result := assertSingleSentinel(dates, sentinelKey); !result.Passed {
		t.Error("календарь с одной заглушкой должен проходить проверку")
	}

	noSentinel := []models.DateDimension{{DateKey: 20240101}}
	if result := assertSingleSentinel(noSentinel, sentinelKey); result.Passed {
		t.Error("календарь без заглушки должен проваливать проверку")
	}

	twoSentinels := []models.DateDimension{{DateKey: sentinelKey}, {DateKey: sentinelKey}}
	if result := assertSingleSentinel(twoSentinels, sentinelKey); result.Passed {
		t.Error("календарь с двумя заглушками должен проваливать проверку")
	}
}

func TestAssertFactReferences(t *testing.T) {
	customerKey := staging.CustomerKey(1)
	productKey := staging.ProductKey(100)
	unknownKey := staging.CustomerKey(999)

	customers := []models.CustomerDimension{{CustomerKey: customerKey}}
	products := []models.ProductDimension{{ProductKey: productKey}}

	// nil-ключ не считается нарушением: неразрешенная ссылка допустима
	valid := []models.OrderFact{
		{CustomerKey: &customerKey, ProductKey: &productKey},
		{CustomerKey: nil, ProductKey: nil},
	}
	if result := assertFactReferences(valid, customers, products); !result.Passed {
		t.Error("факты с разрешенными или пустыми ключами должны проходить проверку")
	}

	// Непустой ключ, отсутствующий в измерении, - нарушение целостности
	invalid := []models.OrderFact{
		{CustomerKey: &unknownKey, ProductKey: &productKey},
	}
	if result := assertFactReferences(invalid, customers, products); result.Passed {
		t.Error("ключ, отсутствующий в измерении, должен проваливать проверку")
	}
}

func TestAssertAscendingPeriods(t *testing.T) {
	ordered := []models.MonthlyRevenueFact{
		{Year: 2023, Month: 12},
		{Year: 2024, Month: 1},
		{Year: 2024, Month: 3},
	}
	if result := assertAscendingPeriods(ordered); !result.Passed {
		t.Error("возрастающие периоды должны проходить проверку")
	}

	unordered := []models.MonthlyRevenueFact{
		{Year: 2024, Month: 2},
		{Year: 2024, Month: 1},
	}
	if result := assertAscendingPeriods(unordered); result.Passed {
		t.Error("нарушение порядка периодов должно проваливать проверку")
	}

	duplicated := []models.MonthlyRevenueFact{
		{Year: 2024, Month: 1},
		{Year: 2024, Month: 1},
	}
	if result := assertAscendingPeriods(duplicated); result.Passed {
		t.Error("дублирующийся период должен проваливать проверку")
	}
}
