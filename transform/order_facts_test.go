package transform

import (
	"testing"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/staging"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

func testCalendar(t *testing.T, start, end time.Time) []models.DateDimension {
	t.Helper()
	return NewDateDimensionProcessor(utils.NewBuildLogger(false), start, end, nil).ProcessDateDimension()
}

func TestProcessOrderFactsResolvedReferences(t *testing.T) {
	orderDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	dates := testCalendar(t, orderDate, orderDate)

	customerKey := staging.CustomerKey(1)
	productKey := staging.ProductKey(100)

	customers := []models.CustomerDimension{
		{CustomerKey: customerKey, CustomerID: 1},
	}
	products := []models.ProductDimension{
		{ProductKey: productKey, ProductID: 100, CostPrice: 40.0},
	}
	orders := []models.StagingOrder{
		{
			OrderKey:    staging.OrderLineKey(10, 100),
			OrderID:     10,
			CustomerID:  1,
			ProductID:   100,
			Quantity:    2,
			UnitPrice:   50.0,
			Discount:    10.0,
			TotalAmount: 95.0,
			OrderDate:   orderDate,
		},
	}

	processor := NewOrderFactsProcessor(utils.NewBuildLogger(false))
	facts, warnings := processor.ProcessOrderFacts(orders, customers, products, dates)

	if len(warnings) != 0 {
		t.Fatalf("не ожидалось предупреждений, получено %d", len(warnings))
	}
	if len(facts) != 1 {
		t.Fatalf("ожидался 1 факт, получено %d", len(facts))
	}

	fact := facts[0]
	if fact.CustomerKey == nil || *fact.CustomerKey != customerKey {
		t.Error("ключ клиента должен разрешиться")
	}
	if fact.ProductKey == nil || *fact.ProductKey != productKey {
		t.Error("ключ товара должен разрешиться")
	}
	if fact.DateKey != 20240510 {
		t.Errorf("ключ даты должен разрешиться точным совпадением, получено %d", fact.DateKey)
	}
	if fact.MissingDateFlag {
		t.Error("флаг отсутствующей даты не должен выставляться при точном совпадении")
	}

	// Денежные показатели: gross = 2*50, net = 100-10, cost = 2*40,
	// profit = 95-80, margin = 15/80*100
	if fact.GrossAmount != 100.0 {
		t.Errorf("ожидался gross 100.00, получено %.2f", fact.GrossAmount)
	}
	if fact.NetAmount != 90.0 {
		t.Errorf("ожидался net 90.00, получено %.2f", fact.NetAmount)
	}
	if fact.CostAmount != 80.0 {
		t.Errorf("ожидалась себестоимость 80.00, получено %.2f", fact.CostAmount)
	}
	if fact.ProfitAmount != 15.0 {
		t.Errorf("ожидалась прибыль 15.00, получено %.2f", fact.ProfitAmount)
	}
	if fact.MarginPct != 18.75 {
		t.Errorf("ожидалась маржа 18.75, получено %.2f", fact.MarginPct)
	}
}

func TestProcessOrderFactsUnresolvedProduct(t *testing.T) {
	orderDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	dates := testCalendar(t, orderDate, orderDate)

	customers := []models.CustomerDimension{
		{CustomerKey: staging.CustomerKey(1), CustomerID: 1},
	}

	orders := []models.StagingOrder{
		{
			OrderKey:    staging.OrderLineKey(10, 999),
			OrderID:     10,
			CustomerID:  1,
			ProductID:   999, // товара нет в измерении
			Quantity:    1,
			UnitPrice:   50.0,
			TotalAmount: 50.0,
			OrderDate:   orderDate,
		},
	}

	processor := NewOrderFactsProcessor(utils.NewBuildLogger(false))
	facts, warnings := processor.ProcessOrderFacts(orders, customers, nil, dates)

	// Left outer семантика: факт сохраняется с пустым ключом и предупреждением
	if len(facts) != 1 {
		t.Fatalf("факт с неразрешенным товаром должен сохраниться, получено %d фактов", len(facts))
	}
	if facts[0].ProductKey != nil {
		t.Error("ключ неразрешенного товара должен быть nil")
	}
	if len(warnings) != 1 {
		t.Fatalf("ожидалось 1 предупреждение, получено %d", len(warnings))
	}
	if warnings[0].Dimension != "dim_products" || warnings[0].NaturalID != 999 {
		t.Errorf("предупреждение должно указывать на товар 999 в dim_products: %+v", warnings[0])
	}

	// Себестоимость без товара равна нулю, прибыль - всей сумме, маржа нулевая
	if facts[0].CostAmount != 0 {
		t.Errorf("себестоимость должна быть нулевой, получено %.2f", facts[0].CostAmount)
	}
	if facts[0].ProfitAmount != 50.0 {
		t.Errorf("прибыль должна равняться сумме заказа, получено %.2f", facts[0].ProfitAmount)
	}
	if facts[0].MarginPct != 0 {
		t.Errorf("маржа при нулевой себестоимости должна быть нулевой, получено %.2f", facts[0].MarginPct)
	}
}

func TestProcessOrderFactsMissingDate(t *testing.T) {
	calendarDay := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	dates := testCalendar(t, calendarDay, calendarDay)

	orders := []models.StagingOrder{
		{
			OrderKey:    staging.OrderLineKey(10, 100),
			OrderID:     10,
			CustomerID:  1,
			ProductID:   100,
			Quantity:    1,
			UnitPrice:   10.0,
			TotalAmount: 10.0,
			OrderDate:   time.Date(2019, 3, 3, 0, 0, 0, 0, time.UTC), // вне календаря
		},
	}

	processor := NewOrderFactsProcessor(utils.NewBuildLogger(false))
	facts, _ := processor.ProcessOrderFacts(orders, nil, nil, dates)

	if len(facts) != 1 {
		t.Fatalf("ожидался 1 факт, получено %d", len(facts))
	}
	if facts[0].DateKey != SentinelDateKey() {
		t.Errorf("дата вне календаря должна разрешаться заглушкой, получено %d", facts[0].DateKey)
	}
	if !facts[0].MissingDateFlag {
		t.Error("флаг отсутствующей даты должен быть выставлен")
	}
}
