package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/LilVoxy/coursework_warehouse/config"
	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

func testTiers() config.TierThresholds {
	return config.TierThresholds{
		HighMarginPct:   50.0,
		MediumMarginPct: 25.0,
		PremiumPrice:    1000.0,
		MidRangePrice:   100.0,
	}
}

func TestProcessProductDimensionMarginTiers(t *testing.T) {
	buildTime := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	processor := NewProductDimensionProcessor(utils.NewBuildLogger(false), testTiers())

	tests := []struct {
		name       string
		costPrice  float64
		unitPrice  float64
		wantMargin float64
		wantTier   string
	}{
		// Граница HIGH включительная: ровно 50% - HIGH
		{"ровно 50 процентов", 50.0, 100.0, 50.0, models.MarginTierHigh},
		{"чуть ниже 50 процентов", 50.02, 100.0, 49.98, models.MarginTierMedium},
		{"ровно 25 процентов", 75.0, 100.0, 25.0, models.MarginTierMedium},
		{"чуть ниже 25 процентов", 75.01, 100.0, 24.99, models.MarginTierLow},
		{"отрицательная маржа", 120.0, 100.0, -20.0, models.MarginTierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := []models.StagingProduct{
				{ProductID: 1, ProductName: "ТОВАР", CostPrice: tt.costPrice, UnitPrice: tt.unitPrice},
			}

			dimensions, err := processor.ProcessProductDimension(products, buildTime)
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}

			if dimensions[0].ProfitMarginPct != tt.wantMargin {
				t.Errorf("ожидалась маржа %.2f, получено %.2f", tt.wantMargin, dimensions[0].ProfitMarginPct)
			}
			if dimensions[0].MarginTier != tt.wantTier {
				t.Errorf("ожидался уровень %s, получено %s", tt.wantTier, dimensions[0].MarginTier)
			}
		})
	}
}

func TestProcessProductDimensionPriceTiers(t *testing.T) {
	buildTime := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	processor := NewProductDimensionProcessor(utils.NewBuildLogger(false), testTiers())

	products := []models.StagingProduct{
		{ProductID: 1, ProductName: "ПРЕМИУМ", CostPrice: 500.0, UnitPrice: 1000.0},
		{ProductID: 2, ProductName: "СРЕДНИЙ", CostPrice: 50.0, UnitPrice: 100.0},
		{ProductID: 3, ProductName: "БЮДЖЕТ", CostPrice: 10.0, UnitPrice: 99.99},
	}

	dimensions, err := processor.ProcessProductDimension(products, buildTime)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	expected := []string{models.PriceTierPremium, models.PriceTierMidRange, models.PriceTierBudget}
	for i, want := range expected {
		if dimensions[i].PriceTier != want {
			t.Errorf("товар %d: ожидался ценовой уровень %s, получено %s",
				dimensions[i].ProductID, want, dimensions[i].PriceTier)
		}
	}
}

func TestProcessProductDimensionZeroPrice(t *testing.T) {
	buildTime := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	processor := NewProductDimensionProcessor(utils.NewBuildLogger(false), testTiers())

	products := []models.StagingProduct{
		{ProductID: 7, ProductName: "БЕСПЛАТНЫЙ", CostPrice: 5.0, UnitPrice: 0},
	}

	// Нулевая цена - фатальная ошибка, а не молчаливое обнуление маржи
	_, err := processor.ProcessProductDimension(products, buildTime)
	if err == nil {
		t.Fatal("ожидалась арифметическая ошибка для нулевой цены")
	}

	var arithmeticErr *models.ArithmeticError
	if !errors.As(err, &arithmeticErr) {
		t.Fatalf("ожидалась ArithmeticError, получено %T", err)
	}
	if arithmeticErr.Record != "7" {
		t.Errorf("ошибка должна указывать на товар 7, получено %q", arithmeticErr.Record)
	}
}
