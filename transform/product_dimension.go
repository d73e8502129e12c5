package transform

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/LilVoxy/coursework_warehouse/config"
	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// round2 округляет значение до двух знаков после запятой
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// ProductDimensionProcessor отвечает за построение измерения товаров
type ProductDimensionProcessor struct {
	logger *utils.BuildLogger
	tiers  config.TierThresholds
}

// NewProductDimensionProcessor создает новый экземпляр ProductDimensionProcessor
func NewProductDimensionProcessor(logger *utils.BuildLogger, tiers config.TierThresholds) *ProductDimensionProcessor {
	return &ProductDimensionProcessor{
		logger: logger,
		tiers:  tiers,
	}
}

// ProcessProductDimension строит измерение товаров из staging-записей
// Нулевая цена товара - фатальная ошибка: маржа с делением на ноль
// не обнуляется молча
func (p *ProductDimensionProcessor) ProcessProductDimension(products []models.StagingProduct, buildTime time.Time) ([]models.ProductDimension, error) {
	p.logger.Debug("Построение измерения товаров...")

	dimensions := make([]models.ProductDimension, 0, len(products))

	for _, product := range products {
		// Деление на нулевую цену недопустимо
		if product.UnitPrice == 0 {
			p.logger.Error("Товар %d имеет нулевую цену, расчет маржи невозможен", product.ProductID)
			return nil, &models.ArithmeticError{
				Entity: "products",
				Record: strconv.Itoa(product.ProductID),
				Reason: "нулевая цена товара при расчете маржи",
			}
		}

		// Маржа в процентах от цены продажи
		marginPct := round2((product.UnitPrice - product.CostPrice) / product.UnitPrice * 100)

		// Уровень маржинальности: HIGH >= 50, MEDIUM >= 25, иначе LOW
		var marginTier string
		switch {
		case marginPct >= p.tiers.HighMarginPct:
			marginTier = models.MarginTierHigh
		case marginPct >= p.tiers.MediumMarginPct:
			marginTier = models.MarginTierMedium
		default:
			marginTier = models.MarginTierLow
		}

		// Ценовой уровень: PREMIUM >= 1000, MID-RANGE >= 100, иначе BUDGET
		var priceTier string
		switch {
		case product.UnitPrice >= p.tiers.PremiumPrice:
			priceTier = models.PriceTierPremium
		case product.UnitPrice >= p.tiers.MidRangePrice:
			priceTier = models.PriceTierMidRange
		default:
			priceTier = models.PriceTierBudget
		}

		dimensions = append(dimensions, models.ProductDimension{
			ProductKey:      product.ProductKey,
			ProductID:       product.ProductID,
			ProductName:     product.ProductName,
			Category:        product.Category,
			Subcategory:     product.Subcategory,
			Brand:           product.Brand,
			Supplier:        product.Supplier,
			CostPrice:       product.CostPrice,
			UnitPrice:       product.UnitPrice,
			ProfitMarginPct: marginPct,
			MarginTier:      marginTier,
			PriceTier:       priceTier,
			LastUpdated:     buildTime,
		})
	}

	sort.Slice(dimensions, func(i, j int) bool {
		return dimensions[i].ProductID < dimensions[j].ProductID
	})

	p.logger.Info("Построено измерение товаров. Записей: %d", len(dimensions))
	return dimensions, nil
}
