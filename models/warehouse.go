package models

import (
	"time"
)

// Классы стажа клиента в измерении клиентов
const (
	TenureNew         = "NEW"
	TenureRecent      = "RECENT"
	TenureEstablished = "ESTABLISHED"
)

// Уровни маржинальности товара
const (
	MarginTierHigh   = "HIGH"
	MarginTierMedium = "MEDIUM"
	MarginTierLow    = "LOW"
)

// Ценовые уровни товара
const (
	PriceTierPremium  = "PREMIUM"
	PriceTierMidRange = "MID-RANGE"
	PriceTierBudget   = "BUDGET"
)

// CustomerDimension представляет измерение клиентов в хранилище
type CustomerDimension struct {
	CustomerKey      string
	CustomerID       int
	FullName         string
	Email            string
	City             string
	State            string
	Country          string
	Segment          string
	RegistrationDate time.Time
	TenureClass      string // 'NEW', 'RECENT', 'ESTABLISHED'
	LastUpdated      time.Time
}

// ProductDimension представляет измерение товаров в хранилище
type ProductDimension struct {
	ProductKey      string
	ProductID       int
	ProductName     string
	Category        string
	Subcategory     string
	Brand           string
	Supplier        string
	CostPrice       float64
	UnitPrice       float64
	ProfitMarginPct float64
	MarginTier      string // 'HIGH', 'MEDIUM', 'LOW'
	PriceTier       string // 'PREMIUM', 'MID-RANGE', 'BUDGET'
	LastUpdated     time.Time
}

// DateDimension представляет календарное измерение в хранилище
// Суррогатный ключ имеет формат YYYYMMDD и зависит только от даты
type DateDimension struct {
	DateKey    int
	FullDate   time.Time
	Year       int
	Quarter    int
	Month      int
	MonthName  string
	WeekOfYear int
	DayOfMonth int
	DayOfWeek  int // 1=Sunday ... 7=Saturday
	DayName    string
	IsWeekend  bool
	IsHoliday  bool
}

// OrderFact представляет факт заказа в хранилище с гранулярностью (заказ, товар)
// CustomerKey и ProductKey могут быть nil, если измерение не разрешилось;
// DateKey всегда заполнен (точное совпадение или резервная дата-заглушка)
type OrderFact struct {
	FactKey         string
	OrderID         int
	CustomerKey     *string
	ProductKey      *string
	DateKey         int
	MissingDateFlag bool
	Quantity        int
	UnitPrice       float64
	Discount        float64
	Tax             float64
	GrossAmount     float64
	NetAmount       float64
	TotalAmount     float64
	CostAmount      float64
	ProfitAmount    float64
	MarginPct       float64
}

// MonthlyRevenueFact представляет строку аналитической витрины выручки по месяцам
// Проценты роста равны nil, когда предыдущий период отсутствует или его значение не положительно
type MonthlyRevenueFact struct {
	Year             int
	Month            int
	MonthName        string
	TotalOrders      int
	TotalCustomers   int
	TotalQuantity    int
	TotalRevenue     float64
	TotalProfit      float64
	AvgOrderValue    float64
	MarginPct        float64
	RevenueGrowthPct *float64
	ProfitGrowthPct  *float64
}
