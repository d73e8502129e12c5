package models

import (
	"database/sql"
	"time"
)

// CustomerSource представляет клиента в исходной транзакционной базе данных
type CustomerSource struct {
	CustomerID       int
	FirstName        string
	LastName         string
	Email            string
	City             string
	State            string
	Country          string
	Segment          string
	RegistrationDate time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductSource представляет товар в исходной транзакционной базе данных
type ProductSource struct {
	ProductID   int
	ProductName string
	Category    string
	Subcategory string
	Brand       string
	Supplier    string
	CostPrice   float64
	UnitPrice   float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderSource представляет строку заказа в исходной транзакционной базе данных
// Поля Discount и Tax могут быть NULL в источнике
type OrderSource struct {
	OrderID     int
	CustomerID  int
	ProductID   int
	Quantity    int
	UnitPrice   float64
	Discount    sql.NullFloat64
	Tax         sql.NullFloat64
	TotalAmount float64
	Status      string
	OrderDate   time.Time
	CreatedAt   time.Time
}

// ExtractedData содержит данные, извлечённые из транзакционной базы
type ExtractedData struct {
	Customers   []CustomerSource
	Products    []ProductSource
	Orders      []OrderSource
	ExtractedAt time.Time
}
