package models

import (
	"time"
)

// StagingCustomer представляет нормализованную запись клиента в staging-слое
// Суррогатный ключ детерминированно вычисляется из натурального ключа (customer_id)
type StagingCustomer struct {
	CustomerKey      string
	CustomerID       int
	FullName         string
	Email            string
	City             string
	State            string
	Country          string
	Segment          string
	RegistrationDate time.Time
}

// StagingProduct представляет нормализованную запись товара в staging-слое
type StagingProduct struct {
	ProductKey  string
	ProductID   int
	ProductName string
	Category    string
	Subcategory string
	Brand       string
	Supplier    string
	CostPrice   float64
	UnitPrice   float64
}

// StagingOrder представляет нормализованную строку заказа в staging-слое
// Остаются только заказы в терминальных статусах; Discount и Tax приведены к нулю при NULL
type StagingOrder struct {
	OrderKey    string
	OrderID     int
	CustomerID  int
	ProductID   int
	Quantity    int
	UnitPrice   float64
	Discount    float64
	Tax         float64
	TotalAmount float64
	Status      string
	OrderDate   time.Time
}
