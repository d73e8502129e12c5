package staging

import (
	"sort"
	"strconv"
	"strings"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// Normalizer отвечает за нормализацию исходных записей в staging-слой
// Для каждой сущности применяются: нормализация текстовых полей,
// приведение NULL-значений к нулям, предикат включения и дедупликация
// по суррогатному ключу
type Normalizer struct {
	logger           *utils.BuildLogger
	terminalStatuses map[string]bool
}

// NewNormalizer создает новый экземпляр Normalizer
func NewNormalizer(logger *utils.BuildLogger, terminalStatuses map[string]bool) *Normalizer {
	return &Normalizer{
		logger:           logger,
		terminalStatuses: terminalStatuses,
	}
}

// NormalizeCustomers нормализует записи клиентов
// Политика нормализации: имена в верхнем регистре, email в нижнем;
// включаются только активные клиенты
func (n *Normalizer) NormalizeCustomers(customers []models.CustomerSource) ([]models.StagingCustomer, error) {
	n.logger.Debug("Нормализация записей клиентов (всего: %d)", len(customers))

	staged := make([]models.StagingCustomer, 0, len(customers))
	seen := make(map[string]bool)

	for _, customer := range customers {
		// Проверяем обязательные поля: весь пакет отбрасывается при нарушении
		if customer.CustomerID <= 0 {
			return nil, &models.ValidationError{Entity: "customers", Field: "customer_id", Record: strconv.Itoa(customer.CustomerID)}
		}

		firstName := strings.TrimSpace(customer.FirstName)
		lastName := strings.TrimSpace(customer.LastName)
		if firstName == "" {
			return nil, &models.ValidationError{Entity: "customers", Field: "first_name", Record: strconv.Itoa(customer.CustomerID)}
		}
		if lastName == "" {
			return nil, &models.ValidationError{Entity: "customers", Field: "last_name", Record: strconv.Itoa(customer.CustomerID)}
		}
		if customer.RegistrationDate.IsZero() {
			return nil, &models.ValidationError{Entity: "customers", Field: "registration_date", Record: strconv.Itoa(customer.CustomerID)}
		}

		// Предикат включения: только активные клиенты
		if !customer.IsActive {
			n.logger.Debug("Клиент %d неактивен и исключен из staging-слоя", customer.CustomerID)
			continue
		}

		// Дедупликация по суррогатному ключу: первая запись побеждает
		key := CustomerKey(customer.CustomerID)
		if seen[key] {
			n.logger.Debug("Дубликат клиента %d пропущен", customer.CustomerID)
			continue
		}
		seen[key] = true

		staged = append(staged, models.StagingCustomer{
			CustomerKey:      key,
			CustomerID:       customer.CustomerID,
			FullName:         strings.ToUpper(firstName + " " + lastName),
			Email:            strings.ToLower(strings.TrimSpace(customer.Email)),
			City:             strings.TrimSpace(customer.City),
			State:            strings.TrimSpace(customer.State),
			Country:          strings.TrimSpace(customer.Country),
			Segment:          strings.ToUpper(strings.TrimSpace(customer.Segment)),
			RegistrationDate: customer.RegistrationDate,
		})
	}

	// Сортируем по натуральному ключу для воспроизводимости пересборок
	sort.Slice(staged, func(i, j int) bool {
		return staged[i].CustomerID < staged[j].CustomerID
	})

	n.logger.Info("Нормализовано клиентов: %d из %d", len(staged), len(customers))
	return staged, nil
}

// NormalizeProducts нормализует записи товаров
// Включаются только активные товары
func (n *Normalizer) NormalizeProducts(products []models.ProductSource) ([]models.StagingProduct, error) {
	n.logger.Debug("Нормализация записей товаров (всего: %d)", len(products))

	staged := make([]models.StagingProduct, 0, len(products))
	seen := make(map[string]bool)

	for _, product := range products {
		// Проверяем обязательные поля
		if product.ProductID <= 0 {
			return nil, &models.ValidationError{Entity: "products", Field: "product_id", Record: strconv.Itoa(product.ProductID)}
		}

		name := strings.TrimSpace(product.ProductName)
		if name == "" {
			return nil, &models.ValidationError{Entity: "products", Field: "product_name", Record: strconv.Itoa(product.ProductID)}
		}

		// Предикат включения: только активные товары
		if !product.IsActive {
			n.logger.Debug("Товар %d неактивен и исключен из staging-слоя", product.ProductID)
			continue
		}

		// Дедупликация по суррогатному ключу
		key := ProductKey(product.ProductID)
		if seen[key] {
			n.logger.Debug("Дубликат товара %d пропущен", product.ProductID)
			continue
		}
		seen[key] = true

		staged = append(staged, models.StagingProduct{
			ProductKey:  key,
			ProductID:   product.ProductID,
			ProductName: strings.ToUpper(name),
			Category:    strings.ToUpper(strings.TrimSpace(product.Category)),
			Subcategory: strings.ToUpper(strings.TrimSpace(product.Subcategory)),
			Brand:       strings.TrimSpace(product.Brand),
			Supplier:    strings.TrimSpace(product.Supplier),
			CostPrice:   product.CostPrice,
			UnitPrice:   product.UnitPrice,
		})
	}

	sort.Slice(staged, func(i, j int) bool {
		return staged[i].ProductID < staged[j].ProductID
	})

	n.logger.Info("Нормализовано товаров: %d из %d", len(staged), len(products))
	return staged, nil
}

// NormalizeOrders нормализует строки заказов
// NULL-значения скидки и налога приводятся к нулю; включаются только заказы
// в терминальных статусах
func (n *Normalizer) NormalizeOrders(orders []models.OrderSource) ([]models.StagingOrder, error) {
	n.logger.Debug("Нормализация строк заказов (всего: %d)", len(orders))

	staged := make([]models.StagingOrder, 0, len(orders))
	seen := make(map[string]bool)

	for _, order := range orders {
		// Проверяем обязательные поля
		if order.OrderID <= 0 {
			return nil, &models.ValidationError{Entity: "orders", Field: "order_id", Record: strconv.Itoa(order.OrderID)}
		}
		if order.CustomerID <= 0 {
			return nil, &models.ValidationError{Entity: "orders", Field: "customer_id", Record: strconv.Itoa(order.OrderID)}
		}
		if order.ProductID <= 0 {
			return nil, &models.ValidationError{Entity: "orders", Field: "product_id", Record: strconv.Itoa(order.OrderID)}
		}
		if order.OrderDate.IsZero() {
			return nil, &models.ValidationError{Entity: "orders", Field: "order_date", Record: strconv.Itoa(order.OrderID)}
		}

		status := strings.ToUpper(strings.TrimSpace(order.Status))
		if status == "" {
			return nil, &models.ValidationError{Entity: "orders", Field: "status", Record: strconv.Itoa(order.OrderID)}
		}

		// Предикат включения: только терминальные статусы
		if !n.terminalStatuses[status] {
			n.logger.Debug("Заказ %d в статусе %s исключен из staging-слоя", order.OrderID, status)
			continue
		}

		// Дедупликация по суррогатному ключу строки заказа
		key := OrderLineKey(order.OrderID, order.ProductID)
		if seen[key] {
			n.logger.Debug("Дубликат строки заказа %d/%d пропущен", order.OrderID, order.ProductID)
			continue
		}
		seen[key] = true

		// Приводим NULL-значения скидки и налога к нулю
		var discount, tax float64
		if order.Discount.Valid {
			discount = order.Discount.Float64
		}
		if order.Tax.Valid {
			tax = order.Tax.Float64
		}

		staged = append(staged, models.StagingOrder{
			OrderKey:    key,
			OrderID:     order.OrderID,
			CustomerID:  order.CustomerID,
			ProductID:   order.ProductID,
			Quantity:    order.Quantity,
			UnitPrice:   order.UnitPrice,
			Discount:    discount,
			Tax:         tax,
			TotalAmount: order.TotalAmount,
			Status:      status,
			OrderDate:   order.OrderDate,
		})
	}

	sort.Slice(staged, func(i, j int) bool {
		if staged[i].OrderID != staged[j].OrderID {
			return staged[i].OrderID < staged[j].OrderID
		}
		return staged[i].ProductID < staged[j].ProductID
	})

	n.logger.Info("Нормализовано строк заказов: %d из %d", len(staged), len(orders))
	return staged, nil
}
