package staging

import (
	"fmt"

	"github.com/google/uuid"
)

// Фиксированные пространства имен для суррогатных ключей
// Менять их нельзя: ключи должны быть стабильны между пересборками
var (
	customerNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	productNamespace  = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	orderNamespace    = uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
)

// CustomerKey вычисляет суррогатный ключ клиента из натурального ключа
func CustomerKey(customerID int) string {
	return uuid.NewSHA1(customerNamespace, []byte(fmt.Sprintf("customer:%d", customerID))).String()
}

// ProductKey вычисляет суррогатный ключ товара из натурального ключа
func ProductKey(productID int) string {
	return uuid.NewSHA1(productNamespace, []byte(fmt.Sprintf("product:%d", productID))).String()
}

// OrderLineKey вычисляет суррогатный ключ строки заказа
// Гранулярность фактов - (заказ, товар), поэтому ключ составной
func OrderLineKey(orderID, productID int) string {
	return uuid.NewSHA1(orderNamespace, []byte(fmt.Sprintf("order:%d:product:%d", orderID, productID))).String()
}

// DateKey вычисляет суррогатный ключ календарной даты в формате YYYYMMDD
// Ключ зависит только от самой даты
func DateKey(year, month, day int) int {
	return year*10000 + month*100 + day
}
