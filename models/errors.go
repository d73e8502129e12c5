package models

import (
	"fmt"
)

// ValidationError означает, что в исходной записи отсутствует обязательное поле
// Пакет с такой записью отбрасывается целиком, зависимые узлы не выполняются
type ValidationError struct {
	Entity string
	Field  string
	Record string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ошибка валидации: сущность %s, запись %s: отсутствует обязательное поле %s",
		e.Entity, e.Record, e.Field)
}

// ArithmeticError означает недопустимую арифметическую операцию при расчёте показателей
// (например, деление на нулевую цену товара)
type ArithmeticError struct {
	Entity string
	Record string
	Reason string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("арифметическая ошибка: сущность %s, запись %s: %s",
		e.Entity, e.Record, e.Reason)
}

// AssertionFailure означает, что проверка качества результата узла не прошла
// Узел считается неуспешным, его зависимые узлы пропускаются
type AssertionFailure struct {
	Node       string
	Check      string
	FailedRows int
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("проверка качества не пройдена: узел %s, проверка %s, затронуто строк: %d",
		e.Node, e.Check, e.FailedRows)
}

// ReferentialGapWarning описывает неразрешённую ссылку на измерение при построении фактов
// Это предупреждение, а не ошибка: строка факта сохраняется с пустым ключом измерения
type ReferentialGapWarning struct {
	OrderID   int
	Dimension string
	NaturalID int
}

func (w ReferentialGapWarning) String() string {
	return fmt.Sprintf("заказ %d: не найдено измерение %s для натурального ключа %d",
		w.OrderID, w.Dimension, w.NaturalID)
}
