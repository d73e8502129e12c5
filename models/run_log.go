package models

import (
	"time"
)

// BuildRunLog представляет запись о запуске сборки хранилища
type BuildRunLog struct {
	ID                   int       `json:"id"`
	RunID                string    `json:"run_id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	CustomersLoaded      int       `json:"customers_loaded"`
	ProductsLoaded       int       `json:"products_loaded"`
	FactsLoaded          int       `json:"facts_loaded"`
	MissingDateRows      int       `json:"missing_date_rows"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// BuildRunRepository представляет репозиторий для работы с журналом запусков сборки
type BuildRunRepository interface {
	// CreateLogEntry создает новую запись о запуске сборки
	CreateLogEntry(runID string, startTime time.Time) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении сборки
	UpdateLogEntrySuccess(
		id int,
		endTime time.Time,
		customersLoaded,
		productsLoaded,
		factsLoaded,
		missingDateRows int) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении сборки
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске
	GetLastSuccessfulRun() (*BuildRunLog, error)

	// GetRunStats получает статистику запусков за указанное число дней
	GetRunStats(days int) ([]BuildRunLog, error)
}
