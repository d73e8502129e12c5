package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLBuildRunRepository реализация BuildRunRepository для MySQL
type MySQLBuildRunRepository struct {
	db *sql.DB
}

// NewMySQLBuildRunRepository создает новый экземпляр MySQLBuildRunRepository
func NewMySQLBuildRunRepository(db *sql.DB) *MySQLBuildRunRepository {
	return &MySQLBuildRunRepository{
		db: db,
	}
}

// CreateBuildRunTable создает таблицу журнала запусков сборки, если она не существует
func (r *MySQLBuildRunRepository) CreateBuildRunTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS build_run_log (
		id INT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		customers_loaded INT DEFAULT 0,
		products_loaded INT DEFAULT 0,
		facts_loaded INT DEFAULT 0,
		missing_date_rows INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы build_run_log: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске сборки
func (r *MySQLBuildRunRepository) CreateLogEntry(runID string, startTime time.Time) (int, error) {
	query := `
	INSERT INTO build_run_log (run_id, start_time, status)
	VALUES (?, ?, 'in_progress')
	`

	result, err := r.db.Exec(query, runID, startTime)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске сборки: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении сборки
func (r *MySQLBuildRunRepository) UpdateLogEntrySuccess(
	id int,
	endTime time.Time,
	customersLoaded,
	productsLoaded,
	factsLoaded,
	missingDateRows int) error {

	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM build_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала сборки: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE build_run_log
	SET
		end_time = ?,
		status = 'success',
		customers_loaded = ?,
		products_loaded = ?,
		facts_loaded = ?,
		missing_date_rows = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(
		query,
		endTime,
		customersLoaded,
		productsLoaded,
		factsLoaded,
		missingDateRows,
		executionTime,
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске сборки: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении сборки
func (r *MySQLBuildRunRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM build_run_log WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала сборки: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE build_run_log
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о неудачном запуске: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске сборки
func (r *MySQLBuildRunRepository) GetLastSuccessfulRun() (*BuildRunLog, error) {
	query := `
	SELECT id, run_id, start_time, end_time, status,
		customers_loaded, products_loaded, facts_loaded, missing_date_rows,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM build_run_log
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var runLog BuildRunLog
	err := r.db.QueryRow(query).Scan(
		&runLog.ID,
		&runLog.RunID,
		&runLog.StartTime,
		&runLog.EndTime,
		&runLog.Status,
		&runLog.CustomersLoaded,
		&runLog.ProductsLoaded,
		&runLog.FactsLoaded,
		&runLog.MissingDateRows,
		&runLog.ErrorMessage,
		&runLog.ExecutionTimeSeconds,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// Успешных запусков еще не было
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении последнего успешного запуска: %w", err)
	}

	return &runLog, nil
}

// GetRunStats получает статистику запусков сборки за указанное число дней
func (r *MySQLBuildRunRepository) GetRunStats(days int) ([]BuildRunLog, error) {
	query := `
	SELECT id, run_id, start_time, IFNULL(end_time, start_time), status,
		customers_loaded, products_loaded, facts_loaded, missing_date_rows,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM build_run_log
	WHERE start_time > DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY start_time DESC
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков: %w", err)
	}
	defer rows.Close()

	var stats []BuildRunLog
	for rows.Next() {
		var runLog BuildRunLog
		if err := rows.Scan(
			&runLog.ID,
			&runLog.RunID,
			&runLog.StartTime,
			&runLog.EndTime,
			&runLog.Status,
			&runLog.CustomersLoaded,
			&runLog.ProductsLoaded,
			&runLog.FactsLoaded,
			&runLog.MissingDateRows,
			&runLog.ErrorMessage,
			&runLog.ExecutionTimeSeconds,
		); err != nil {
			return nil, fmt.Errorf("ошибка при обработке записи журнала запусков: %w", err)
		}
		stats = append(stats, runLog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по журналу запусков: %w", err)
	}

	return stats, nil
}
