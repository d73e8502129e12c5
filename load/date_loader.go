package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// DateLoader отвечает за материализацию календарного измерения
type DateLoader struct {
	db     *sql.DB
	logger *utils.BuildLogger
}

// NewDateLoader создает новый экземпляр DateLoader
func NewDateLoader(db *sql.DB, logger *utils.BuildLogger) *DateLoader {
	return &DateLoader{
		db:     db,
		logger: logger,
	}
}

// Load материализует таблицу dim_dates
func (l *DateLoader) Load(dates []models.DateDimension) error {
	startTime := time.Now()
	l.logger.Info("Начало загрузки календарного измерения (всего: %d)", len(dates))

	table := &snapshotTable{db: l.db, logger: l.logger, name: "dim_dates", ddl: dimDatesDDL}
	count, err := table.replace(func(tx *sql.Tx, target string) (int, error) {
		stmt, err := tx.Prepare(`
			INSERT INTO ` + target + `
			(date_key, full_date, year, quarter, month, month_name, week_of_year,
			day_of_month, day_of_week, day_name, is_weekend, is_holiday)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		processed := 0
		for _, date := range dates {
			if _, err := stmt.Exec(
				date.DateKey,
				date.FullDate.Format("2006-01-02"),
				date.Year,
				date.Quarter,
				date.Month,
				date.MonthName,
				date.WeekOfYear,
				date.DayOfMonth,
				date.DayOfWeek,
				date.DayName,
				date.IsWeekend,
				date.IsHoliday,
			); err != nil {
				return processed, err
			}
			processed++

			// Логируем прогресс каждые 1000 дней
			if processed%1000 == 0 {
				l.logger.Debug("Загружено %d записей календарного измерения...", processed)
			}
		}
		return processed, nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("Календарное измерение загружено. Записей: %d. Длительность: %v", count, time.Since(startTime))
	return nil
}
