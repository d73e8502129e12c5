package transform

import (
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/staging"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// Резервная дата-заглушка для заказов, дата которых не попала в календарь
// Ключ 19000101 всегда присутствует в календарном измерении ровно один раз
var sentinelDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// SentinelDateKey возвращает суррогатный ключ резервной даты-заглушки
func SentinelDateKey() int {
	return staging.DateKey(1900, 1, 1)
}

// DateDimensionProcessor отвечает за построение календарного измерения
type DateDimensionProcessor struct {
	logger   *utils.BuildLogger
	start    time.Time
	end      time.Time
	holidays map[string]bool
}

// NewDateDimensionProcessor создает новый экземпляр DateDimensionProcessor
func NewDateDimensionProcessor(logger *utils.BuildLogger, start, end time.Time, holidays map[string]bool) *DateDimensionProcessor {
	return &DateDimensionProcessor{
		logger:   logger,
		start:    start,
		end:      end,
		holidays: holidays,
	}
}

// Массивы для названий месяцев и дней недели
var monthNames = []string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}
var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ProcessDateDimension строит календарное измерение: одна запись на каждый
// день диапазона [start, end] плюс запись-заглушка
// Номер недели определяется по ISO 8601; результат полностью детерминирован
// при фиксированных диапазоне и наборе праздников
func (p *DateDimensionProcessor) ProcessDateDimension() []models.DateDimension {
	p.logger.Debug("Построение календарного измерения с %s по %s",
		p.start.Format("2006-01-02"), p.end.Format("2006-01-02"))

	dates := make([]models.DateDimension, 0, int(p.end.Sub(p.start).Hours()/24)+2)

	// Первой записью всегда идет дата-заглушка
	dates = append(dates, p.buildRow(sentinelDate))

	// Итерируемся по всем дням в указанном диапазоне
	current := time.Date(p.start.Year(), p.start.Month(), p.start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.end.Year(), p.end.Month(), p.end.Day(), 0, 0, 0, 0, time.UTC)
	for !current.After(end) {
		// Диапазон не должен дублировать заглушку
		if !current.Equal(sentinelDate) {
			dates = append(dates, p.buildRow(current))
		}
		current = current.AddDate(0, 0, 1)
	}

	p.logger.Info("Построено календарное измерение. Записей: %d", len(dates))
	return dates
}

// buildRow строит одну запись календарного измерения
func (p *DateDimensionProcessor) buildRow(date time.Time) models.DateDimension {
	year := date.Year()
	month := int(date.Month())

	// Определяем квартал
	quarter := (month-1)/3 + 1

	// Номер недели в году по ISO 8601
	_, weekOfYear := date.ISOWeek()

	dayOfMonth := date.Day()
	dayOfWeek := int(date.Weekday()) + 1 // 1=Sunday, 7=Saturday
	dayName := dayNames[dayOfWeek-1]

	// Выходной день (суббота или воскресенье)
	isWeekend := dayOfWeek == 1 || dayOfWeek == 7

	// Праздничный день определяется по настраиваемому набору, а не вычисляется
	isHoliday := p.holidays[date.Format("2006-01-02")]

	return models.DateDimension{
		DateKey:    staging.DateKey(year, month, dayOfMonth),
		FullDate:   date,
		Year:       year,
		Quarter:    quarter,
		Month:      month,
		MonthName:  monthNames[month-1],
		WeekOfYear: weekOfYear,
		DayOfMonth: dayOfMonth,
		DayOfWeek:  dayOfWeek,
		DayName:    dayName,
		IsWeekend:  isWeekend,
		IsHoliday:  isHoliday,
	}
}
