package transform

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

func TestProcessDateDimensionRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	processor := NewDateDimensionProcessor(utils.NewBuildLogger(false), start, end, nil)

	dates := processor.ProcessDateDimension()

	// 31 день января плюс дата-заглушка
	if len(dates) != 32 {
		t.Fatalf("ожидалось 32 записи, получено %d", len(dates))
	}

	// Первой записью всегда идет заглушка
	if dates[0].DateKey != SentinelDateKey() {
		t.Errorf("первой записью должна быть заглушка, получен ключ %d", dates[0].DateKey)
	}

	// Заглушка встречается ровно один раз
	sentinels := 0
	for _, date := range dates {
		if date.DateKey == SentinelDateKey() {
			sentinels++
		}
	}
	if sentinels != 1 {
		t.Errorf("заглушка должна встречаться ровно один раз, найдено %d", sentinels)
	}
}

func TestProcessDateDimensionAttributes(t *testing.T) {
	// 9 мая 2024 - четверг, вторая четверть, 19-я неделя по ISO 8601
	day := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	holidays := map[string]bool{"2024-05-09": true}
	processor := NewDateDimensionProcessor(utils.NewBuildLogger(false), day, day, holidays)

	dates := processor.ProcessDateDimension()
	if len(dates) != 2 {
		t.Fatalf("ожидались заглушка и один день, получено %d записей", len(dates))
	}

	want := models.DateDimension{
		DateKey:    20240509,
		FullDate:   day,
		Year:       2024,
		Quarter:    2,
		Month:      5,
		MonthName:  "May",
		WeekOfYear: 19,
		DayOfMonth: 9,
		DayOfWeek:  5, // 1=воскресенье, значит четверг - 5
		DayName:    "Thursday",
		IsWeekend:  false,
		IsHoliday:  true,
	}

	if diff := cmp.Diff(want, dates[1]); diff != "" {
		t.Errorf("атрибуты календарной записи расходятся (-want +got):\n%s", diff)
	}
}

func TestProcessDateDimensionWeekend(t *testing.T) {
	// Суббота и воскресенье должны помечаться как выходные
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC) // пятница
	end := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)   // воскресенье
	processor := NewDateDimensionProcessor(utils.NewBuildLogger(false), start, end, nil)

	dates := processor.ProcessDateDimension()

	weekends := map[int]bool{}
	for _, date := range dates {
		if date.IsWeekend {
			weekends[date.DateKey] = true
		}
	}

	if weekends[20240510] {
		t.Error("пятница не должна быть выходным")
	}
	if !weekends[20240511] || !weekends[20240512] {
		t.Error("суббота и воскресенье должны быть выходными")
	}
}

func TestProcessDateDimensionDeterministic(t *testing.T) {
	start := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	holidays := map[string]bool{"2024-01-01": true}

	first := NewDateDimensionProcessor(utils.NewBuildLogger(false), start, end, holidays).ProcessDateDimension()
	second := NewDateDimensionProcessor(utils.NewBuildLogger(false), start, end, holidays).ProcessDateDimension()

	// Календарь не зависит от момента запуска сборки
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("повторная сборка календаря должна давать идентичный результат:\n%s", diff)
	}
}
