package config

import (
	"testing"
)

func TestGetConfigDefaults(t *testing.T) {
	cfg, err := GetConfig()
	if err != nil {
		t.Fatalf("ошибка конфигурации: %v", err)
	}

	if cfg.Tiers.HighMarginPct != 50.0 || cfg.Tiers.MediumMarginPct != 25.0 {
		t.Errorf("неверные пороги маржи по умолчанию: %+v", cfg.Tiers)
	}
	if cfg.Tenure.NewDays != 90 || cfg.Tenure.RecentDays != 365 {
		t.Errorf("неверные пороги стажа по умолчанию: %+v", cfg.Tenure)
	}
	if cfg.WorkerPoolSize < 1 {
		t.Errorf("размер пула воркеров должен быть положительным: %d", cfg.WorkerPoolSize)
	}
	if len(cfg.TerminalStatuses) == 0 {
		t.Error("набор терминальных статусов не должен быть пустым")
	}
}

func TestGetConfigIgnoresAmbientShellVariables(t *testing.T) {
	// Переменные оболочки без префикса не должны подменять реквизиты
	// подключения: USER и HOST присутствуют почти в любом окружении
	t.Setenv("USER", "shelluser")
	t.Setenv("HOST", "laptop.local")
	t.Setenv("PASSWORD", "shellpass")
	t.Setenv("NAME", "shelldb")
	t.Setenv("PORT", "9999")

	cfg, err := GetConfig()
	if err != nil {
		t.Fatalf("ошибка конфигурации: %v", err)
	}

	if cfg.SourceDB.User != DefaultSourceConfig.User {
		t.Errorf("переменная USER не должна подменять пользователя источника, получено %q", cfg.SourceDB.User)
	}
	if cfg.SourceDB.Host != DefaultSourceConfig.Host {
		t.Errorf("переменная HOST не должна подменять хост источника, получено %q", cfg.SourceDB.Host)
	}
	if cfg.SourceDB.Port != DefaultSourceConfig.Port {
		t.Errorf("переменная PORT не должна подменять порт источника, получено %d", cfg.SourceDB.Port)
	}
	if cfg.WarehouseDB.User != DefaultWarehouseConfig.User {
		t.Errorf("переменная USER не должна подменять пользователя хранилища, получено %q", cfg.WarehouseDB.User)
	}
	if cfg.WarehouseDB.DBName != DefaultWarehouseConfig.DBName {
		t.Errorf("переменная NAME не должна подменять имя базы хранилища, получено %q", cfg.WarehouseDB.DBName)
	}
}

func TestGetConfigEnvOverride(t *testing.T) {
	t.Setenv("WORKER_POOL_SIZE", "8")
	t.Setenv("SOURCE_DB_NAME", "test_source")
	t.Setenv("WAREHOUSE_DB_USER", "etl_writer")
	t.Setenv("HOLIDAYS", "2024-01-01,2024-05-09")

	cfg, err := GetConfig()
	if err != nil {
		t.Fatalf("ошибка конфигурации: %v", err)
	}

	if cfg.WorkerPoolSize != 8 {
		t.Errorf("переменная окружения должна переопределять пул воркеров, получено %d", cfg.WorkerPoolSize)
	}
	if cfg.SourceDB.DBName != "test_source" {
		t.Errorf("префикс SOURCE_DB_ должен переопределять имя базы, получено %q", cfg.SourceDB.DBName)
	}
	if cfg.WarehouseDB.User != "etl_writer" {
		t.Errorf("префикс WAREHOUSE_DB_ должен переопределять пользователя, получено %q", cfg.WarehouseDB.User)
	}
	if cfg.SourceDB.User != DefaultSourceConfig.User {
		t.Errorf("переопределение хранилища не должно затрагивать источник, получено %q", cfg.SourceDB.User)
	}
	if len(cfg.Holidays) != 2 {
		t.Errorf("список праздников должен разбираться по запятой, получено %v", cfg.Holidays)
	}
}

func TestCalendarRangeValidation(t *testing.T) {
	cfg := DefaultConfig
	cfg.CalendarStart = "2024-01-01"
	cfg.CalendarEnd = "2023-01-01"

	if _, _, err := cfg.CalendarRange(); err == nil {
		t.Error("конечная дата раньше начальной должна отвергаться")
	}

	cfg.CalendarEnd = "не дата"
	if _, _, err := cfg.CalendarRange(); err == nil {
		t.Error("нечитаемая дата должна отвергаться")
	}
}

func TestHolidaySetValidation(t *testing.T) {
	cfg := DefaultConfig
	cfg.Holidays = []string{"2024-05-09", "09.05.2024"}

	if _, err := cfg.HolidaySet(); err == nil {
		t.Error("праздник в неверном формате должен отвергаться")
	}
}
