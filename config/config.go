package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver" env:"DRIVER"`
	Host     string `json:"host" env:"HOST"`
	Port     int    `json:"port" env:"PORT"`
	User     string `json:"user" env:"USER"`
	Password string `json:"password" env:"PASSWORD"`
	DBName   string `json:"dbname" env:"NAME"`
}

// TierThresholds содержит пороговые значения для классификации товаров
type TierThresholds struct {
	HighMarginPct   float64 `json:"high_margin_pct" env:"TIER_HIGH_MARGIN_PCT"`
	MediumMarginPct float64 `json:"medium_margin_pct" env:"TIER_MEDIUM_MARGIN_PCT"`
	PremiumPrice    float64 `json:"premium_price" env:"TIER_PREMIUM_PRICE"`
	MidRangePrice   float64 `json:"mid_range_price" env:"TIER_MID_RANGE_PRICE"`
}

// TenureThresholds содержит пороговые значения стажа клиента (в днях)
type TenureThresholds struct {
	NewDays    int `json:"new_days" env:"TENURE_NEW_DAYS"`
	RecentDays int `json:"recent_days" env:"TENURE_RECENT_DAYS"`
}

// WarehouseConfig содержит конфигурацию процесса сборки хранилища
// Все бизнес-пороги задаются извне; значения по умолчанию документированы ниже
type WarehouseConfig struct {
	// Конфигурация подключения к транзакционной БД (источник)
	SourceDB DatabaseConfig `json:"source_db" envPrefix:"SOURCE_DB_"`

	// Конфигурация подключения к БД хранилища (целевая)
	WarehouseDB DatabaseConfig `json:"warehouse_db" envPrefix:"WAREHOUSE_DB_"`

	// Границы календарного измерения в формате YYYY-MM-DD
	CalendarStart string `json:"calendar_start" env:"CALENDAR_START"`
	CalendarEnd   string `json:"calendar_end" env:"CALENDAR_END"`

	// Праздничные даты в формате YYYY-MM-DD
	Holidays []string `json:"holidays" env:"HOLIDAYS" envSeparator:","`

	// Терминальные статусы заказов, попадающие в staging-слой
	TerminalStatuses []string `json:"terminal_statuses" env:"TERMINAL_STATUSES" envSeparator:","`

	// Пороговые значения классификации товаров
	Tiers TierThresholds `json:"tiers"`

	// Пороговые значения стажа клиентов
	Tenure TenureThresholds `json:"tenure"`

	// Размер пула воркеров для параллельных узлов графа сборки
	WorkerPoolSize int `json:"worker_pool_size" env:"WORKER_POOL_SIZE"`

	// Интервал запуска сборки в режиме scheduled
	RunInterval time.Duration `json:"run_interval" env:"RUN_INTERVAL"`

	// Максимальное количество записей, извлекаемых за один запуск
	BatchSize int `json:"batch_size" env:"BATCH_SIZE"`

	// Каталог для архивов отчетов о качестве сборки
	ReportArchiveDir string `json:"report_archive_dir" env:"REPORT_ARCHIVE_DIR"`

	// Адрес HTTP-сервера в режиме serve
	HTTPAddr string `json:"http_addr" env:"HTTP_ADDR"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging" env:"DETAILED_LOGGING"`
}

// Значения конфигурации по умолчанию
var (
	DefaultSourceConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "shopdb",
	}

	DefaultWarehouseConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "shop_analytics",
	}

	DefaultConfig = WarehouseConfig{
		SourceDB:              DefaultSourceConfig,
		WarehouseDB:           DefaultWarehouseConfig,
		CalendarStart:         "2020-01-01",
		CalendarEnd:           "2030-12-31",
		TerminalStatuses:      []string{"COMPLETED", "DELIVERED", "SHIPPED"},
		WorkerPoolSize:        4,
		RunInterval:           1 * time.Hour,
		BatchSize:             50000,
		ReportArchiveDir:      "reports",
		HTTPAddr:              ":8080",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию сборки хранилища
// Значения по умолчанию могут быть переопределены переменными окружения
func GetConfig() (WarehouseConfig, error) {
	config := DefaultConfig

	// Пороговые значения классификации товаров:
	// маржа >= 50% - HIGH, >= 25% - MEDIUM, иначе LOW;
	// цена >= 1000 - PREMIUM, >= 100 - MID-RANGE, иначе BUDGET
	config.Tiers.HighMarginPct = 50.0
	config.Tiers.MediumMarginPct = 25.0
	config.Tiers.PremiumPrice = 1000.0
	config.Tiers.MidRangePrice = 100.0

	// Пороговые значения стажа клиента:
	// < 90 дней - NEW, < 365 дней - RECENT, иначе ESTABLISHED
	config.Tenure.NewDays = 90
	config.Tenure.RecentDays = 365

	// Переопределяем значения из переменных окружения
	// Настройки подключений читаются только с префиксами SOURCE_DB_ и
	// WAREHOUSE_DB_, чтобы переменные оболочки вроде USER или HOST
	// не подменяли реквизиты подключения
	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("ошибка при разборе переменных окружения: %w", err)
	}

	return config, nil
}

// CalendarRange возвращает границы календарного измерения как даты
func (c WarehouseConfig) CalendarRange() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.CalendarStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("некорректная начальная дата календаря %q: %w", c.CalendarStart, err)
	}

	end, err := time.Parse("2006-01-02", c.CalendarEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("некорректная конечная дата календаря %q: %w", c.CalendarEnd, err)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("конечная дата календаря %s раньше начальной %s", c.CalendarEnd, c.CalendarStart)
	}

	return start, end, nil
}

// HolidaySet возвращает множество праздничных дат
func (c WarehouseConfig) HolidaySet() (map[string]bool, error) {
	holidays := make(map[string]bool, len(c.Holidays))
	for _, h := range c.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return nil, fmt.Errorf("некорректная праздничная дата %q: %w", h, err)
		}
		holidays[h] = true
	}
	return holidays, nil
}

// StatusSet возвращает множество терминальных статусов заказов
func (c WarehouseConfig) StatusSet() map[string]bool {
	statuses := make(map[string]bool, len(c.TerminalStatuses))
	for _, s := range c.TerminalStatuses {
		statuses[s] = true
	}
	return statuses
}
