// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_warehouse/config"
	"github.com/LilVoxy/coursework_warehouse/extractors"
	"github.com/LilVoxy/coursework_warehouse/load"
	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/monitor"
	"github.com/LilVoxy/coursework_warehouse/orchestrator"
	"github.com/LilVoxy/coursework_warehouse/report"
	"github.com/LilVoxy/coursework_warehouse/routes"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// WarehouseRunner связывает все компоненты сборки хранилища
type WarehouseRunner struct {
	config        config.WarehouseConfig
	dbConnections *config.DBConnections
	logger        *utils.BuildLogger
	orchestrator  *orchestrator.Orchestrator
	runRepo       models.BuildRunRepository
	archiver      *report.Archiver
	hub           *monitor.Hub
}

// NewWarehouseRunner создает новый экземпляр WarehouseRunner
func NewWarehouseRunner() (*WarehouseRunner, error) {
	// Получаем конфигурацию
	warehouseConfig, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	// Инициализируем логгер
	logger := utils.NewBuildLogger(warehouseConfig.EnableDetailedLogging)
	logger.Info("Инициализация Warehouse Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(warehouseConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем репозиторий журнала запусков
	runRepo := models.NewMySQLBuildRunRepository(connections.WarehouseDB)

	// Создаем таблицу журнала, если она еще не существует
	if err := runRepo.CreateBuildRunTable(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблицы журнала запусков: %w", err)
	}

	// Создаем экстрактор
	extractor := extractors.NewExtractor(connections.SourceDB, logger, warehouseConfig.BatchSize)

	// Создаем загрузчик хранилища
	loader := load.NewWarehouseLoader(connections.WarehouseDB, logger)

	// Создаем архив отчетов и мониторинг
	archiver := report.NewArchiver(warehouseConfig.ReportArchiveDir, logger)
	hub := monitor.NewHub(logger)

	// Создаем оркестратор сборки
	orch := orchestrator.NewOrchestrator(warehouseConfig, logger, extractor, loader)
	orch.RunRepo = runRepo
	orch.Publisher = hub
	orch.Archiver = archiver

	return &WarehouseRunner{
		config:        warehouseConfig,
		dbConnections: connections,
		logger:        logger,
		orchestrator:  orch,
		runRepo:       runRepo,
		archiver:      archiver,
		hub:           hub,
	}, nil
}

// Close закрывает соединения с базами данных
func (r *WarehouseRunner) Close() {
	r.logger.Info("Завершение работы Warehouse Runner")
	config.CloseDatabases(r.dbConnections)
}

// ExecuteBuild выполняет один полный цикл сборки хранилища
func (r *WarehouseRunner) ExecuteBuild(ctx context.Context) error {
	buildReport, err := r.orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("Сборка %s завершена за %.2f сек", buildReport.RunID, buildReport.DurationSeconds)
	return nil
}

// StartScheduler запускает планировщик для регулярной сборки хранилища
func (r *WarehouseRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика сборки с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск сборки хранилища")
		if err := r.ExecuteBuild(ctx); err != nil {
			r.logger.Error("Ошибка при выполнении запланированной сборки: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик сборки остановлен")
}

// StartServer запускает HTTP-сервер API хранилища вместе с планировщиком
func (r *WarehouseRunner) StartServer(ctx context.Context) {
	// Запускаем мониторинг сборки
	go r.hub.Run(ctx)

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	routes.SetupRoutes(router, r.dbConnections.WarehouseDB, r.runRepo, r.hub, r.archiver)

	server := &http.Server{
		Addr:         r.config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер API хранилища запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Планировщик работает параллельно с сервером
	go r.StartScheduler(ctx)

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка при остановке сервера: %v", err)
	}
	log.Println("👋 Сервер остановлен")
}

// RunOnce запускает сборку хранилища один раз
func RunOnce() {
	runner, err := NewWarehouseRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Warehouse Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteBuild(context.Background()); err != nil {
		log.Fatalf("Ошибка при выполнении сборки: %v", err)
	}
}

// RunScheduled запускает сборку хранилища по расписанию
func RunScheduled() {
	ctx, cancel := signalContext()
	defer cancel()

	runner, err := NewWarehouseRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Warehouse Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем планировщик
	runner.StartScheduler(ctx)
}

// RunServer запускает HTTP-сервер API хранилища вместе с планировщиком сборки
func RunServer() {
	ctx, cancel := signalContext()
	defer cancel()

	runner, err := NewWarehouseRunner()
	if err != nil {
		log.Fatalf("Ошибка при создании Warehouse Runner: %v", err)
	}
	defer runner.Close()

	runner.StartServer(ctx)
}

// signalContext возвращает контекст, отменяемый сигналом завершения
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем Warehouse Runner...")
		cancel()
	}()

	return ctx, cancel
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once, scheduled или serve")

	flag.Parse()

	log.Println("Запуск Warehouse Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce()
	case "scheduled":
		RunScheduled()
	case "serve":
		RunServer()
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, scheduled, serve")
		os.Exit(1)
	}

	log.Println("Warehouse Runner завершил работу")
}
