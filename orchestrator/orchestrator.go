package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LilVoxy/coursework_warehouse/config"
	"github.com/LilVoxy/coursework_warehouse/load"
	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/staging"
	"github.com/LilVoxy/coursework_warehouse/transform"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// SourceExtractor предоставляет исходные записи для сборки хранилища
type SourceExtractor interface {
	Extract() (*models.ExtractedData, error)
}

// ProgressPublisher получает события о ходе сборки (например, для мониторинга)
type ProgressPublisher interface {
	PublishNodeStatus(runID string, report models.NodeReport)
	PublishRunStatus(report *models.BuildReport)
}

// ReportArchiver сохраняет отчет о качестве сборки в архив
type ReportArchiver interface {
	Archive(report *models.BuildReport) (string, error)
}

// Промежуточное состояние сборки, передаваемое между узлами графа
// Каждое поле записывается ровно одним узлом; синхронизацию обеспечивает
// граф зависимостей
type buildState struct {
	stagedCustomers []models.StagingCustomer
	stagedProducts  []models.StagingProduct
	stagedOrders    []models.StagingOrder
	customers       []models.CustomerDimension
	products        []models.ProductDimension
	dates           []models.DateDimension
	facts           []models.OrderFact
	marts           []models.MonthlyRevenueFact
	gaps            []models.ReferentialGapWarning
	missingDates    int
}

// Orchestrator координирует полный процесс сборки хранилища:
// извлечение, нормализацию, построение измерений и фактов, витрину,
// проверки качества и материализацию
type Orchestrator struct {
	config    config.WarehouseConfig
	logger    *utils.BuildLogger
	extractor SourceExtractor
	loader    load.Loader

	normalizer        *staging.Normalizer
	customerProcessor *transform.CustomerDimensionProcessor
	productProcessor  *transform.ProductDimensionProcessor
	factProcessor     *transform.OrderFactsProcessor
	revenueProcessor  *transform.MonthlyRevenueProcessor

	// Необязательные компоненты: журнал запусков, мониторинг, архив отчетов
	RunRepo   models.BuildRunRepository
	Publisher ProgressPublisher
	Archiver  ReportArchiver
}

// NewOrchestrator создает новый экземпляр Orchestrator
func NewOrchestrator(cfg config.WarehouseConfig, logger *utils.BuildLogger, extractor SourceExtractor, loader load.Loader) *Orchestrator {
	return &Orchestrator{
		config:            cfg,
		logger:            logger,
		extractor:         extractor,
		loader:            loader,
		normalizer:        staging.NewNormalizer(logger, cfg.StatusSet()),
		customerProcessor: transform.NewCustomerDimensionProcessor(logger, cfg.Tenure.NewDays, cfg.Tenure.RecentDays),
		productProcessor:  transform.NewProductDimensionProcessor(logger, cfg.Tiers),
		factProcessor:     transform.NewOrderFactsProcessor(logger),
		revenueProcessor:  transform.NewMonthlyRevenueProcessor(logger),
	}
}

// Run выполняет один полный цикл сборки хранилища
// Возвращаемый отчет заполняется и при неуспешной сборке: в нем указаны
// отказавший узел и нарушенная проверка
func (o *Orchestrator) Run(ctx context.Context) (*models.BuildReport, error) {
	buildTime := time.Now().UTC()
	runID := uuid.New().String()

	o.logger.LogBuildStart(runID)

	report := &models.BuildReport{
		RunID:     runID,
		StartTime: buildTime,
	}

	// Создаем запись в журнале запусков
	logEntryID := 0
	if o.RunRepo != nil {
		id, err := o.RunRepo.CreateLogEntry(runID, buildTime)
		if err != nil {
			o.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		} else {
			logEntryID = id
		}
	}

	// Разбираем конфигурацию календаря до запуска графа
	calendarStart, calendarEnd, err := o.config.CalendarRange()
	if err != nil {
		return o.finishFailure(report, logEntryID, "", fmt.Errorf("некорректная конфигурация календаря: %w", err))
	}

	holidays, err := o.config.HolidaySet()
	if err != nil {
		return o.finishFailure(report, logEntryID, "", fmt.Errorf("некорректный набор праздников: %w", err))
	}

	// Фаза Extract: граница Extract-Load, повторы выполняются только там
	extracted, err := o.extractor.Extract()
	if err != nil {
		return o.finishFailure(report, logEntryID, "", fmt.Errorf("ошибка в фазе Extract: %w", err))
	}

	// Выполняем граф сборки
	state := &buildState{}
	dateProcessor := transform.NewDateDimensionProcessor(o.logger, calendarStart, calendarEnd, holidays)
	nodes := o.buildNodes(extracted, state, dateProcessor, buildTime)

	runner := NewDAGRunner(o.logger, o.config.WorkerPoolSize)
	if o.Publisher != nil {
		runner.OnNodeComplete = func(nodeReport models.NodeReport) {
			o.Publisher.PublishNodeStatus(runID, nodeReport)
		}
	}

	nodeReports, err := runner.Execute(ctx, nodes)
	if err != nil {
		return o.finishFailure(report, logEntryID, "", fmt.Errorf("некорректный граф сборки: %w", err))
	}

	report.Nodes = nodeReports
	report.MissingDateRows = state.missingDates
	for _, gap := range state.gaps {
		report.ReferentialGaps = append(report.ReferentialGaps, gap.String())
	}

	// Подводим итог запуска
	failedNode := ""
	failedAssertions := 0
	for _, nodeReport := range nodeReports {
		if nodeReport.Status == models.NodeStatusFailed && failedNode == "" {
			failedNode = nodeReport.Node
		}
		for _, assertion := range nodeReport.Assertions {
			if !assertion.Passed {
				failedAssertions++
			}
		}
	}
	report.FailedAssertions = failedAssertions

	report.EndTime = time.Now().UTC()
	report.DurationSeconds = report.EndTime.Sub(report.StartTime).Seconds()

	if failedNode != "" {
		report.Status = models.NodeStatusFailed
		report.FailedNode = failedNode
		o.finalizeReport(report, logEntryID, state)
		return report, fmt.Errorf("сборка завершилась с ошибкой в узле %s", failedNode)
	}

	report.Status = models.NodeStatusSuccess
	o.finalizeReport(report, logEntryID, state)
	o.logger.LogBuildComplete(report.StartTime, len(state.customers), len(state.products), len(state.facts))

	return report, nil
}

// buildNodes формирует статический граф зависимостей сборки
func (o *Orchestrator) buildNodes(extracted *models.ExtractedData, state *buildState, dateProcessor *transform.DateDimensionProcessor, buildTime time.Time) []*Node {
	return []*Node{
		{
			Name:            "stg_customers",
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				staged, err := o.normalizer.NormalizeCustomers(extracted.Customers)
				if err != nil {
					return 0, nil, err
				}
				state.stagedCustomers = staged

				keys := make([]string, len(staged))
				for i, row := range staged {
					keys[i] = row.CustomerKey
				}
				assertions := []models.AssertionResult{
					assertUniqueKeys("stg_customers_key_unique", keys),
				}

				if err := o.loader.LoadStagingCustomers(staged); err != nil {
					return len(staged), assertions, err
				}
				return len(staged), assertions, nil
			},
		},
		{
			Name:            "stg_products",
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				staged, err := o.normalizer.NormalizeProducts(extracted.Products)
				if err != nil {
					return 0, nil, err
				}
				state.stagedProducts = staged

				keys := make([]string, len(staged))
				for i, row := range staged {
					keys[i] = row.ProductKey
				}
				assertions := []models.AssertionResult{
					assertUniqueKeys("stg_products_key_unique", keys),
				}

				if err := o.loader.LoadStagingProducts(staged); err != nil {
					return len(staged), assertions, err
				}
				return len(staged), assertions, nil
			},
		},
		{
			Name:            "stg_orders",
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				staged, err := o.normalizer.NormalizeOrders(extracted.Orders)
				if err != nil {
					return 0, nil, err
				}
				state.stagedOrders = staged

				keys := make([]string, len(staged))
				for i, row := range staged {
					keys[i] = row.OrderKey
				}
				assertions := []models.AssertionResult{
					assertUniqueKeys("stg_orders_key_unique", keys),
				}

				if err := o.loader.LoadStagingOrders(staged); err != nil {
					return len(staged), assertions, err
				}
				return len(staged), assertions, nil
			},
		},
		{
			Name:            "dim_customers",
			DependsOn:       []string{"stg_customers"},
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				customers := o.customerProcessor.ProcessCustomerDimension(state.stagedCustomers, buildTime)
				state.customers = customers

				keys := make([]string, len(customers))
				tenures := make([]string, len(customers))
				for i, row := range customers {
					keys[i] = row.CustomerKey
					tenures[i] = row.TenureClass
				}
				assertions := []models.AssertionResult{
					assertUniqueKeys("dim_customers_key_unique", keys),
					assertNotEmpty("dim_customers_tenure_not_null", tenures),
				}

				if err := o.loader.LoadCustomerDimension(customers); err != nil {
					return len(customers), assertions, err
				}
				return len(customers), assertions, nil
			},
		},
		{
			Name:            "dim_products",
			DependsOn:       []string{"stg_products"},
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				products, err := o.productProcessor.ProcessProductDimension(state.stagedProducts, buildTime)
				if err != nil {
					return 0, nil, err
				}
				state.products = products

				keys := make([]string, len(products))
				marginTiers := make([]string, len(products))
				priceTiers := make([]string, len(products))
				for i, row := range products {
					keys[i] = row.ProductKey
					marginTiers[i] = row.MarginTier
					priceTiers[i] = row.PriceTier
				}
				assertions := []models.AssertionResult{
					assertUniqueKeys("dim_products_key_unique", keys),
					assertNotEmpty("dim_products_margin_tier_not_null", marginTiers),
					assertNotEmpty("dim_products_price_tier_not_null", priceTiers),
				}

				if err := o.loader.LoadProductDimension(products); err != nil {
					return len(products), assertions, err
				}
				return len(products), assertions, nil
			},
		},
		{
			Name:            "dim_dates",
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				dates := dateProcessor.ProcessDateDimension()
				state.dates = dates

				keys := make([]int, len(dates))
				for i, row := range dates {
					keys[i] = row.DateKey
				}
				assertions := []models.AssertionResult{
					assertUniqueIntKeys("dim_dates_key_unique", keys),
					assertSingleSentinel(dates, transform.SentinelDateKey()),
				}

				if err := o.loader.LoadDateDimension(dates); err != nil {
					return len(dates), assertions, err
				}
				return len(dates), assertions, nil
			},
		},
		{
			Name:            "fact_orders",
			DependsOn:       []string{"stg_orders", "dim_customers", "dim_products", "dim_dates"},
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				facts, gaps := o.factProcessor.ProcessOrderFacts(state.stagedOrders, state.customers, state.products, state.dates)
				state.facts = facts
				state.gaps = gaps

				missingDates := 0
				keys := make([]string, len(facts))
				for i, fact := range facts {
					keys[i] = fact.FactKey
					if fact.MissingDateFlag {
						missingDates++
					}
				}
				state.missingDates = missingDates

				assertions := []models.AssertionResult{
					assertUniqueKeys("fact_orders_key_unique", keys),
					assertFactDatesResolved(facts, state.dates),
					assertFactReferences(facts, state.customers, state.products),
				}

				if err := o.loader.LoadOrderFacts(facts); err != nil {
					return len(facts), assertions, err
				}
				return len(facts), assertions, nil
			},
		},
		{
			Name:            "revenue_analysis",
			DependsOn:       []string{"fact_orders"},
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				marts := o.revenueProcessor.ProcessMonthlyRevenue(state.facts, state.dates)
				state.marts = marts

				periods := make([]int, len(marts))
				for i, mart := range marts {
					periods[i] = mart.Year*100 + mart.Month
				}
				assertions := []models.AssertionResult{
					assertUniqueIntKeys("revenue_analysis_period_unique", periods),
					assertAscendingPeriods(marts),
				}

				if err := o.loader.LoadMonthlyRevenue(marts); err != nil {
					return len(marts), assertions, err
				}
				return len(marts), assertions, nil
			},
		},
	}
}

// finalizeReport обновляет журнал запусков, архивирует отчет и публикует событие
func (o *Orchestrator) finalizeReport(report *models.BuildReport, logEntryID int, state *buildState) {
	if o.RunRepo != nil && logEntryID > 0 {
		var err error
		if report.Status == models.NodeStatusSuccess {
			err = o.RunRepo.UpdateLogEntrySuccess(
				logEntryID,
				report.EndTime,
				len(state.customers),
				len(state.products),
				len(state.facts),
				state.missingDates,
			)
		} else {
			message := report.FailedNode
			if nodeReport := report.NodeByName(report.FailedNode); nodeReport != nil {
				message = nodeReport.ErrorMessage
			}
			err = o.RunRepo.UpdateLogEntryFailure(logEntryID, report.EndTime, message)
		}
		if err != nil {
			o.logger.Error("Ошибка при обновлении журнала запусков: %v", err)
		}
	}

	if o.Archiver != nil {
		if path, err := o.Archiver.Archive(report); err != nil {
			o.logger.Error("Ошибка при архивировании отчета: %v", err)
		} else {
			o.logger.Debug("Отчет о сборке сохранен: %s", path)
		}
	}

	if o.Publisher != nil {
		o.Publisher.PublishRunStatus(report)
	}
}

// finishFailure завершает запуск, не дошедший до выполнения графа
func (o *Orchestrator) finishFailure(report *models.BuildReport, logEntryID int, failedNode string, err error) (*models.BuildReport, error) {
	o.logger.Error("Сборка прервана: %v", err)

	report.EndTime = time.Now().UTC()
	report.DurationSeconds = report.EndTime.Sub(report.StartTime).Seconds()
	report.Status = models.NodeStatusFailed
	report.FailedNode = failedNode

	if o.RunRepo != nil && logEntryID > 0 {
		if updateErr := o.RunRepo.UpdateLogEntryFailure(logEntryID, report.EndTime, err.Error()); updateErr != nil {
			o.logger.Error("Ошибка при обновлении журнала запусков: %v", updateErr)
		}
	}

	if o.Publisher != nil {
		o.Publisher.PublishRunStatus(report)
	}

	return report, err
}
