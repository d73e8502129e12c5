package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// MaterializationTable - единственная стратегия материализации:
// каждый узел полностью заменяет свою таблицу новым поколением
const MaterializationTable = "table"

// Node представляет узел статического графа зависимостей сборки
// Run возвращает количество строк результата и результаты проверок качества
type Node struct {
	Name      string
	DependsOn []string

	// Materialization - метаданные для отчета о сборке; на выполнение
	// узла не влияет, подмену поколений выполняют сами загрузчики
	Materialization string

	Run func(ctx context.Context) (int, []models.AssertionResult, error)
}

// Внутреннее состояние узла во время выполнения графа
type nodeState struct {
	node   *Node
	done   chan struct{}
	report models.NodeReport
}

// DAGRunner выполняет узлы графа в топологическом порядке
// Независимые узлы выполняются параллельно в пределах пула воркеров;
// при сбое узла все его зависимые узлы пропускаются, а уже
// материализованные узлы выше по графу не откатываются
type DAGRunner struct {
	logger  *utils.BuildLogger
	workers int

	// OnNodeComplete вызывается после завершения каждого узла (может быть nil)
	OnNodeComplete func(report models.NodeReport)
}

// NewDAGRunner создает новый экземпляр DAGRunner
func NewDAGRunner(logger *utils.BuildLogger, workers int) *DAGRunner {
	if workers < 1 {
		workers = 1
	}
	return &DAGRunner{
		logger:  logger,
		workers: workers,
	}
}

// Execute выполняет все узлы графа и возвращает отчеты в топологическом порядке
// Ошибка возвращается только при некорректном графе; сбои узлов
// отражаются в их отчетах
func (r *DAGRunner) Execute(ctx context.Context, nodes []*Node) ([]models.NodeReport, error) {
	order, err := topologicalOrder(nodes)
	if err != nil {
		return nil, err
	}

	states := make(map[string]*nodeState, len(nodes))
	for _, node := range nodes {
		states[node.Name] = &nodeState{
			node: node,
			done: make(chan struct{}),
			report: models.NodeReport{
				Node:            node.Name,
				Materialization: node.Materialization,
			},
		}
	}

	// Пул воркеров ограничивает число одновременно выполняющихся узлов
	sem := make(chan struct{}, r.workers)

	var g errgroup.Group
	for _, node := range nodes {
		state := states[node.Name]
		g.Go(func() error {
			r.runNode(ctx, state, states, sem)
			return nil
		})
	}
	g.Wait()

	// Собираем отчеты в топологическом порядке
	reports := make([]models.NodeReport, 0, len(order))
	for _, name := range order {
		reports = append(reports, states[name].report)
	}

	return reports, nil
}

// runNode дожидается зависимостей узла и выполняет его
func (r *DAGRunner) runNode(ctx context.Context, state *nodeState, states map[string]*nodeState, sem chan struct{}) {
	defer func() {
		close(state.done)
		if r.OnNodeComplete != nil {
			r.OnNodeComplete(state.report)
		}
	}()

	// Дожидаемся завершения всех зависимостей
	for _, dep := range state.node.DependsOn {
		depState := states[dep]
		select {
		case <-ctx.Done():
			state.report.Status = models.NodeStatusSkipped
			state.report.ErrorMessage = "сборка отменена"
			return
		case <-depState.done:
		}

		// Сбой или пропуск зависимости пропускает все поддерево
		if depState.report.Status != models.NodeStatusSuccess {
			state.report.Status = models.NodeStatusSkipped
			state.report.ErrorMessage = fmt.Sprintf("пропущен из-за узла %s", dep)
			r.logger.Info("Узел %s пропущен из-за узла %s", state.node.Name, dep)
			return
		}
	}

	// Занимаем слот в пуле воркеров
	select {
	case <-ctx.Done():
		state.report.Status = models.NodeStatusSkipped
		state.report.ErrorMessage = "сборка отменена"
		return
	case sem <- struct{}{}:
	}
	defer func() { <-sem }()

	r.logger.Info("Запуск узла %s...", state.node.Name)
	startTime := time.Now()

	rowCount, assertions, err := state.node.Run(ctx)
	state.report.RowCount = rowCount
	state.report.Assertions = assertions
	state.report.DurationSeconds = time.Since(startTime).Seconds()

	if err != nil {
		state.report.Status = models.NodeStatusFailed
		state.report.ErrorMessage = err.Error()
		r.logger.Error("Узел %s завершился с ошибкой: %v", state.node.Name, err)
		return
	}

	// Непройденная проверка качества - сбой узла: зависимые узлы не выполняются
	for _, assertion := range assertions {
		if !assertion.Passed {
			failure := &models.AssertionFailure{
				Node:       state.node.Name,
				Check:      assertion.Check,
				FailedRows: assertion.FailedRows,
			}
			state.report.Status = models.NodeStatusFailed
			state.report.ErrorMessage = failure.Error()
			r.logger.Error("Узел %s: %v", state.node.Name, failure)
			return
		}
	}

	state.report.Status = models.NodeStatusSuccess
	r.logger.Info("Узел %s выполнен. Строк: %d. Длительность: %v",
		state.node.Name, rowCount, time.Since(startTime))
}

// topologicalOrder проверяет корректность графа и возвращает имена узлов
// в топологическом порядке (алгоритм Кана)
func topologicalOrder(nodes []*Node) ([]string, error) {
	byName := make(map[string]*Node, len(nodes))
	for _, node := range nodes {
		if _, exists := byName[node.Name]; exists {
			return nil, fmt.Errorf("дубликат узла %s в графе сборки", node.Name)
		}
		byName[node.Name] = node
	}

	// Подсчитываем входящие ребра и строим списки зависимых узлов
	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for _, node := range nodes {
		inDegree[node.Name] = len(node.DependsOn)
		for _, dep := range node.DependsOn {
			if _, exists := byName[dep]; !exists {
				return nil, fmt.Errorf("узел %s зависит от неизвестного узла %s", node.Name, dep)
			}
			dependents[dep] = append(dependents[dep], node.Name)
		}
	}

	// Очередь узлов без невыполненных зависимостей
	var queue []string
	for _, node := range nodes {
		if inDegree[node.Name] == 0 {
			queue = append(queue, node.Name)
		}
	}

	var order []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("граф сборки содержит цикл")
	}

	return order, nil
}
