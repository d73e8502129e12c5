package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

func okNode(name string, deps []string, ran *[]string, mu *sync.Mutex) *Node {
	return &Node{
		Name:            name,
		DependsOn:       deps,
		Materialization: MaterializationTable,
		Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
			mu.Lock()
			*ran = append(*ran, name)
			mu.Unlock()
			return 1, nil, nil
		},
	}
}

func TestDAGRunnerExecutesInDependencyOrder(t *testing.T) {
	var mu sync.Mutex
	var ran []string

	nodes := []*Node{
		okNode("fact", []string{"dim_a", "dim_b"}, &ran, &mu),
		okNode("dim_a", []string{"stg"}, &ran, &mu),
		okNode("dim_b", []string{"stg"}, &ran, &mu),
		okNode("stg", nil, &ran, &mu),
	}

	runner := NewDAGRunner(utils.NewBuildLogger(false), 4)
	reports, err := runner.Execute(context.Background(), nodes)
	if err != nil {
		t.Fatalf("неожиданная ошибка выполнения графа: %v", err)
	}

	if len(reports) != 4 {
		t.Fatalf("ожидалось 4 отчета, получено %d", len(reports))
	}

	// Все узлы должны выполниться успешно, метаданные материализации
	// переносятся в отчет
	for _, report := range reports {
		if report.Status != models.NodeStatusSuccess {
			t.Errorf("узел %s должен быть успешным, статус %s", report.Node, report.Status)
		}
		if report.Materialization != MaterializationTable {
			t.Errorf("узел %s должен нести метаданные материализации, получено %q", report.Node, report.Materialization)
		}
	}

	// Зависимости выполняются строго раньше зависимых узлов
	position := make(map[string]int, len(ran))
	for i, name := range ran {
		position[name] = i
	}
	if position["stg"] > position["dim_a"] || position["stg"] > position["dim_b"] {
		t.Errorf("staging-узел должен выполняться раньше измерений: %v", ran)
	}
	if position["fact"] < position["dim_a"] || position["fact"] < position["dim_b"] {
		t.Errorf("факт должен выполняться после измерений: %v", ran)
	}
}

func TestDAGRunnerSkipsSubtreeOnFailure(t *testing.T) {
	var mu sync.Mutex
	var ran []string

	failing := &Node{
		Name:            "dim_a",
		Materialization: MaterializationTable,
		Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
			return 0, nil, errors.New("нет соединения с базой")
		},
	}

	nodes := []*Node{
		failing,
		okNode("dim_b", nil, &ran, &mu),
		okNode("fact", []string{"dim_a", "dim_b"}, &ran, &mu),
		okNode("mart", []string{"fact"}, &ran, &mu),
	}

	runner := NewDAGRunner(utils.NewBuildLogger(false), 2)
	reports, err := runner.Execute(context.Background(), nodes)
	if err != nil {
		t.Fatalf("некорректный граф: %v", err)
	}

	statuses := make(map[string]string, len(reports))
	for _, report := range reports {
		statuses[report.Node] = report.Status
	}

	if statuses["dim_a"] != models.NodeStatusFailed {
		t.Errorf("узел dim_a должен быть failed, получено %s", statuses["dim_a"])
	}
	// Независимая ветка продолжает выполняться
	if statuses["dim_b"] != models.NodeStatusSuccess {
		t.Errorf("узел dim_b не зависит от сбоя и должен быть успешным, получено %s", statuses["dim_b"])
	}
	// Все поддерево сбойного узла пропускается
	if statuses["fact"] != models.NodeStatusSkipped {
		t.Errorf("узел fact должен быть пропущен, получено %s", statuses["fact"])
	}
	if statuses["mart"] != models.NodeStatusSkipped {
		t.Errorf("узел mart должен быть пропущен транзитивно, получено %s", statuses["mart"])
	}
}

func TestDAGRunnerFailedAssertionSkipsDependents(t *testing.T) {
	var mu sync.Mutex
	var ran []string

	withBadAssertion := &Node{
		Name:            "dim_a",
		Materialization: MaterializationTable,
		Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
			assertions := []models.AssertionResult{
				{Check: "dim_a_key_unique", Passed: false, FailedRows: 3},
			}
			return 10, assertions, nil
		},
	}

	nodes := []*Node{
		withBadAssertion,
		okNode("fact", []string{"dim_a"}, &ran, &mu),
	}

	runner := NewDAGRunner(utils.NewBuildLogger(false), 2)
	reports, err := runner.Execute(context.Background(), nodes)
	if err != nil {
		t.Fatalf("некорректный граф: %v", err)
	}

	statuses := make(map[string]string, len(reports))
	for _, report := range reports {
		statuses[report.Node] = report.Status
	}

	// Непройденная проверка качества равносильна сбою узла
	if statuses["dim_a"] != models.NodeStatusFailed {
		t.Errorf("узел с непройденной проверкой должен быть failed, получено %s", statuses["dim_a"])
	}
	if statuses["fact"] != models.NodeStatusSkipped {
		t.Errorf("зависимый узел должен быть пропущен, получено %s", statuses["fact"])
	}
}

func TestDAGRunnerRespectsWorkerPool(t *testing.T) {
	var mu sync.Mutex
	running := 0
	maxRunning := 0

	makeNode := func(name string) *Node {
		return &Node{
			Name:            name,
			Materialization: MaterializationTable,
			Run: func(ctx context.Context) (int, []models.AssertionResult, error) {
				mu.Lock()
				running++
				if running > maxRunning {
					maxRunning = running
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
				return 1, nil, nil
			},
		}
	}

	nodes := []*Node{
		makeNode("a"), makeNode("b"), makeNode("c"), makeNode("d"), makeNode("e"),
	}

	runner := NewDAGRunner(utils.NewBuildLogger(false), 2)
	if _, err := runner.Execute(context.Background(), nodes); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if maxRunning > 2 {
		t.Errorf("одновременно выполнялось %d узлов при пуле из 2", maxRunning)
	}
}

func TestTopologicalOrderRejectsCycle(t *testing.T) {
	nodes := []*Node{
		{Name: "a", DependsOn: []string{"b"}},
		{Name: "b", DependsOn: []string{"a"}},
	}

	if _, err := topologicalOrder(nodes); err == nil {
		t.Error("циклический граф должен отвергаться")
	}
}

func TestTopologicalOrderRejectsUnknownDependency(t *testing.T) {
	nodes := []*Node{
		{Name: "a", DependsOn: []string{"missing"}},
	}

	if _, err := topologicalOrder(nodes); err == nil {
		t.Error("зависимость от неизвестного узла должна отвергаться")
	}
}

func TestTopologicalOrderRejectsDuplicateNode(t *testing.T) {
	nodes := []*Node{
		{Name: "a"},
		{Name: "a"},
	}

	if _, err := topologicalOrder(nodes); err == nil {
		t.Error("дубликат имени узла должен отвергаться")
	}
}
