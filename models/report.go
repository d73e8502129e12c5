package models

import (
	"time"
)

// Статусы выполнения узла графа сборки
const (
	NodeStatusSuccess = "success"
	NodeStatusFailed  = "failed"
	NodeStatusSkipped = "skipped"
)

// AssertionResult представляет результат одной проверки качества данных узла
type AssertionResult struct {
	Check      string `json:"check"`
	Passed     bool   `json:"passed"`
	FailedRows int    `json:"failed_rows"`
	Details    string `json:"details,omitempty"`
}

// NodeReport представляет отчет о выполнении одного узла графа сборки
type NodeReport struct {
	Node            string            `json:"node"`
	Status          string            `json:"status"` // "success", "failed", "skipped"
	Materialization string            `json:"materialization"`
	RowCount        int               `json:"row_count"`
	DurationSeconds float64           `json:"duration_seconds"`
	Assertions      []AssertionResult `json:"assertions,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
}

// BuildReport представляет машиночитаемый отчет о качестве одного запуска сборки
type BuildReport struct {
	RunID            string       `json:"run_id"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          time.Time    `json:"end_time"`
	Status           string       `json:"status"` // "success", "failed"
	Nodes            []NodeReport `json:"nodes"`
	MissingDateRows  int          `json:"missing_date_rows"`
	ReferentialGaps  []string     `json:"referential_gaps,omitempty"`
	DurationSeconds  float64      `json:"duration_seconds"`
	FailedNode       string       `json:"failed_node,omitempty"`
	FailedAssertions int          `json:"failed_assertions"`
}

// NodeByName возвращает отчет узла по его имени, либо nil, если узел не найден
func (r *BuildReport) NodeByName(name string) *NodeReport {
	for i := range r.Nodes {
		if r.Nodes[i].Node == name {
			return &r.Nodes[i]
		}
	}
	return nil
}
