// routes/api_routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/monitor"
	"github.com/LilVoxy/coursework_warehouse/report"
)

// corsMiddleware разрешает кросс-доменные запросы к API хранилища
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetupRoutes настраивает все маршруты API и WebSocket мониторинга
func SetupRoutes(router *mux.Router, warehouseDB *sql.DB, runRepo models.BuildRunRepository, hub *monitor.Hub, archiver *report.Archiver) {
	// Применяем CORS middleware
	router.Use(corsMiddleware)

	// WebSocket мониторинга хода сборки
	router.HandleFunc("/ws", hub.HandleConnections)

	// API журнала запусков сборки
	router.HandleFunc("/api/runs", GetRunStatsHandler(runRepo)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/runs/last", GetLastRunHandler(runRepo)).Methods("GET", "OPTIONS")

	// API витрины выручки
	router.HandleFunc("/api/revenue", GetRevenueHandler(warehouseDB)).Methods("GET", "OPTIONS")

	// API отчетов о качестве сборки
	router.HandleFunc("/api/reports/latest", GetLatestReportHandler(archiver)).Methods("GET", "OPTIONS")
}
