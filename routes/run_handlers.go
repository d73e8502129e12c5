// routes/run_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/coursework_warehouse/models"
)

// RunStatsResponse структура ответа API для журнала запусков сборки
type RunStatsResponse struct {
	Runs []models.BuildRunLog `json:"runs"`
}

// GetRunStatsHandler обрабатывает запросы статистики запусков сборки
func GetRunStatsHandler(runRepo models.BuildRunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Получаем параметры запроса
		query := r.URL.Query()
		daysStr := query.Get("days")

		// По умолчанию показываем запуски за последнюю неделю
		days := 7
		if daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err != nil || parsed < 1 {
				http.Error(w, "Неверный формат параметра days", http.StatusBadRequest)
				return
			}
			days = parsed
		}

		runs, err := runRepo.GetRunStats(days)
		if err != nil {
			log.Printf("❌ Ошибка при запросе журнала запусков: %v", err)
			http.Error(w, "Ошибка при получении журнала запусков", http.StatusInternalServerError)
			return
		}

		response := RunStatsResponse{
			Runs: runs,
		}

		// Устанавливаем заголовок для JSON
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлен журнал из %d запусков за %d дней", len(runs), days)
	}
}

// GetLastRunHandler обрабатывает запросы о последнем успешном запуске сборки
func GetLastRunHandler(runRepo models.BuildRunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastRun, err := runRepo.GetLastSuccessfulRun()
		if err != nil {
			log.Printf("❌ Ошибка при запросе последнего запуска: %v", err)
			http.Error(w, "Ошибка при получении последнего запуска", http.StatusInternalServerError)
			return
		}

		if lastRun == nil {
			http.Error(w, "Успешных запусков сборки еще не было", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(lastRun); err != nil {
			log.Printf("❌ Ошибка при кодировании JSON: %v", err)
			http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Отправлена информация о запуске %s", lastRun.RunID)
	}
}
