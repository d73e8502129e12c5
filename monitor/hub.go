package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

// Event представляет событие хода сборки, рассылаемое подписчикам мониторинга
type Event struct {
	Type            string    `json:"type"` // "node_completed", "run_completed"
	RunID           string    `json:"run_id"`
	Node            string    `json:"node,omitempty"`
	Status          string    `json:"status"`
	RowCount        int       `json:"row_count,omitempty"`
	MissingDateRows int       `json:"missing_date_rows,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Мониторинг доступен любым подписчикам внутри периметра
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub управляет подписчиками мониторинга и рассылает им события сборки
type Hub struct {
	logger     *utils.BuildLogger
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	clients    map[*Client]bool
}

// NewHub создает новый экземпляр Hub
func NewHub(logger *utils.BuildLogger) *Hub {
	return &Hub{
		logger:     logger,
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run запускает цикл обработки подписчиков и рассылки событий
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Закрываем все соединения при остановке
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.logger.Info("Мониторинг сборки остановлен")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("Подписчик мониторинга подключился (всего: %d)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("Подписчик мониторинга отключился (всего: %d)", len(h.clients))
			}

		case message := <-h.broadcast:
			// Рассылаем событие всем подписчикам
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// PublishNodeStatus публикует событие о завершении узла графа сборки
func (h *Hub) PublishNodeStatus(runID string, report models.NodeReport) {
	h.publish(Event{
		Type:         "node_completed",
		RunID:        runID,
		Node:         report.Node,
		Status:       report.Status,
		RowCount:     report.RowCount,
		ErrorMessage: report.ErrorMessage,
		Timestamp:    time.Now().UTC(),
	})
}

// PublishRunStatus публикует событие о завершении запуска сборки
func (h *Hub) PublishRunStatus(report *models.BuildReport) {
	h.publish(Event{
		Type:            "run_completed",
		RunID:           report.RunID,
		Status:          report.Status,
		MissingDateRows: report.MissingDateRows,
		Timestamp:       time.Now().UTC(),
	})
}

// publish сериализует событие и ставит его в очередь рассылки
func (h *Hub) publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Ошибка при сериализации события мониторинга: %v", err)
		return
	}

	// Не блокируем сборку, если очередь рассылки переполнена
	select {
	case h.broadcast <- data:
	default:
		h.logger.Debug("Очередь событий мониторинга переполнена, событие отброшено")
	}
}

// HandleConnections обрабатывает WebSocket-подключения подписчиков мониторинга
func (h *Hub) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}
