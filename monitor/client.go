package monitor

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи сообщения подписчику
	writeWait = 10 * time.Second

	// Время ожидания pong-ответа от подписчика
	pongWait = 60 * time.Second

	// Период отправки ping-сообщений (должен быть меньше pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// Client представляет одного подписчика мониторинга сборки
// Поток событий односторонний: подписчики только читают
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// writePump отправляет события из канала send в WebSocket-соединение
// и поддерживает соединение ping-сообщениями
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал подписчика
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump читает и отбрасывает входящие сообщения, отслеживая разрыв соединения
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
