package ws

import (
	"encoding/json"
	"runtime/debug"
	"sync"

	"github.com/ignatzorin/workova-backend/internal/logger"
	"github.com/ignatzorin/workova-backend/internal/models"
)

// Hub управляет всеми WebSocket клиентами и раздаёт события
// переписки участникам чатов.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
}

type message struct {
	userID  string
	payload []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.userID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyMessage рассылает новое сообщение участникам чата. Отправитель
// тоже получает событие: его другие устройства должны увидеть сообщение.
func (h *Hub) NotifyMessage(chat *models.Chat, msg *models.Message) {
	data := map[string]any{
		"chatId":  chat.ID,
		"message": msg,
	}
	for _, member := range chat.Members {
		h.BroadcastToUser(member, "chat.message", data)
	}
}

// BroadcastToUser отправляет событие конкретному пользователю.
// Поле "type" содержит имя события, "data" — полезную нагрузку.
func (h *Hub) BroadcastToUser(userID, event string, data any) {
	payload := map[string]any{
		"type": event,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).Error("ws: не удалось сериализовать сообщение")
		return
	}
	h.broadcast <- message{userID: userID, payload: raw}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Переполненный буфер закрываем асинхронно, не держа блокировку.
			go func(c *Client) {
				defer func() {
					if r := recover(); r != nil {
						logger.Log.Errorf("ws: panic при закрытии клиента: %v\n%s", r, debug.Stack())
					}
				}()
				c.Close()
			}(client)
		}
	}
}
