package ws

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/ignatzorin/workova-backend/internal/logger"
	"github.com/ignatzorin/workova-backend/internal/models"
)

func TestHubNotifyMessageFanOut(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("github.com/ignatzorin/workova-backend/internal/ws.(*Hub).Run"),
	)

	logger.Init("error")

	hub := NewHub()
	go hub.Run()

	customer := NewClient(nil, hub, "cust-1")
	worker := NewClient(nil, hub, "work-1")
	outsider := NewClient(nil, hub, "other-1")
	hub.Register(customer)
	hub.Register(worker)
	hub.Register(outsider)

	chat := &models.Chat{
		ID:      "chat-1",
		JobID:   "job-1",
		Members: []string{"cust-1", "work-1"},
	}
	msg := &models.Message{
		ID:       "msg-1",
		ChatID:   "chat-1",
		SenderID: "work-1",
		Text:     "Hello",
	}

	hub.NotifyMessage(chat, msg)

	for _, c := range []*Client{customer, worker} {
		select {
		case raw := <-c.send:
			var envelope struct {
				Type string `json:"type"`
				Data struct {
					ChatID  string          `json:"chatId"`
					Message *models.Message `json:"message"`
				} `json:"data"`
			}
			if err := json.Unmarshal(raw, &envelope); err != nil {
				t.Fatalf("декодирование события: %v", err)
			}
			if envelope.Type != "chat.message" {
				t.Fatalf("тип события %q", envelope.Type)
			}
			if envelope.Data.ChatID != "chat-1" || envelope.Data.Message.ID != "msg-1" {
				t.Fatalf("неверная полезная нагрузка: %+v", envelope.Data)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("участник %s не получил событие", c.userID)
		}
	}

	select {
	case <-outsider.send:
		t.Fatal("посторонний не должен получать события чужого чата")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("github.com/ignatzorin/workova-backend/internal/ws.(*Hub).Run"),
	)

	logger.Init("error")

	hub := NewHub()
	go hub.Run()

	client := NewClient(nil, hub, "u1")
	hub.Register(client)
	hub.Unregister(client)

	hub.BroadcastToUser("u1", "chat.message", map[string]string{"x": "y"})

	select {
	case <-client.send:
		t.Fatal("отключённый клиент не должен получать события")
	case <-time.After(100 * time.Millisecond):
	}
}
