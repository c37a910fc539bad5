package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/workova-backend/internal/goroutine"
	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/moderation"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
	"github.com/ignatzorin/workova-backend/internal/repository"
	"github.com/ignatzorin/workova-backend/internal/validation"
)

// MessageNotifier доставляет новое сообщение подключённым участникам
// чата. Реализуется ws-хабом; nil-уведомитель допустим.
type MessageNotifier interface {
	NotifyMessage(chat *models.Chat, msg *models.Message)
}

// ChatService управляет диалогами и перепиской.
type ChatService struct {
	store            *repository.Store
	notifier         MessageNotifier
	moderateMessages bool
}

// NewChatService создаёт сервис чатов. moderateMessages включает
// модерацию текста сообщений перед записью.
func NewChatService(store *repository.Store, notifier MessageNotifier, moderateMessages bool) *ChatService {
	return &ChatService{store: store, notifier: notifier, moderateMessages: moderateMessages}
}

// SendMessage добавляет сообщение в чат и синхронно обновляет его
// превью (lastMessage, updatedAt) в той же критической секции: лента
// чатов и переписка никогда не расходятся. Отправлять могут только
// участники. Уведомление уходит после фиксации записи.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, text string) (*models.Message, error) {
	if err := validation.ValidateMessageContent(text); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if s.moderateMessages {
		if res := moderation.Check(text); !res.IsClean {
			return nil, apperror.New(apperror.ErrCodeModeration, res.Reason)
		}
	}

	var (
		msg  models.Message
		chat models.Chat
	)
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		chats, err := tx.Chats()
		if err != nil {
			return err
		}
		idx := -1
		for i := range chats {
			if chats[i].ID == chatID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.ErrChatNotFound
		}
		if !chats[idx].HasMember(senderID) {
			return apperror.ErrForbidden
		}

		senderName := chats[idx].MemberNames[senderID]
		if senderName == "" {
			users, err := tx.Users()
			if err != nil {
				return err
			}
			if u, ok := users[senderID]; ok {
				senderName = u.DisplayName
			}
		}

		messages, err := tx.Messages()
		if err != nil {
			return err
		}

		msg = models.Message{
			ID:         uuid.NewString(),
			ChatID:     chatID,
			SenderID:   senderID,
			SenderName: senderName,
			Text:       strings.TrimSpace(text),
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.SetMessages(append(messages, msg)); err != nil {
			return err
		}

		chats[idx].LastMessage = msg.Text
		chats[idx].UpdatedAt = msg.CreatedAt
		chat = chats[idx]
		return tx.SetChats(chats)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		c, m := chat, msg
		goroutine.SafeGo(func() {
			s.notifier.NotifyMessage(&c, &m)
		})
	}
	return &msg, nil
}

// Get возвращает чат, если пользователь является его участником.
func (s *ChatService) Get(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	var chat *models.Chat
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		chats, err := tx.Chats()
		if err != nil {
			return err
		}
		for i := range chats {
			if chats[i].ID == chatID {
				if !chats[i].HasMember(userID) {
					return apperror.ErrForbidden
				}
				chat = &chats[i]
				return nil
			}
		}
		return apperror.ErrChatNotFound
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// ForUser возвращает чаты пользователя, последние активные сверху.
func (s *ChatService) ForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	var out []models.Chat
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		chats, err := tx.Chats()
		if err != nil {
			return err
		}
		out = make([]models.Chat, 0, len(chats))
		for i := range chats {
			if chats[i].HasMember(userID) {
				out = append(out, chats[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Messages возвращает переписку чата от старых к новым. Доступно
// только участникам.
func (s *ChatService) Messages(ctx context.Context, chatID, userID string) ([]models.Message, error) {
	var out []models.Message
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		chats, err := tx.Chats()
		if err != nil {
			return err
		}
		found := false
		for i := range chats {
			if chats[i].ID == chatID {
				if !chats[i].HasMember(userID) {
					return apperror.ErrForbidden
				}
				found = true
				break
			}
		}
		if !found {
			return apperror.ErrChatNotFound
		}

		messages, err := tx.Messages()
		if err != nil {
			return err
		}
		out = make([]models.Message, 0, len(messages))
		for _, m := range messages {
			if m.ChatID == chatID {
				out = append(out, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
