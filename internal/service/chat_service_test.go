package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
)

// recordingNotifier запоминает уведомления о новых сообщениях.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) NotifyMessage(chat *models.Chat, msg *models.Message) {
	n.mu.Lock()
	n.calls = append(n.calls, msg.ID)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func acceptedChat(t *testing.T, auth *AuthService, jobs *JobService, offers *OfferService) (customerID, workerID, chatID string) {
	t.Helper()
	customer := signUpUser(t, auth, "cust@example.com", "Customer")
	worker := signUpUser(t, auth, "w1@example.com", "Worker")
	job := createOpenJob(t, jobs, customer.ID)
	offer := sendOffer(t, offers, job.ID, worker.ID, 75)
	result, err := offers.Accept(context.Background(), offer.ID, customer.ID)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	return customer.ID, worker.ID, result.Chat.ID
}

func TestSendMessageUpdatesPreview(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	notifier := newRecordingNotifier()
	chats := NewChatService(store, notifier, false)
	ctx := context.Background()

	customerID, workerID, chatID := acceptedChat(t, auth, jobs, offers)

	msg, err := chats.SendMessage(ctx, chatID, workerID, "  Hi! I can start today.  ")
	require.NoError(t, err)
	assert.Equal(t, "Hi! I can start today.", msg.Text)
	assert.Equal(t, "Worker", msg.SenderName)

	// Превью чата обновлено той же записью.
	chat, err := chats.Get(ctx, chatID, customerID)
	require.NoError(t, err)
	assert.Equal(t, msg.Text, chat.LastMessage)
	assert.Equal(t, msg.CreatedAt, chat.UpdatedAt)

	// Участники уведомлены после фиксации.
	<-notifier.done
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, msg.ID, notifier.calls[0])
}

func TestSendMessageMembershipAndLimits(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	chats := NewChatService(store, nil, false)
	ctx := context.Background()

	_, workerID, chatID := acceptedChat(t, auth, jobs, offers)
	stranger := signUpUser(t, auth, "x@example.com", "Stranger")

	_, err := chats.SendMessage(ctx, chatID, stranger.ID, "hi")
	assert.True(t, apperror.Is(err, apperror.ErrCodeForbidden), "получено %v", err)

	_, err = chats.SendMessage(ctx, chatID, workerID, "   ")
	assert.True(t, apperror.IsValidation(err), "получено %v", err)

	long := strings.Repeat("я", 1001)
	_, err = chats.SendMessage(ctx, chatID, workerID, long)
	assert.True(t, apperror.IsValidation(err), "получено %v", err)

	_, err = chats.SendMessage(ctx, "no-such-chat", workerID, "hi")
	assert.True(t, apperror.IsNotFound(err), "получено %v", err)
}

func TestChatMessageModerationToggle(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	ctx := context.Background()

	_, workerID, chatID := acceptedChat(t, auth, jobs, offers)

	// По умолчанию переписка не модерируется.
	relaxed := NewChatService(store, nil, false)
	_, err := relaxed.SendMessage(ctx, chatID, workerID, "buy crypto now!!!")
	require.NoError(t, err)

	// С включённым флагом тот же текст отклоняется.
	strict := NewChatService(store, nil, true)
	_, err = strict.SendMessage(ctx, chatID, workerID, "buy crypto now!!!")
	assert.True(t, apperror.Is(err, apperror.ErrCodeModeration), "получено %v", err)
}

func TestMessagesOrderingAndChatList(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	chats := NewChatService(store, nil, false)
	ctx := context.Background()

	customerID, workerID, chatID := acceptedChat(t, auth, jobs, offers)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := chats.SendMessage(ctx, chatID, workerID, text); err != nil {
			t.Fatalf("SendMessage(%s): %v", text, err)
		}
	}

	messages, err := chats.Messages(ctx, chatID, customerID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "third", messages[2].Text)

	list, err := chats.ForUser(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "third", list[0].LastMessage)

	// Не участник не видит переписку.
	stranger := signUpUser(t, auth, "x@example.com", "Stranger")
	_, err = chats.Messages(ctx, chatID, stranger.ID)
	assert.True(t, apperror.Is(err, apperror.ErrCodeForbidden), "получено %v", err)
}
