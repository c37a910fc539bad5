package service

import (
	"context"
	"testing"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
)

func TestSignUpAndCurrentUser(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	ctx := context.Background()

	user := signUpUser(t, auth, "Ann@Example.com", "Ann")
	if user.Email != "ann@example.com" {
		t.Fatalf("email не нормализован: %q", user.Email)
	}
	if user.Role != models.RoleCustomer {
		t.Fatalf("новый аккаунт должен иметь роль customer, получено %q", user.Role)
	}
	if user.PasswordHash == "" {
		t.Fatal("пароль должен быть захеширован при регистрации")
	}
	if user.PasswordHash == "secret" {
		t.Fatal("пароль не должен храниться открытым текстом")
	}

	current, err := auth.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current.ID != user.ID {
		t.Fatalf("сессия указывает на %q, ожидалось %q", current.ID, user.ID)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	ctx := context.Background()

	signUpUser(t, auth, "ann@example.com", "Ann")

	_, err := auth.SignUp(ctx, SignUpInput{Email: "ANN@example.com", DisplayName: "Another Ann"})
	if !apperror.Is(err, apperror.ErrCodeDuplicateAccount) {
		t.Fatalf("ожидался DUPLICATE_ACCOUNT, получено %v", err)
	}
}

func TestSignInIgnoresPassword(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	ctx := context.Background()

	user := signUpUser(t, auth, "ann@example.com", "Ann")
	if err := auth.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	// Вход сверяет только email, пароль принимается любым.
	got, err := auth.SignIn(ctx, "ann@example.com", "совсем-другой-пароль")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("вход вернул другой аккаунт: %q", got.ID)
	}

	_, err = auth.SignIn(ctx, "nobody@example.com", "")
	if !apperror.Is(err, apperror.ErrCodeAccountNotFound) {
		t.Fatalf("ожидался ACCOUNT_NOT_FOUND, получено %v", err)
	}
}

func TestBlockIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	ctx := context.Background()

	ann := signUpUser(t, auth, "ann@example.com", "Ann")
	bob := signUpUser(t, auth, "bob@example.com", "Bob")

	for i := 0; i < 3; i++ {
		if _, err := auth.Block(ctx, ann.ID, bob.ID); err != nil {
			t.Fatalf("Block #%d: %v", i, err)
		}
	}

	got, err := auth.GetUser(ctx, ann.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if len(got.BlockedUsers) != 1 || got.BlockedUsers[0] != bob.ID {
		t.Fatalf("ожидалась одна запись в чёрном списке, получено %v", got.BlockedUsers)
	}

	if _, err := auth.Block(ctx, ann.ID, ann.ID); !apperror.IsValidation(err) {
		t.Fatalf("самоблокировка должна отклоняться, получено %v", err)
	}

	if _, err := auth.Unblock(ctx, ann.ID, bob.ID); err != nil {
		t.Fatalf("Unblock: %v", err)
	}
	got, _ = auth.GetUser(ctx, ann.ID)
	if len(got.BlockedUsers) != 0 {
		t.Fatalf("после Unblock чёрный список должен быть пуст: %v", got.BlockedUsers)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	chats := NewChatService(store, nil, false)
	ctx := context.Background()

	customer := signUpUser(t, auth, "cust@example.com", "Customer")
	worker := signUpUser(t, auth, "work@example.com", "Worker")

	job := createOpenJob(t, jobs, customer.ID)
	offer := sendOffer(t, offers, job.ID, worker.ID, 75)

	result, err := offers.Accept(ctx, offer.ID, customer.ID)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, err := chats.SendMessage(ctx, result.Chat.ID, worker.ID, "Hello!"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if err := auth.DeleteAccount(ctx, worker.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := auth.GetUser(ctx, worker.ID); !apperror.Is(err, apperror.ErrCodeAccountNotFound) {
		t.Fatalf("аккаунт должен исчезнуть, получено %v", err)
	}

	left, err := offers.ByWorker(ctx, worker.ID)
	if err != nil {
		t.Fatalf("ByWorker: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("предложения исполнителя должны быть удалены, осталось %d", len(left))
	}

	chatList, err := chats.ForUser(ctx, customer.ID)
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(chatList) != 0 {
		t.Fatalf("чаты с участием удалённого аккаунта должны исчезнуть, осталось %d", len(chatList))
	}

	// Заявка заказчика не затронута.
	if _, err := jobs.Get(ctx, job.ID); err != nil {
		t.Fatalf("заявка заказчика не должна удаляться: %v", err)
	}
}
