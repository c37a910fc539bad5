package service

import (
	"context"
	"testing"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
)

func TestCreateJobValidatesAndModerates(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	ctx := context.Background()

	customer := signUpUser(t, auth, "cust@example.com", "Customer")

	job := createOpenJob(t, jobs, customer.ID)
	if job.Status != models.JobStatusOpen {
		t.Fatalf("новая заявка должна быть open, получено %q", job.Status)
	}
	if job.CustomerName != "Customer" {
		t.Fatalf("имя заказчика не снято: %q", job.CustomerName)
	}

	_, err := jobs.Create(ctx, CreateJobInput{
		CustomerID:  customer.ID,
		CategoryID:  "handyman",
		Title:       "buy crypto now!!!",
		Description: "totally legit",
		BudgetMin:   10,
		BudgetMax:   20,
	})
	if !apperror.Is(err, apperror.ErrCodeModeration) {
		t.Fatalf("ожидался MODERATION_REJECTED, получено %v", err)
	}

	_, err = jobs.Create(ctx, CreateJobInput{
		CustomerID:  customer.ID,
		CategoryID:  "handyman",
		Title:       "Valid title",
		Description: "Valid description",
		BudgetMin:   200,
		BudgetMax:   100,
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("перевёрнутая вилка бюджета должна отклоняться, получено %v", err)
	}

	_, err = jobs.Create(ctx, CreateJobInput{
		CustomerID:  customer.ID,
		CategoryID:  "unknown-cat",
		Title:       "Valid title",
		Description: "Valid description",
		BudgetMin:   10,
		BudgetMax:   20,
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("неизвестная категория должна отклоняться, получено %v", err)
	}
}

func TestJobTransitions(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	ctx := context.Background()

	customer := signUpUser(t, auth, "cust@example.com", "Customer")
	stranger := signUpUser(t, auth, "other@example.com", "Other")

	job := createOpenJob(t, jobs, customer.ID)

	if _, err := jobs.Cancel(ctx, job.ID, stranger.ID); !apperror.Is(err, apperror.ErrCodeForbidden) {
		t.Fatalf("чужая отмена должна давать FORBIDDEN, получено %v", err)
	}

	// complete возможен только из booked.
	if _, err := jobs.Complete(ctx, job.ID, customer.ID); !apperror.Is(err, apperror.ErrCodeInvalidTransition) {
		t.Fatalf("complete из open должен давать INVALID_TRANSITION, получено %v", err)
	}

	cancelled, err := jobs.Cancel(ctx, job.ID, customer.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.JobStatusCancelled {
		t.Fatalf("статус после отмены %q", cancelled.Status)
	}

	// Повторная отмена из терминального статуса отклоняется.
	if _, err := jobs.Cancel(ctx, job.ID, customer.ID); !apperror.Is(err, apperror.ErrCodeInvalidTransition) {
		t.Fatalf("повторная отмена должна давать INVALID_TRANSITION, получено %v", err)
	}
}

func TestOpenFeedFiltersBlockedAndOwn(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	ctx := context.Background()

	viewer := signUpUser(t, auth, "viewer@example.com", "Viewer")
	friendly := signUpUser(t, auth, "friend@example.com", "Friend")
	blocked := signUpUser(t, auth, "blocked@example.com", "Blocked")

	createOpenJob(t, jobs, viewer.ID)
	friendlyJob := createOpenJob(t, jobs, friendly.ID)
	createOpenJob(t, jobs, blocked.ID)

	cancelledJob := createOpenJob(t, jobs, friendly.ID)
	if _, err := jobs.Cancel(ctx, cancelledJob.ID, friendly.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	feed, err := jobs.OpenFeed(ctx, viewer.ID, []string{blocked.ID})
	if err != nil {
		t.Fatalf("OpenFeed: %v", err)
	}

	if len(feed) != 1 {
		t.Fatalf("в ленте должна остаться одна заявка, получено %d", len(feed))
	}
	if feed[0].ID != friendlyJob.ID {
		t.Fatalf("в ленте неожиданная заявка %q", feed[0].ID)
	}
}

func TestOfferCounts(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	ctx := context.Background()

	customer := signUpUser(t, auth, "cust@example.com", "Customer")
	w1 := signUpUser(t, auth, "w1@example.com", "Worker One")
	w2 := signUpUser(t, auth, "w2@example.com", "Worker Two")

	jobA := createOpenJob(t, jobs, customer.ID)
	jobB := createOpenJob(t, jobs, customer.ID)

	sendOffer(t, offers, jobA.ID, w1.ID, 75)
	sendOffer(t, offers, jobA.ID, w2.ID, 95)
	sendOffer(t, offers, jobB.ID, w1.ID, 60)

	counts, err := jobs.OfferCounts(ctx, []string{jobA.ID, jobB.ID})
	if err != nil {
		t.Fatalf("OfferCounts: %v", err)
	}
	if counts[jobA.ID] != 2 || counts[jobB.ID] != 1 {
		t.Fatalf("неверные счётчики: %v", counts)
	}
}
