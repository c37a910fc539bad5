package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := repository.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("repository.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func signUpUser(t *testing.T, auth *AuthService, email, name string) *models.User {
	t.Helper()
	user, err := auth.SignUp(context.Background(), SignUpInput{
		Email:       email,
		Password:    "secret",
		DisplayName: name,
	})
	if err != nil {
		t.Fatalf("SignUp(%s): %v", email, err)
	}
	return user
}

func createOpenJob(t *testing.T, jobs *JobService, customerID string) *models.Job {
	t.Helper()
	job, err := jobs.Create(context.Background(), CreateJobInput{
		CustomerID:  customerID,
		CategoryID:  "handyman",
		Title:       "Fix leaky kitchen faucet",
		Description: "The kitchen faucet has been dripping for a few days.",
		BudgetMin:   50,
		BudgetMax:   120,
	})
	if err != nil {
		t.Fatalf("jobs.Create: %v", err)
	}
	return job
}

func sendOffer(t *testing.T, offers *OfferService, jobID, workerID string, price float64) *models.Offer {
	t.Helper()
	offer, err := offers.Create(context.Background(), CreateOfferInput{
		JobID:    jobID,
		WorkerID: workerID,
		Price:    price,
		ETAText:  "Today 2-4pm",
		Message:  "I can help with this.",
	})
	if err != nil {
		t.Fatalf("offers.Create: %v", err)
	}
	return offer
}
