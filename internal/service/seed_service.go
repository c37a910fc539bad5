package service

import (
	"context"
	"time"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/repository"
)

// SeedService наполняет хранилище демо-данными для локальной разработки.
type SeedService struct {
	store *repository.Store
}

// NewSeedService создаёт сервис демо-данных.
func NewSeedService(store *repository.Store) *SeedService {
	return &SeedService{store: store}
}

var demoEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeedDemoData записывает фиксированный набор демо-аккаунтов, заявок,
// предложений и один чат с сообщением. Повторный вызов перезаписывает
// демо-записи по их id, не трогая остальные данные. Демо-данные пишутся
// напрямую, мимо валидации сервисов: заявка по садовым работам нарочно
// ссылается на категорию вне каталога.
func (s *SeedService) SeedDemoData(ctx context.Context) error {
	now := time.Now().UTC()

	demoUsers := []models.User{
		{
			ID:           "demo-user-1",
			Email:        "demo@workova.app",
			DisplayName:  "Demo User",
			Role:         models.RoleBoth,
			BlockedUsers: []string{},
			CreatedAt:    demoEpoch,
		},
		{
			ID:           "demo-worker-1",
			Email:        "worker@workova.app",
			DisplayName:  "Alex Pro",
			Role:         models.RoleWorker,
			BlockedUsers: []string{},
			CreatedAt:    demoEpoch,
		},
	}

	demoProfile := models.WorkerProfile{
		UserID:        "demo-worker-1",
		DisplayName:   "Alex Pro",
		Bio:           "Experienced handyman and cleaner with 5+ years of professional experience.",
		Categories:    []string{"handyman", "cleaning", "plumbing"},
		ServiceRadius: 25,
		RatingAvg:     4.8,
		RatingCount:   42,
		CreatedAt:     demoEpoch,
		UpdatedAt:     demoEpoch,
	}

	demoJobs := []models.Job{
		{
			ID:           "demo-job-1",
			CustomerID:   "demo-user-1",
			CustomerName: "Demo User",
			CategoryID:   "handyman",
			Title:        "Fix leaky kitchen faucet",
			Description:  "The kitchen faucet has been dripping for a few days. Need someone to replace the washer or cartridge. Standard single-handle faucet.",
			BudgetMin:    50,
			BudgetMax:    120,
			Photos:       []string{},
			Status:       models.JobStatusOpen,
			CreatedAt:    now,
		},
		{
			ID:           "demo-job-2",
			CustomerID:   "demo-user-1",
			CustomerName: "Demo User",
			CategoryID:   "cleaning",
			Title:        "Deep clean 2-bedroom apartment",
			Description:  "Moving out and need a thorough deep clean including kitchen, bathrooms, and all rooms. Approximately 900 sq ft.",
			BudgetMin:    150,
			BudgetMax:    250,
			Photos:       []string{},
			Status:       models.JobStatusOpen,
			CreatedAt:    now,
		},
		{
			ID:           "demo-job-3",
			CustomerID:   "demo-user-1",
			CustomerName: "Demo User",
			CategoryID:   "moving",
			Title:        "Help moving furniture to new apartment",
			Description:  "Need help moving a couch, dining table, bed frame, and several boxes from 2nd floor to a ground floor unit across town.",
			BudgetMin:    200,
			BudgetMax:    400,
			Photos:       []string{},
			Status:       models.JobStatusOpen,
			CreatedAt:    now,
		},
		{
			ID:           "demo-job-4",
			CustomerID:   "demo-worker-1",
			CustomerName: "Alex Pro",
			CategoryID:   "plumbing",
			Title:        "Bathroom sink installation",
			Description:  "Looking for help installing a new pedestal sink in the guest bathroom. Old vanity has been removed already.",
			BudgetMin:    100,
			BudgetMax:    200,
			Photos:       []string{},
			Status:       models.JobStatusOpen,
			CreatedAt:    now,
		},
		{
			ID:           "demo-job-5",
			CustomerID:   "demo-worker-1",
			CustomerName: "Alex Pro",
			CategoryID:   "landscaping",
			Title:        "Backyard lawn mowing and trimming",
			Description:  "Need weekly lawn mowing service for a medium-sized backyard. Includes edging and trimming around flower beds.",
			BudgetMin:    40,
			BudgetMax:    80,
			Photos:       []string{},
			Status:       models.JobStatusOpen,
			CreatedAt:    now,
		},
	}

	demoOffers := []models.Offer{
		{
			ID:         "demo-offer-1",
			JobID:      "demo-job-1",
			WorkerID:   "demo-worker-1",
			WorkerName: "Alex Pro",
			CustomerID: "demo-user-1",
			Price:      75,
			ETAText:    "Today 2-4pm",
			Message:    "I have extensive experience with faucet repairs. I can fix this quickly and bring all necessary parts.",
			Status:     models.OfferStatusSent,
			CreatedAt:  now,
		},
		{
			ID:         "demo-offer-2",
			JobID:      "demo-job-1",
			WorkerID:   "demo-worker-1",
			WorkerName: "Alex Pro",
			CustomerID: "demo-user-1",
			Price:      95,
			ETAText:    "Tomorrow morning",
			Message:    "I can also replace the entire faucet if needed for a more permanent fix.",
			Status:     models.OfferStatusSent,
			CreatedAt:  now,
		},
	}

	demoChat := models.Chat{
		ID:       "demo-chat-1",
		JobID:    "demo-job-1",
		JobTitle: "Fix leaky kitchen faucet",
		Members:  []string{"demo-user-1", "demo-worker-1"},
		MemberNames: map[string]string{
			"demo-user-1":   "Demo User",
			"demo-worker-1": "Alex Pro",
		},
		LastMessage: "Hi! I'm interested in helping with your faucet repair.",
		UpdatedAt:   now,
	}

	demoMessage := models.Message{
		ID:         "demo-msg-1",
		ChatID:     "demo-chat-1",
		SenderID:   "demo-worker-1",
		SenderName: "Alex Pro",
		Text:       "Hi! I'm interested in helping with your faucet repair.",
		CreatedAt:  now,
	}

	return s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		for _, u := range demoUsers {
			users[u.ID] = u
		}
		if err := tx.SetUsers(users); err != nil {
			return err
		}

		workers, err := tx.Workers()
		if err != nil {
			return err
		}
		workers[demoProfile.UserID] = demoProfile
		if err := tx.SetWorkers(workers); err != nil {
			return err
		}

		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		jobs = dropByID(jobs, func(j models.Job) string { return j.ID }, demoIDs(demoJobs, func(j models.Job) string { return j.ID }))
		if err := tx.SetJobs(append(jobs, demoJobs...)); err != nil {
			return err
		}

		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		offers = dropByID(offers, func(o models.Offer) string { return o.ID }, demoIDs(demoOffers, func(o models.Offer) string { return o.ID }))
		if err := tx.SetOffers(append(offers, demoOffers...)); err != nil {
			return err
		}

		chats, err := tx.Chats()
		if err != nil {
			return err
		}
		chats = dropByID(chats, func(c models.Chat) string { return c.ID }, map[string]struct{}{demoChat.ID: {}})
		if err := tx.SetChats(append(chats, demoChat)); err != nil {
			return err
		}

		messages, err := tx.Messages()
		if err != nil {
			return err
		}
		messages = dropByID(messages, func(m models.Message) string { return m.ID }, map[string]struct{}{demoMessage.ID: {}})
		return tx.SetMessages(append(messages, demoMessage))
	})
}

func demoIDs[T any](items []T, id func(T) string) map[string]struct{} {
	ids := make(map[string]struct{}, len(items))
	for _, it := range items {
		ids[id(it)] = struct{}{}
	}
	return ids
}

func dropByID[T any](items []T, id func(T) string, ids map[string]struct{}) []T {
	kept := items[:0]
	for _, it := range items {
		if _, ok := ids[id(it)]; !ok {
			kept = append(kept, it)
		}
	}
	return kept
}
