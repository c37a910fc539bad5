package service

import (
	"context"
	"strings"
	"time"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
	"github.com/ignatzorin/workova-backend/internal/repository"
	"github.com/ignatzorin/workova-backend/internal/validation"
)

// WorkerService управляет анкетами исполнителей.
type WorkerService struct {
	store *repository.Store
}

// NewWorkerService создаёт сервис анкет.
func NewWorkerService(store *repository.Store) *WorkerService {
	return &WorkerService{store: store}
}

// UpsertWorkerInput содержит данные онбординга исполнителя.
type UpsertWorkerInput struct {
	UserID        string
	DisplayName   string
	Bio           string
	Categories    []string
	ServiceRadius float64
}

// Upsert создаёт или обновляет анкету. Первая анкета у заказчика
// повышает роль до both. Поля рейтинга движок не трогает: на создании
// они нулевые, дальше их ведёт внешний механизм оценок.
func (s *WorkerService) Upsert(ctx context.Context, in UpsertWorkerInput) (*models.WorkerProfile, error) {
	if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("о себе", in.Bio, 0, validation.MaxBioLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateServiceRadius(in.ServiceRadius); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if len(in.Categories) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "нужно выбрать хотя бы одну категорию")
	}
	for _, id := range in.Categories {
		if _, ok := models.CategoryByID(id); !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "неизвестная категория: "+id)
		}
	}

	var profile models.WorkerProfile
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		user, ok := users[in.UserID]
		if !ok {
			return apperror.ErrAccountNotFound
		}

		workers, err := tx.Workers()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		existing, exists := workers[in.UserID]
		profile = models.WorkerProfile{
			UserID:        in.UserID,
			DisplayName:   strings.TrimSpace(in.DisplayName),
			Bio:           strings.TrimSpace(in.Bio),
			Categories:    in.Categories,
			ServiceRadius: in.ServiceRadius,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if exists {
			profile.CreatedAt = existing.CreatedAt
			profile.RatingAvg = existing.RatingAvg
			profile.RatingCount = existing.RatingCount
		}
		workers[in.UserID] = profile
		if err := tx.SetWorkers(workers); err != nil {
			return err
		}

		if user.Role == models.RoleCustomer {
			user.Role = models.RoleBoth
			users[in.UserID] = user
			return tx.SetUsers(users)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Get возвращает анкету исполнителя.
func (s *WorkerService) Get(ctx context.Context, userID string) (*models.WorkerProfile, error) {
	var profile *models.WorkerProfile
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		workers, err := tx.Workers()
		if err != nil {
			return err
		}
		p, ok := workers[userID]
		if !ok {
			return apperror.New(apperror.ErrCodeNotFound, "анкета исполнителя не найдена")
		}
		profile = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
