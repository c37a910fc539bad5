package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/moderation"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
	"github.com/ignatzorin/workova-backend/internal/repository"
	"github.com/ignatzorin/workova-backend/internal/validation"
)

// JobService отвечает за жизненный цикл заявок и их проекции.
type JobService struct {
	store *repository.Store
}

// NewJobService создаёт сервис заявок.
func NewJobService(store *repository.Store) *JobService {
	return &JobService{store: store}
}

// CreateJobInput описывает входные данные новой заявки.
type CreateJobInput struct {
	CustomerID  string
	CategoryID  string
	Title       string
	Description string
	BudgetMin   float64
	BudgetMax   float64
}

// Create валидирует и публикует заявку. Имя заказчика снимается в момент
// создания и дальше не обновляется. Заголовок и описание проходят
// модерацию до записи.
func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	if _, ok := models.CategoryByID(in.CategoryID); !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестная категория")
	}
	if err := validation.ValidateJobTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateJobDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBudget(in.BudgetMin, in.BudgetMax); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if res := moderation.Check(in.Title); !res.IsClean {
		return nil, apperror.New(apperror.ErrCodeModeration, res.Reason)
	}
	if res := moderation.Check(in.Description); !res.IsClean {
		return nil, apperror.New(apperror.ErrCodeModeration, res.Reason)
	}

	var job models.Job
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		customer, ok := users[in.CustomerID]
		if !ok {
			return apperror.ErrAccountNotFound
		}

		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}

		job = models.Job{
			ID:           uuid.NewString(),
			CustomerID:   in.CustomerID,
			CustomerName: customer.DisplayName,
			CategoryID:   in.CategoryID,
			Title:        strings.TrimSpace(in.Title),
			Description:  strings.TrimSpace(in.Description),
			BudgetMin:    in.BudgetMin,
			BudgetMax:    in.BudgetMax,
			Photos:       []string{},
			Status:       models.JobStatusOpen,
			CreatedAt:    time.Now().UTC(),
		}
		return tx.SetJobs(append(jobs, job))
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Cancel переводит заявку open -> cancelled. Доступно только владельцу
// и только из open: после принятия предложения путь отмены не
// предоставляется.
func (s *JobService) Cancel(ctx context.Context, jobID, actorID string) (*models.Job, error) {
	return s.transition(ctx, jobID, actorID, models.JobStatusOpen, models.JobStatusCancelled)
}

// Complete переводит заявку booked -> complete. Доступно только владельцу.
func (s *JobService) Complete(ctx context.Context, jobID, actorID string) (*models.Job, error) {
	return s.transition(ctx, jobID, actorID, models.JobStatusBooked, models.JobStatusComplete)
}

// transition выполняет единственный разрешённый переход из from в to.
func (s *JobService) transition(ctx context.Context, jobID, actorID, from, to string) (*models.Job, error) {
	var job *models.Job
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		idx := -1
		for i := range jobs {
			if jobs[i].ID == jobID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.ErrJobNotFound
		}
		if jobs[idx].CustomerID != actorID {
			return apperror.ErrForbidden
		}
		if jobs[idx].Status != from {
			return apperror.New(apperror.ErrCodeInvalidTransition,
				"заявка в статусе "+jobs[idx].Status+" не допускает переход в "+to)
		}
		jobs[idx].Status = to
		job = &jobs[idx]
		return tx.SetJobs(jobs)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Get возвращает заявку по идентификатору.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	var job *models.Job
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		for i := range jobs {
			if jobs[i].ID == id {
				job = &jobs[i]
				return nil
			}
		}
		return apperror.ErrJobNotFound
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// OpenFeed возвращает ленту открытых заявок: без заявок самого
// зрителя и без заявок заблокированных им заказчиков, новые сверху.
// Фильтрация по чёрному списку применяется только здесь — уже
// созданные чаты и предложения она не затрагивает.
func (s *JobService) OpenFeed(ctx context.Context, viewerID string, blockedIDs []string) ([]models.Job, error) {
	blocked := make(map[string]struct{}, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = struct{}{}
	}

	var feed []models.Job
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		feed = make([]models.Job, 0, len(jobs))
		for _, j := range jobs {
			if j.Status != models.JobStatusOpen {
				continue
			}
			if j.CustomerID == viewerID {
				continue
			}
			if _, isBlocked := blocked[j.CustomerID]; isBlocked {
				continue
			}
			feed = append(feed, j)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed, nil
}

// ByCustomer возвращает заявки заказчика, новые сверху.
func (s *JobService) ByCustomer(ctx context.Context, customerID string) ([]models.Job, error) {
	var out []models.Job
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		out = make([]models.Job, 0, len(jobs))
		for _, j := range jobs {
			if j.CustomerID == customerID {
				out = append(out, j)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// OfferCounts возвращает количество предложений по каждой заявке.
func (s *JobService) OfferCounts(ctx context.Context, jobIDs []string) (map[string]int, error) {
	wanted := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = struct{}{}
	}

	counts := make(map[string]int, len(jobIDs))
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		for _, o := range offers {
			if _, ok := wanted[o.JobID]; ok {
				counts[o.JobID]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
