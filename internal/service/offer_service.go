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

// OfferService управляет предложениями исполнителей и сценарием
// принятия предложения.
type OfferService struct {
	store *repository.Store
}

// NewOfferService создаёт сервис предложений.
func NewOfferService(store *repository.Store) *OfferService {
	return &OfferService{store: store}
}

// CreateOfferInput содержит данные нового предложения.
type CreateOfferInput struct {
	JobID    string
	WorkerID string
	Price    float64
	ETAText  string
	Message  string
}

// AcceptResult — итог принятия предложения: само предложение и чат,
// найденный или созданный для пары заказчик-исполнитель.
type AcceptResult struct {
	Offer models.Offer
	Chat  models.Chat
}

// Create валидирует и публикует предложение по открытой заявке.
// Сопроводительное сообщение и срок проходят модерацию, сообщение
// первым. Имя исполнителя снимается из анкеты, при её отсутствии —
// из аккаунта.
func (s *OfferService) Create(ctx context.Context, in CreateOfferInput) (*models.Offer, error) {
	if err := validation.ValidatePrice(in.Price); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateETA(in.ETAText); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("сопроводительное сообщение", in.Message, 0, validation.MaxOfferMessageLength); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if res := moderation.Check(in.Message); !res.IsClean {
		return nil, apperror.New(apperror.ErrCodeModeration, res.Reason)
	}
	if res := moderation.Check(in.ETAText); !res.IsClean {
		return nil, apperror.New(apperror.ErrCodeModeration, res.Reason)
	}

	var offer models.Offer
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		var job *models.Job
		for i := range jobs {
			if jobs[i].ID == in.JobID {
				job = &jobs[i]
				break
			}
		}
		if job == nil {
			return apperror.ErrJobNotFound
		}
		if job.Status != models.JobStatusOpen {
			return apperror.New(apperror.ErrCodeInvalidTransition, "заявка уже не принимает предложения")
		}
		if job.CustomerID == in.WorkerID {
			return apperror.New(apperror.ErrCodeValidation, "нельзя откликнуться на собственную заявку")
		}

		users, err := tx.Users()
		if err != nil {
			return err
		}
		worker, ok := users[in.WorkerID]
		if !ok {
			return apperror.ErrAccountNotFound
		}

		workers, err := tx.Workers()
		if err != nil {
			return err
		}
		workerName := worker.DisplayName
		if profile, ok := workers[in.WorkerID]; ok && profile.DisplayName != "" {
			workerName = profile.DisplayName
		}

		offers, err := tx.Offers()
		if err != nil {
			return err
		}

		offer = models.Offer{
			ID:         uuid.NewString(),
			JobID:      job.ID,
			WorkerID:   in.WorkerID,
			WorkerName: workerName,
			CustomerID: job.CustomerID,
			Price:      in.Price,
			ETAText:    strings.TrimSpace(in.ETAText),
			Message:    strings.TrimSpace(in.Message),
			Status:     models.OfferStatusSent,
			CreatedAt:  time.Now().UTC(),
		}
		return tx.SetOffers(append(offers, offer))
	})
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// Accept принимает предложение от имени заказчика. Вся цепочка идёт
// одной критической секцией: предложение становится accepted, остальные
// sent-предложения той же заявки — rejected, заявка — booked, затем
// находится или создаётся чат пары. Либо применяется всё, либо ничего.
func (s *OfferService) Accept(ctx context.Context, offerID, actorID string) (*AcceptResult, error) {
	var result AcceptResult
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		idx := -1
		for i := range offers {
			if offers[i].ID == offerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.ErrOfferNotFound
		}
		if offers[idx].Status != models.OfferStatusSent {
			return apperror.New(apperror.ErrCodeOfferNotActionable,
				"предложение в статусе "+offers[idx].Status+" уже нельзя принять")
		}

		jobs, err := tx.Jobs()
		if err != nil {
			return err
		}
		jobIdx := -1
		for i := range jobs {
			if jobs[i].ID == offers[idx].JobID {
				jobIdx = i
				break
			}
		}
		if jobIdx < 0 {
			return apperror.ErrJobNotFound
		}
		if jobs[jobIdx].CustomerID != actorID {
			return apperror.ErrForbidden
		}
		if jobs[jobIdx].Status != models.JobStatusOpen {
			return apperror.New(apperror.ErrCodeInvalidTransition,
				"заявка в статусе "+jobs[jobIdx].Status+" не допускает принятие предложения")
		}

		offers[idx].Status = models.OfferStatusAccepted
		for i := range offers {
			if i != idx && offers[i].JobID == offers[idx].JobID && offers[i].Status == models.OfferStatusSent {
				offers[i].Status = models.OfferStatusRejected
			}
		}
		if err := tx.SetOffers(offers); err != nil {
			return err
		}

		jobs[jobIdx].Status = models.JobStatusBooked
		if err := tx.SetJobs(jobs); err != nil {
			return err
		}

		chat, err := findOrCreateChat(tx, &jobs[jobIdx], &offers[idx])
		if err != nil {
			return err
		}

		result.Offer = offers[idx]
		result.Chat = *chat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// findOrCreateChat возвращает чат пары заказчик-исполнитель по заявке,
// создавая его при отсутствии. Имена участников фиксируются на момент
// создания.
func findOrCreateChat(tx *repository.Tx, job *models.Job, offer *models.Offer) (*models.Chat, error) {
	chats, err := tx.Chats()
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if chats[i].JobID == job.ID && chats[i].HasMember(job.CustomerID) && chats[i].HasMember(offer.WorkerID) {
			return &chats[i], nil
		}
	}

	chat := models.Chat{
		ID:       uuid.NewString(),
		JobID:    job.ID,
		JobTitle: job.Title,
		Members:  []string{job.CustomerID, offer.WorkerID},
		MemberNames: map[string]string{
			job.CustomerID: job.CustomerName,
			offer.WorkerID: offer.WorkerName,
		},
		LastMessage: "",
		UpdatedAt:   time.Now().UTC(),
	}
	if err := tx.SetChats(append(chats, chat)); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Reject отклоняет sent-предложение. Доступно заказчику заявки.
func (s *OfferService) Reject(ctx context.Context, offerID, actorID string) (*models.Offer, error) {
	return s.resolve(ctx, offerID, actorID, models.OfferStatusRejected, false)
}

// Withdraw отзывает sent-предложение. Доступно только его автору.
// Отозванное предложение терминально и не участвует в каскаде принятия.
func (s *OfferService) Withdraw(ctx context.Context, offerID, actorID string) (*models.Offer, error) {
	return s.resolve(ctx, offerID, actorID, models.OfferStatusWithdrawn, true)
}

// resolve переводит sent-предложение в терминальный статус.
func (s *OfferService) resolve(ctx context.Context, offerID, actorID, to string, byWorker bool) (*models.Offer, error) {
	var offer *models.Offer
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		idx := -1
		for i := range offers {
			if offers[i].ID == offerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.ErrOfferNotFound
		}
		if byWorker {
			if offers[idx].WorkerID != actorID {
				return apperror.ErrForbidden
			}
		} else if offers[idx].CustomerID != actorID {
			return apperror.ErrForbidden
		}
		if offers[idx].Status != models.OfferStatusSent {
			return apperror.New(apperror.ErrCodeOfferNotActionable,
				"предложение в статусе "+offers[idx].Status+" уже разрешено")
		}
		offers[idx].Status = to
		offer = &offers[idx]
		return tx.SetOffers(offers)
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// Get возвращает предложение по идентификатору.
func (s *OfferService) Get(ctx context.Context, id string) (*models.Offer, error) {
	var offer *models.Offer
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		for i := range offers {
			if offers[i].ID == id {
				offer = &offers[i]
				return nil
			}
		}
		return apperror.ErrOfferNotFound
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// ForJob возвращает предложения по заявке, новые сверху.
func (s *OfferService) ForJob(ctx context.Context, jobID string) ([]models.Offer, error) {
	return s.filter(ctx, func(o *models.Offer) bool { return o.JobID == jobID })
}

// ByWorker возвращает предложения исполнителя, новые сверху.
func (s *OfferService) ByWorker(ctx context.Context, workerID string) ([]models.Offer, error) {
	return s.filter(ctx, func(o *models.Offer) bool { return o.WorkerID == workerID })
}

func (s *OfferService) filter(ctx context.Context, keep func(*models.Offer) bool) ([]models.Offer, error) {
	var out []models.Offer
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		offers, err := tx.Offers()
		if err != nil {
			return err
		}
		out = make([]models.Offer, 0, len(offers))
		for i := range offers {
			if keep(&offers[i]) {
				out = append(out, offers[i])
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
