package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
	"github.com/ignatzorin/workova-backend/internal/repository"
	"github.com/ignatzorin/workova-backend/internal/validation"
)

// ReportService ведёт журнал жалоб. Журнал append-only: жалобы не
// редактируются, не удаляются и не меняют состояние своих целей.
type ReportService struct {
	store *repository.Store
}

// NewReportService создаёт сервис жалоб.
func NewReportService(store *repository.Store) *ReportService {
	return &ReportService{store: store}
}

// CreateReportInput содержит данные жалобы.
type CreateReportInput struct {
	ReporterID string
	TargetType string
	TargetID   string
	Reason     string
}

// Create добавляет жалобу в журнал. Существование цели не проверяется:
// жалоба на уже удалённый объект остаётся валидной уликой для
// разбирательства.
func (s *ReportService) Create(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if _, ok := models.ValidReportTargets[in.TargetType]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный тип цели жалобы")
	}
	if err := validation.ValidateNonEmpty("идентификатор цели", in.TargetID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNonEmpty("причина жалобы", in.Reason); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	report := models.Report{
		ID:         uuid.NewString(),
		ReporterID: in.ReporterID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Reason:     strings.TrimSpace(in.Reason),
		CreatedAt:  time.Now().UTC(),
	}

	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		reports, err := tx.Reports()
		if err != nil {
			return err
		}
		return tx.SetReports(append(reports, report))
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ByReporter возвращает жалобы пользователя, новые сверху.
func (s *ReportService) ByReporter(ctx context.Context, reporterID string) ([]models.Report, error) {
	var out []models.Report
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		reports, err := tx.Reports()
		if err != nil {
			return err
		}
		out = make([]models.Report, 0, len(reports))
		for _, r := range reports {
			if r.ReporterID == reporterID {
				out = append(out, r)
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
