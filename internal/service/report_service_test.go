package service

import (
	"context"
	"testing"

	"github.com/ignatzorin/workova-backend/internal/models"
	"github.com/ignatzorin/workova-backend/internal/pkg/apperror"
)

func TestCreateReportAppendOnly(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	reports := NewReportService(store)
	ctx := context.Background()

	reporter := signUpUser(t, auth, "r@example.com", "Reporter")

	// Цель не обязана существовать: жалоба на удалённый объект валидна.
	report, err := reports.Create(ctx, CreateReportInput{
		ReporterID: reporter.ID,
		TargetType: models.ReportTargetJob,
		TargetID:   "already-deleted-job",
		Reason:     "spam",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if report.ID == "" {
		t.Fatal("жалоба должна получить идентификатор")
	}

	_, err = reports.Create(ctx, CreateReportInput{
		ReporterID: reporter.ID,
		TargetType: "planet",
		TargetID:   "earth",
		Reason:     "too big",
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("неизвестный тип цели должен отклоняться, получено %v", err)
	}

	_, err = reports.Create(ctx, CreateReportInput{
		ReporterID: reporter.ID,
		TargetType: models.ReportTargetUser,
		TargetID:   "u1",
		Reason:     "   ",
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("пустая причина должна отклоняться, получено %v", err)
	}

	list, err := reports.ByReporter(ctx, reporter.ID)
	if err != nil {
		t.Fatalf("ByReporter: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("в журнале должна быть одна жалоба, получено %d", len(list))
	}
}
