package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	"github.com/polkiloo/meetsum/internal/pkg/report"
)

// ExportUseCase renders finished analyses as PDF for Pro users.
type ExportUseCase struct {
	analyses repository.AnalysisRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewExportUseCase constructs ExportUseCase.
func NewExportUseCase(analyses repository.AnalysisRepository, users repository.UserRepository) *ExportUseCase {
	return &ExportUseCase{analyses: analyses, users: users, now: time.Now}
}

// PDF renders analysis id of userID.
func (u *ExportUseCase) PDF(ctx context.Context, userID, id string) ([]byte, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !usr.Pro {
		return nil, domainErrors.ErrProRequired
	}

	analysis, err := u.analyses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if analysis.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	if analysis.Status != model.AnalysisStatusDone {
		return nil, domainErrors.ErrNotReady
	}

	return report.Render(report.Report{
		Summary:     analysis.Summary,
		Sentiment:   analysis.Sentiment,
		GeneratedAt: u.now(),
	})
}
