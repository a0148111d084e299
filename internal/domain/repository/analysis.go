package repository

import (
	"context"

	"github.com/polkiloo/meetsum/internal/domain/model"
)

// AnalysisRepository stores summarisation jobs.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *model.Analysis) error
	Get(ctx context.Context, id string) (*model.Analysis, error)
	// SelectBatchForProcessing marks up to limit NEW jobs as PROCESSING and returns them.
	SelectBatchForProcessing(ctx context.Context, limit int) ([]model.Analysis, error)
	Save(ctx context.Context, analysis *model.Analysis) error
}
