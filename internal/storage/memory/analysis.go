package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
)

// AnalysisStore keeps summarisation jobs in submission order.
type AnalysisStore struct {
	mu    sync.Mutex
	items map[string]*model.Analysis
	order []string
	now   func() time.Time
}

// NewAnalysisStore creates an empty job store. A nil clock means time.Now.
func NewAnalysisStore(now func() time.Time) *AnalysisStore {
	if now == nil {
		now = time.Now
	}
	return &AnalysisStore{items: make(map[string]*model.Analysis), now: now}
}

func (s *AnalysisStore) Create(_ context.Context, analysis *model.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[analysis.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	s.items[analysis.ID] = cloneAnalysis(analysis)
	s.order = append(s.order, analysis.ID)
	return nil
}

func (s *AnalysisStore) Get(_ context.Context, id string) (*model.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneAnalysis(a), nil
}

func (s *AnalysisStore) SelectBatchForProcessing(_ context.Context, limit int) ([]model.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var batch []model.Analysis
	for _, id := range s.order {
		if len(batch) >= limit {
			break
		}
		a := s.items[id]
		if a.Status != model.AnalysisStatusNew {
			continue
		}
		a.Status = model.AnalysisStatusProcessing
		a.UpdatedAt = s.now()
		batch = append(batch, *cloneAnalysis(a))
	}
	return batch, nil
}

func (s *AnalysisStore) Save(_ context.Context, analysis *model.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[analysis.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.items[analysis.ID] = cloneAnalysis(analysis)
	return nil
}

func cloneAnalysis(a *model.Analysis) *model.Analysis {
	c := *a
	c.ActionItems = slices.Clone(a.ActionItems)
	c.Deadlines = slices.Clone(a.Deadlines)
	c.Keywords = slices.Clone(a.Keywords)
	c.Articles = slices.Clone(a.Articles)
	c.Warnings = slices.Clone(a.Warnings)
	if a.Provenance != nil {
		p := *a.Provenance
		p.Sources = slices.Clone(a.Provenance.Sources)
		c.Provenance = &p
	}
	return &c
}
