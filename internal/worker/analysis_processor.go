package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/meetsum/internal/domain/model"
)

// MeetingFacade exposes the subset of application functionality required by the worker.
type MeetingFacade interface {
	AnalysesForProcessing(ctx context.Context, limit int) ([]model.Analysis, error)
	ProcessAnalysis(ctx context.Context, analysis *model.Analysis) error
}

// AnalysisProcessor claims submitted analyses and runs them on a fixed pool of workers.
type AnalysisProcessor struct {
	facade       MeetingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Analysis
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAnalysisProcessor constructs analysis processor worker pool.
func NewAnalysisProcessor(facade MeetingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *AnalysisProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &AnalysisProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Analysis, batchSize*workers),
	}
}

// Start launches background processing.
func (p *AnalysisProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop cancels in-flight analyses and waits for all workers to finish.
func (p *AnalysisProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *AnalysisProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *AnalysisProcessor) fetchAndDispatch(ctx context.Context) {
	analyses, err := p.facade.AnalysesForProcessing(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch analyses for processing failed", slog.String("error", err.Error()))
		return
	}
	for _, analysis := range analyses {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- analysis:
		}
	}
}

func (p *AnalysisProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case analysis, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handle(ctx, analysis)
		}
	}
}

func (p *AnalysisProcessor) handle(ctx context.Context, analysis model.Analysis) {
	started := time.Now()
	if err := p.facade.ProcessAnalysis(ctx, &analysis); err != nil {
		p.logger.Error("process analysis failed",
			slog.String("analysis_id", analysis.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	p.logger.Info("analysis processed",
		slog.String("analysis_id", analysis.ID),
		slog.String("status", string(analysis.Status)),
		slog.Duration("elapsed", time.Since(started)),
	)
}
