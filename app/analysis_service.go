package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"bootstrapstats/adapters/rng"
	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/domain/catalog"
	"bootstrapstats/domain/core"
	"bootstrapstats/internal"
	"bootstrapstats/internal/config"
	"bootstrapstats/internal/errors"
	"bootstrapstats/internal/estimator"
	"bootstrapstats/internal/input"
)

// AnalysisService is the single entry point the HTTP servers and the CLI use
// to run bootstrap analyses. It bounds concurrent runs and converts engine
// errors into AppErrors.
type AnalysisService struct {
	engine       *estimator.Engine
	sem          *semaphore.Weighted
	queueTimeout time.Duration
	logger       *internal.Logger
}

// AnalysisRequest defines the inputs for one run
type AnalysisRequest struct {
	Analysis  bootstrap.AnalysisID
	Primary   []float64
	Secondary []float64
	Seed      *int64 // optional, overrides the service RNG
	BlockSize int    // optional, analysis 10 only
}

// TextRequest carries comma-separated samples as typed into a form or flag
type TextRequest struct {
	Analysis  bootstrap.AnalysisID
	Data1     string
	Data2     string
	Seed      *int64
	BlockSize int
}

// NewAnalysisService creates an analysis service over an engine
func NewAnalysisService(engine *estimator.Engine, maxConcurrent int, queueTimeout time.Duration, logger *internal.Logger) *AnalysisService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		engine:       engine,
		sem:          semaphore.NewWeighted(int64(maxConcurrent)),
		queueTimeout: queueTimeout,
		logger:       logger.WithPrefix("[AnalysisService]"),
	}
}

// NewAnalysisServiceFromConfig wires the RNG adapter and engine from configuration
func NewAnalysisServiceFromConfig(cfg *config.Config, logger *internal.Logger) *AnalysisService {
	engine := estimator.NewEngine(
		rng.New(cfg.Analysis.Seed),
		estimator.WithPreviewSize(cfg.Analysis.PreviewSize),
		estimator.WithBlockSize(cfg.Analysis.BlockSize),
	)
	return NewAnalysisService(engine, cfg.Analysis.MaxConcurrent, cfg.Analysis.QueueTimeout, logger)
}

// Exercises lists the catalog in display order
func (s *AnalysisService) Exercises() []catalog.Exercise {
	return catalog.All()
}

// Exercise looks up one catalog entry
func (s *AnalysisService) Exercise(id bootstrap.AnalysisID) (catalog.Exercise, error) {
	ex, ok := catalog.Lookup(id)
	if !ok {
		return catalog.Exercise{}, errors.FromDomain(core.NewUnsupportedAnalysisError(id.String(), "not in catalog"))
	}
	return ex, nil
}

// Spec returns the estimator description for an analysis
func (s *AnalysisService) Spec(id bootstrap.AnalysisID) (bootstrap.EstimatorSpec, error) {
	spec, err := s.engine.Spec(id)
	if err != nil {
		return bootstrap.EstimatorSpec{}, errors.FromDomain(err)
	}
	return spec, nil
}

// Run executes one analysis. It waits at most the queue timeout for a free
// slot and returns a BUSY error when none frees up.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*bootstrap.AnalysisResult, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	startTime := time.Now()
	runID := core.NewRunID()
	s.logger.Debug("run %s: analysis %s, n1=%d n2=%d", runID, req.Analysis, len(req.Primary), len(req.Secondary))

	res, err := s.engine.Run(ctx, estimator.Request{
		RunID:     runID,
		Analysis:  req.Analysis,
		Primary:   req.Primary,
		Secondary: req.Secondary,
		Seed:      req.Seed,
		BlockSize: req.BlockSize,
	})
	if err != nil {
		appErr := errors.FromDomain(err)
		if appErr.Code == errors.CodeInternalError {
			s.logger.Error("run %s: analysis %s failed: %v", runID, req.Analysis, err)
		} else {
			s.logger.Info("run %s: analysis %s rejected (%s): %v", runID, req.Analysis, appErr.Code, err)
		}
		return nil, appErr
	}

	s.logger.Info("run %s: analysis %s completed in %s (%d replicates, %d skipped)",
		runID, req.Analysis, time.Since(startTime), res.Replicates, res.Skipped)
	return res, nil
}

// RunText parses comma-separated samples and runs the analysis. Tokens that
// are not finite numbers are dropped.
func (s *AnalysisService) RunText(ctx context.Context, req TextRequest) (*bootstrap.AnalysisResult, error) {
	primary := input.ParseNumbers(req.Data1)
	secondary := input.ParseNumbers(req.Data2)
	if dropped := len(primary.Dropped) + len(secondary.Dropped); dropped > 0 {
		s.logger.Warn("analysis %s: dropped %d non-numeric tokens", req.Analysis, dropped)
	}

	return s.Run(ctx, AnalysisRequest{
		Analysis:  req.Analysis,
		Primary:   primary.Values,
		Secondary: secondary.Values,
		Seed:      req.Seed,
		BlockSize: req.BlockSize,
	})
}

func (s *AnalysisService) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.queueTimeout)
	defer cancel()

	if err := s.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "analysis request cancelled")
		}
		s.logger.Warn("no analysis slot free after %s", s.queueTimeout)
		return errors.Busy(fmt.Sprintf("all analysis slots busy, retry after %s", s.queueTimeout))
	}
	return nil
}
