// Package estimator runs bootstrap procedures from the analysis catalog.
//
// Every procedure follows the same template: validate inputs, compute the
// point estimate on the original data, draw replicates from an RNG stream,
// sort the resulting distribution and hand it to the result assembler.
// The engine never logs and keeps no reference to a result once returned.
package estimator

import (
	"context"
	"fmt"
	"math"
	"sort"

	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/domain/core"
	"bootstrapstats/internal/resample"
	"bootstrapstats/internal/result"
	"bootstrapstats/ports"
)

// maxConsecutiveRetries bounds redraws of degenerate replicates
const maxConsecutiveRetries = 1000

// Request is one analysis invocation
type Request struct {
	RunID     core.RunID // Generated when empty
	Analysis  bootstrap.AnalysisID
	Primary   bootstrap.Sample
	Secondary bootstrap.Sample // Required by analyses 2, 4 and 6
	Seed      *int64           // Fixed seed for a reproducible run
	BlockSize int              // Block length for analysis 10; zero selects the engine default
}

// Engine dispatches requests to catalog procedures
type Engine struct {
	rng        ports.RNGPort
	assembler  *result.Assembler
	replicates int
	blockSize  int
	catalog    map[bootstrap.AnalysisID]Procedure
}

// Option configures an Engine
type Option func(*Engine)

// WithReplicates overrides the number of bootstrap draws (default 1000)
func WithReplicates(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.replicates = n
	}
}

// WithPreviewSize sets how many sorted distribution values a result carries
func WithPreviewSize(n int) Option {
	return func(e *Engine) {
		e.assembler = result.NewAssembler(n)
	}
}

// WithBlockSize sets the default block length for the block bootstrap
func WithBlockSize(n int) Option {
	return func(e *Engine) {
		e.blockSize = n
	}
}

// NewEngine builds an engine over the full catalog. It panics if a catalogued
// analysis has no procedure, so a gap surfaces at construction rather than
// on the first request.
func NewEngine(rng ports.RNGPort, opts ...Option) *Engine {
	e := &Engine{
		rng:        rng,
		assembler:  result.NewAssembler(result.DefaultPreviewSize),
		replicates: bootstrap.DefaultReplicates,
		blockSize:  resample.DefaultBlockSize,
		catalog:    make(map[bootstrap.AnalysisID]Procedure),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, p := range procedures() {
		e.catalog[p.Spec().Analysis] = p
	}
	for _, id := range bootstrap.AllAnalyses() {
		if _, ok := e.catalog[id]; !ok {
			panic(fmt.Sprintf("estimator: analysis %s has no procedure", id))
		}
	}
	return e
}

// Replicates returns the configured number of draws per run
func (e *Engine) Replicates() int { return e.replicates }

// Spec describes the procedure behind id
func (e *Engine) Spec(id bootstrap.AnalysisID) (bootstrap.EstimatorSpec, error) {
	p, ok := e.catalog[id]
	if !ok {
		return bootstrap.EstimatorSpec{}, core.NewUnsupportedAnalysisError(id.String(), "not in catalog")
	}
	return p.Spec(), nil
}

// Specs lists every procedure in catalog order
func (e *Engine) Specs() []bootstrap.EstimatorSpec {
	ids := bootstrap.AllAnalyses()
	out := make([]bootstrap.EstimatorSpec, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.catalog[id].Spec())
	}
	return out
}

// Run executes one analysis to completion. Structural input problems are
// reported before any resampling starts.
func (e *Engine) Run(ctx context.Context, req Request) (*bootstrap.AnalysisResult, error) {
	p, ok := e.catalog[req.Analysis]
	if !ok {
		return nil, core.NewUnsupportedAnalysisError(req.Analysis.String(), "not in catalog")
	}
	spec := p.Spec()
	if !spec.Implemented {
		return nil, p.validate(input{})
	}

	in, err := e.prepare(spec, req)
	if err != nil {
		return nil, err
	}
	if err := p.validate(in); err != nil {
		return nil, err
	}

	estimate, err := p.estimate(in)
	if err != nil {
		return nil, fmt.Errorf("analysis %s estimate: %w", spec.Analysis, err)
	}
	if math.IsNaN(estimate) || math.IsInf(estimate, 0) {
		return nil, core.NewDegenerateError(fmt.Sprintf("%s of the input is not finite", spec.Statistic))
	}

	src, err := e.stream(ctx, spec.Analysis, req.Seed)
	if err != nil {
		return nil, err
	}

	dist, skipped, err := e.replicate(p, src, in)
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", spec.Analysis, err)
	}

	res, err := e.assembler.Assemble(result.Outcome{
		Spec:         spec,
		Estimate:     estimate,
		Distribution: dist,
		Skipped:      skipped,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis %s: %w", spec.Analysis, err)
	}

	res.RunID = req.RunID
	if res.RunID == "" {
		res.RunID = core.NewRunID()
	}
	if req.Seed != nil {
		seed := *req.Seed
		res.Seed = &seed
	}
	res.InputHash = core.HashSamples(in.primary, in.secondary)
	res.CompletedAt = core.Now()
	return res, nil
}

// prepare validates sample shapes and copies them so the caller's slices
// are never touched
func (e *Engine) prepare(spec bootstrap.EstimatorSpec, req Request) (input, error) {
	if err := req.Primary.Validate("first sample"); err != nil {
		return input{}, err
	}
	in := input{primary: req.Primary.Clone(), blockSize: req.BlockSize}
	if in.blockSize == 0 {
		in.blockSize = e.blockSize
	}

	if spec.RequiresSecond {
		if len(req.Secondary) == 0 {
			return input{}, core.NewMissingInputError("second sample")
		}
		if err := req.Secondary.Validate("second sample"); err != nil {
			return input{}, err
		}
		if spec.RequiresEqualLength && len(req.Primary) != len(req.Secondary) {
			return input{}, core.NewLengthMismatchError(len(req.Primary), len(req.Secondary))
		}
		in.secondary = req.Secondary.Clone()
	}
	return in, nil
}

func (e *Engine) stream(ctx context.Context, id bootstrap.AnalysisID, seed *int64) (resample.Source, error) {
	name := "analysis-" + id.String()
	if seed != nil {
		src, err := e.rng.SeededStream(ctx, name, *seed)
		if err != nil {
			return nil, fmt.Errorf("seeded rng stream: %w", err)
		}
		return src, nil
	}
	src, err := e.rng.Stream(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("rng stream: %w", err)
	}
	return src, nil
}

// replicate builds the sorted bootstrap distribution. Skipped draws count
// toward the budget, so the distribution may be shorter than e.replicates.
func (e *Engine) replicate(p Procedure, src resample.Source, in input) ([]float64, int, error) {
	dist := make([]float64, 0, e.replicates)
	skipped, retries := 0, 0

	for drawn := 0; drawn < e.replicates; {
		v, status, err := p.replicate(src, in)
		if err != nil {
			return nil, 0, err
		}
		switch status {
		case drawAccepted:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, core.NewDegenerateError("resample statistic is not finite")
			}
			dist = append(dist, v)
			drawn++
			retries = 0
		case drawSkipped:
			skipped++
			drawn++
			retries = 0
		case drawRetry:
			retries++
			if retries >= maxConsecutiveRetries {
				return nil, 0, core.NewDegenerateError(fmt.Sprintf("%d consecutive degenerate resamples", retries))
			}
		}
	}

	if len(dist) == 0 {
		return nil, skipped, core.NewDegenerateError("every resample was skipped")
	}
	sort.Float64s(dist)
	return dist, skipped, nil
}
