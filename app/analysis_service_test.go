package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/internal"
	"bootstrapstats/internal/config"
	"bootstrapstats/internal/errors"
	"bootstrapstats/internal/estimator"
	"bootstrapstats/internal/testkit"
)

func newTestService(t *testing.T, maxConcurrent int, timeout time.Duration) *AnalysisService {
	t.Helper()
	kit := testkit.NewTestKit()
	engine := estimator.NewEngine(kit.RNGAdapter(), estimator.WithReplicates(200))
	return NewAnalysisService(engine, maxConcurrent, timeout, internal.NewLogger(internal.LogLevelError))
}

func TestAnalysisService_RunText(t *testing.T) {
	svc := newTestService(t, 2, time.Second)

	res, err := svc.RunText(context.Background(), TextRequest{
		Analysis: bootstrap.AnalysisMean,
		Data1:    "1, 2, abc, 3, 4, 5,",
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, res.Estimate)
	assert.Equal(t, 200, res.Replicates)
	assert.NotEmpty(t, res.RunID)
}

func TestAnalysisService_ErrorCodes(t *testing.T) {
	svc := newTestService(t, 1, time.Second)
	ctx := context.Background()

	tests := []struct {
		name string
		req  TextRequest
		code string
	}{
		{"empty primary", TextRequest{Analysis: bootstrap.AnalysisMean, Data1: "x, y"}, errors.CodeInvalidInput},
		{"missing second", TextRequest{Analysis: bootstrap.AnalysisMeanDifference, Data1: "1,2"}, errors.CodeMissingInput},
		{"length mismatch", TextRequest{Analysis: bootstrap.AnalysisCorrelation, Data1: "1,2,3", Data2: "1,2"}, errors.CodeLengthMismatch},
		{"unimplemented", TextRequest{Analysis: bootstrap.AnalysisRegression, Data1: "1,2,3", Data2: "1,2,3"}, errors.CodeUnsupportedAnalysis},
		{"unknown", TextRequest{Analysis: 42, Data1: "1"}, errors.CodeUnsupportedAnalysis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RunText(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestAnalysisService_BusyWhenSlotsTaken(t *testing.T) {
	svc := newTestService(t, 1, 20*time.Millisecond)
	require.NoError(t, svc.sem.Acquire(context.Background(), 1))
	defer svc.sem.Release(1)

	_, err := svc.Run(context.Background(), AnalysisRequest{
		Analysis: bootstrap.AnalysisMean,
		Primary:  []float64{1, 2, 3},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeBusy, errors.GetCode(err))
}

func TestAnalysisService_CancelledContext(t *testing.T) {
	svc := newTestService(t, 1, time.Second)
	require.NoError(t, svc.sem.Acquire(context.Background(), 1))
	defer svc.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, AnalysisRequest{Analysis: bootstrap.AnalysisMean, Primary: []float64{1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalysisService_SeedReproducible(t *testing.T) {
	svc := newTestService(t, 4, time.Second)
	seed := int64(99)
	req := AnalysisRequest{Analysis: bootstrap.AnalysisMedian, Primary: []float64{4, 8, 15, 16, 23, 42}, Seed: &seed}

	a, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Preview, b.Preview)
	assert.Equal(t, a.Intervals, b.Intervals)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestAnalysisService_Catalog(t *testing.T) {
	svc := newTestService(t, 1, time.Second)

	assert.Len(t, svc.Exercises(), 10)

	ex, err := svc.Exercise(bootstrap.AnalysisCorrelation)
	require.NoError(t, err)
	assert.True(t, ex.HasSecondInput())

	_, err = svc.Exercise(0)
	assert.Equal(t, errors.CodeUnsupportedAnalysis, errors.GetCode(err))

	spec, err := svc.Spec(bootstrap.AnalysisMeanDifference)
	require.NoError(t, err)
	assert.True(t, spec.Verdict)
}

func TestNewAnalysisServiceFromConfig(t *testing.T) {
	seed := int64(5)
	cfg := &config.Config{Analysis: config.AnalysisConfig{
		Seed: &seed, MaxConcurrent: 2, QueueTimeout: time.Second, PreviewSize: 10, BlockSize: 2,
	}}
	svc := NewAnalysisServiceFromConfig(cfg, internal.NewLogger(internal.LogLevelError))

	res, err := svc.Run(context.Background(), AnalysisRequest{
		Analysis: bootstrap.AnalysisBlockVolatility,
		Primary:  []float64{1, 3, 2, 5, 4, 6},
	})
	require.NoError(t, err)
	assert.Len(t, res.Preview, 10)
	assert.Equal(t, bootstrap.DefaultReplicates, res.Replicates)
}
