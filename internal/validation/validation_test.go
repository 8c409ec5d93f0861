package validation

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innov8-labs/innov8/internal/model"
)

type fakeProvider struct {
	report model.ValidationReport
	err    error
	delay  time.Duration
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Validate(ctx context.Context, _ model.Idea) (model.ValidationReport, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return model.ValidationReport{}, ctx.Err()
		}
	}
	return f.report, f.err
}

func testIdea() model.Idea {
	return model.Idea{
		ID:          "idea-1",
		Title:       "AI-powered recipe planner",
		Description: "Plans weekly meals from what is already in the fridge.",
		Category:    "ai-ml",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func completeReport() model.ValidationReport {
	return model.ValidationReport{
		MarketAnalysis:       "Strong market.",
		CompetitorAnalysis:   []string{"A", "B"},
		TechnicalFeasibility: "Very feasible.",
		Recommendations:      []string{"Do it"},
		DesirabilityScore:    90,
		ValidityScore:        80,
		FeasibilityScore:     70,
		OverallScore:         80,
	}
}

func TestService_PassesThroughCompleteReport(t *testing.T) {
	svc := NewService(&fakeProvider{report: completeReport()}, 0, testLogger())

	got := svc.Validate(context.Background(), testIdea())
	assert.Equal(t, "Strong market.", got.MarketAnalysis)
	assert.Equal(t, 80, got.OverallScore)
	// Nil list fields are normalized so persisted JSON never holds null.
	assert.NotNil(t, got.Sources)
}

func TestService_FallsBackOnProviderError(t *testing.T) {
	svc := NewService(&fakeProvider{err: errors.New("upstream down")}, 0, testLogger())

	got := svc.Validate(context.Background(), testIdea())
	assert.True(t, got.Complete(), "fallback report must be complete")
	require.Len(t, got.Sources, 3)
	assert.Equal(t, "Statista Market Research 2024", got.Sources[0].Source)
}

func TestService_FallsBackOnIncompleteReport(t *testing.T) {
	incomplete := completeReport()
	incomplete.MarketAnalysis = ""
	svc := NewService(&fakeProvider{report: incomplete}, 0, testLogger())

	got := svc.Validate(context.Background(), testIdea())
	assert.True(t, got.Complete())
	assert.NotEmpty(t, got.MarketAnalysis)
}

func TestService_TimeoutTriggersFallback(t *testing.T) {
	slow := &fakeProvider{report: completeReport(), delay: time.Second}
	svc := NewService(slow, 10*time.Millisecond, testLogger())

	start := time.Now()
	got := svc.Validate(context.Background(), testIdea())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.True(t, got.Complete())
}

func TestService_RecomputesOverallScore(t *testing.T) {
	r := completeReport()
	r.DesirabilityScore = 90
	r.ValidityScore = 80
	r.FeasibilityScore = 71
	r.OverallScore = 5 // inconsistent with the components
	svc := NewService(&fakeProvider{report: r}, 0, testLogger())

	got := svc.Validate(context.Background(), testIdea())
	assert.Equal(t, 80, got.OverallScore) // round((90+80+71)/3)
}

func TestService_ClampsOutOfRangeScores(t *testing.T) {
	r := completeReport()
	r.DesirabilityScore = 250
	svc := NewService(&fakeProvider{report: r}, 0, testLogger())

	got := svc.Validate(context.Background(), testIdea())
	// 250 is out of range, so the report is treated as incomplete.
	assert.True(t, got.Complete())
	assert.LessOrEqual(t, got.DesirabilityScore, 100)
}

func TestStubProvider_Deterministic(t *testing.T) {
	stub := NewStubProvider()
	idea := testIdea()

	first, err := stub.Validate(context.Background(), idea)
	require.NoError(t, err)
	second, err := stub.Validate(context.Background(), idea)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Complete())
	assert.Contains(t, first.MarketAnalysis, "ai-ml")
}

func TestStubProvider_DifferentIdeasCanDiffer(t *testing.T) {
	stub := NewStubProvider()

	a, err := stub.Validate(context.Background(), testIdea())
	require.NoError(t, err)

	other := testIdea()
	other.Category = "fintech"
	b, err := stub.Validate(context.Background(), other)
	require.NoError(t, err)

	assert.NotEqual(t, a.MarketAnalysis, b.MarketAnalysis)
}

func TestStubProvider_UnknownCategoryDefaults(t *testing.T) {
	stub := NewStubProvider()
	idea := testIdea()
	idea.Category = "underwater-basket-weaving"

	got, err := stub.Validate(context.Background(), idea)
	require.NoError(t, err)
	assert.True(t, got.Complete())
	assert.Contains(t, got.MarketAnalysis, "saas")
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "ai-ml", normalizeCategory("AI ML"))
	assert.Equal(t, "e-commerce", normalizeCategory("E_Commerce"))
	assert.Equal(t, "saas", normalizeCategory(""))
	assert.Equal(t, "saas", normalizeCategory("unknown"))
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 70, overallScore(70, 70, 70))
	assert.Equal(t, 80, overallScore(90, 80, 71))
	assert.Equal(t, 1, overallScore(1, 1, 1))
	assert.Equal(t, 100, overallScore(100, 100, 100))
}
