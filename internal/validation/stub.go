package validation

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/innov8-labs/innov8/internal/model"
)

// StubProvider produces deterministic reports from curated market data.
// Used in development and as the default when no API key is configured.
// The same idea always yields the same report.
type StubProvider struct{}

// NewStubProvider creates a provider backed by the category market tables.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Name identifies the provider.
func (p *StubProvider) Name() string { return "stub" }

// Validate builds a report from the idea's category profile. Scores are
// derived from the profile plus a small stable offset from the idea content
// so reports differ between ideas without any randomness.
func (p *StubProvider) Validate(_ context.Context, idea model.Idea) (model.ValidationReport, error) {
	profile := profileFor(idea.Category)
	category := normalizeCategory(idea.Category)

	// 0-9 offset, stable per idea.
	offset := int(contentHash(idea.Title+idea.Description) % 10)

	desirability := model.ClampScore(55 + int(profile.GrowthPct) + offset)
	validity := model.ClampScore(50 + int(profile.MarketSizeB/10) + offset)
	feasibility := model.ClampScore(60 + offset)

	competitors := make([]string, 0, len(profile.Competitors))
	for _, c := range profile.Competitors {
		competitors = append(competitors, fmt.Sprintf("%s operates in the %s space", c, category))
	}

	report := model.ValidationReport{
		MarketAnalysis: fmt.Sprintf(
			"The %s market is valued at roughly $%.0fB and growing about %.0f%% annually. %s %q enters a market with proven demand.",
			category, profile.MarketSizeB, profile.GrowthPct, profile.Trend, idea.Title),
		CompetitorAnalysis: competitors,
		TechnicalFeasibility: fmt.Sprintf(
			"Building %q is achievable with current %s tooling. The main effort is product scope, not novel technology.",
			idea.Title, category),
		Recommendations: []string{
			fmt.Sprintf("Study how %s positions itself and find an underserved segment", profile.Competitors[0]),
			"Ship a narrow MVP to a specific audience before broadening",
			fmt.Sprintf("Ride the current trend: %s", strings.TrimSuffix(profile.Trend, ".")),
		},
		DesirabilityScore: desirability,
		ValidityScore:     validity,
		FeasibilityScore:  feasibility,
		OverallScore:      overallScore(desirability, validity, feasibility),
		Sources:           fallbackSources(),
	}
	return report, nil
}

func contentHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
