package services

import (
	"testing"
	"time"

	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/stretchr/testify/assert"
)

var scoringNow = time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC)

func testRules(strategy config.ScoringStrategy) ScoringRules {
	search := config.SearchConfig{
		Keywords:  []string{"PMO", "governança", "CAPEX"},
		Languages: []string{"pt", "es"},
	}
	scoring := config.ScoringConfig{
		Strategy:         strategy,
		PrimaryCountry:   "Brazil",
		SecondaryCountry: "Spain",
		SeniorityTerms:   []string{"Senior", "gerente", "lead"},
		Headhunters:      []string{"Michael Page", "Hays", "Robert Half"},
	}
	return NewScoringRules(search, scoring)
}

func newTestScorer(rules ScoringRules) *Scorer {
	scorer := NewScorer(rules)
	scorer.now = func() time.Time { return scoringNow }
	return scorer
}

func Test_Scorer_Simple(t *testing.T) {
	scorer := newTestScorer(testRules(config.SimpleScoring))

	tests := []struct {
		name     string
		posting  entities.Posting
		expected float64
	}{
		{name: "nothing", posting: entities.Posting{Title: "Chef"}, expected: 0},
		{name: "keywords in title and description", posting: entities.Posting{
			Title: "Analista PMO", Description: "Governança de CAPEX"}, expected: 6},
		{name: "primary country and language", posting: entities.Posting{
			Title: "pmo", Country: "Brazil", Language: "pt"}, expected: 5},
		{name: "secondary country gives nothing", posting: entities.Posting{
			Country: "Spain", Language: "ca"}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.Score(tt.posting))
		})
	}
}

func Test_Scorer_Extended(t *testing.T) {
	scorer := newTestScorer(testRules(config.ExtendedScoring))

	tests := []struct {
		name     string
		posting  entities.Posting
		expected float64
	}{
		{name: "keyword in title", posting: entities.Posting{Title: "PMO analyst"}, expected: 4},
		{name: "keyword only in description", posting: entities.Posting{Description: "pmo"}, expected: 2},
		{name: "seniority", posting: entities.Posting{Title: "Gerente de Obras"}, expected: 4},
		{name: "headhunter", posting: entities.Posting{Source: "Michael Page"}, expected: 5},
		{name: "primary country", posting: entities.Posting{Country: "Brazil"}, expected: 4},
		{name: "secondary country", posting: entities.Posting{Country: "Spain"}, expected: 2},
		{name: "everything", posting: entities.Posting{
			Title: "Senior PMO Lead", Description: "CAPEX", Source: "Hays", Country: "Brazil"}, expected: 4 + 2 + 4 + 5 + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.Score(tt.posting))
		})
	}
}

func Test_Scorer_AddingKeywordToTitleNeverLowersScore(t *testing.T) {
	base := entities.Posting{Title: "Analista", Description: "governança", Country: "Spain", Language: "es"}
	richer := base
	richer.Title = "Analista PMO governança"

	for _, strategy := range []config.ScoringStrategy{config.SimpleScoring, config.ExtendedScoring} {
		scorer := newTestScorer(testRules(strategy))
		assert.GreaterOrEqual(t, scorer.Score(richer), scorer.Score(base), string(strategy))
	}
}

func Test_Scorer_RecencyDecay(t *testing.T) {
	rules := testRules(config.SimpleScoring)
	rules.RecencyDecay = true
	scorer := newTestScorer(rules)

	posting := entities.Posting{Title: "PMO"}

	tests := []struct {
		published string
		expected  float64
	}{
		{published: "", expected: 2},
		{published: "not a date", expected: 2},
		{published: "2026-10-12T08:00:00Z", expected: 2},
		{published: "2026-10-10", expected: 1.9},
		{published: "2026-10-02T12:00:00", expected: 1.5},
		{published: "2025-01-01", expected: 1},
		{published: "2027-01-01", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.published, func(t *testing.T) {
			posting.Published = tt.published
			assert.InDelta(t, tt.expected, scorer.Score(posting), 1e-9)
		})
	}
}

func Test_Scorer_ScoreAll_SortsDescendingAndStable(t *testing.T) {
	scorer := newTestScorer(testRules(config.SimpleScoring))

	scored := scorer.ScoreAll([]entities.Posting{
		{ID: "zero-1"},
		{ID: "high", Title: "PMO CAPEX"},
		{ID: "zero-2"},
		{ID: "mid", Title: "PMO"},
	})

	ids := make([]string, 0, len(scored))
	for _, p := range scored {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"high", "mid", "zero-1", "zero-2"}, ids)
	assert.Equal(t, 4.0, scored[0].Score)
}
