package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/samber/lo"
)

const (
	dailyDecay  = 0.05
	maxDecay    = 1.0
	hoursPerDay = 24
)

var publishedLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

type ScoringRules struct {
	Strategy         config.ScoringStrategy
	Keywords         []string
	Languages        []string
	PrimaryCountry   string
	SecondaryCountry string
	SeniorityTerms   []string
	Headhunters      []string
	RecencyDecay     bool
}

func NewScoringRules(search config.SearchConfig, scoring config.ScoringConfig) ScoringRules {
	lower := func(s string, _ int) string { return strings.ToLower(s) }
	return ScoringRules{
		Strategy:         scoring.Strategy,
		Keywords:         lo.Map(search.Keywords, lower),
		Languages:        search.Languages,
		PrimaryCountry:   scoring.PrimaryCountry,
		SecondaryCountry: scoring.SecondaryCountry,
		SeniorityTerms:   lo.Map(scoring.SeniorityTerms, lower),
		Headhunters:      scoring.Headhunters,
		RecencyDecay:     scoring.RecencyDecay,
	}
}

type Scorer struct {
	rules ScoringRules
	now   func() time.Time
}

func NewScorer(rules ScoringRules) *Scorer {
	return &Scorer{rules: rules, now: time.Now}
}

func (s *Scorer) Score(posting entities.Posting) float64 {
	var score float64
	if s.rules.Strategy == config.ExtendedScoring {
		score = s.extendedScore(posting)
	} else {
		score = s.simpleScore(posting)
	}

	if s.rules.RecencyDecay {
		score -= s.decay(posting.Published)
	}
	return score
}

// ScoreAll returns scored copies sorted by descending score; ties keep their input order.
func (s *Scorer) ScoreAll(postings []entities.Posting) []entities.Posting {
	scored := lo.Map(postings, func(p entities.Posting, _ int) entities.Posting {
		p.Score = s.Score(p)
		return p
	})

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (s *Scorer) simpleScore(posting entities.Posting) float64 {
	var score float64
	text := strings.ToLower(posting.Title + " " + posting.Description)

	for _, keyword := range s.rules.Keywords {
		if strings.Contains(text, keyword) {
			score += 2.0
		}
	}

	if strings.EqualFold(posting.Country, s.rules.PrimaryCountry) {
		score += 2.0
	}

	if posting.Language != "" && lo.Contains(s.rules.Languages, posting.Language) {
		score += 1.0
	}

	return score
}

func (s *Scorer) extendedScore(posting entities.Posting) float64 {
	var score float64
	title := strings.ToLower(posting.Title)
	description := strings.ToLower(posting.Description)

	for _, keyword := range s.rules.Keywords {
		if strings.Contains(title, keyword) {
			score += 4.0
		} else if strings.Contains(description, keyword) {
			score += 2.0
		}
	}

	if lo.SomeBy(s.rules.SeniorityTerms, func(term string) bool { return strings.Contains(title, term) }) {
		score += 4.0
	}

	if lo.SomeBy(s.rules.Headhunters, func(brand string) bool { return strings.EqualFold(brand, posting.Source) }) {
		score += 5.0
	}

	switch {
	case strings.EqualFold(posting.Country, s.rules.PrimaryCountry):
		score += 4.0
	case strings.EqualFold(posting.Country, s.rules.SecondaryCountry):
		score += 2.0
	}

	return score
}

// decay is 0.05 per whole day since publication, at most 1.0. Unknown or future dates cost nothing.
func (s *Scorer) decay(published string) float64 {
	publishedAt, ok := parsePublished(published)
	if !ok {
		return 0
	}

	age := s.now().Sub(publishedAt)
	if age <= 0 {
		return 0
	}

	days := math.Floor(age.Hours() / hoursPerDay)
	return math.Min(days*dailyDecay, maxDecay)
}

func parsePublished(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
