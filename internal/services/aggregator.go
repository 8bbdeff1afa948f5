package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/maxaizer/job-digest/internal/metrics"
	"github.com/maxaizer/job-digest/internal/sources"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Aggregator struct {
	sources   []sources.Source
	countries []string
	limit     int
	validate  *validator.Validate
}

func NewAggregator(srcs []sources.Source, search config.SearchConfig) *Aggregator {
	return &Aggregator{
		sources:   srcs,
		countries: search.Countries,
		limit:     search.FetchLimitPerSource,
		validate:  validator.New(),
	}
}

// Aggregate asks every source for every country and merges the results. Postings sharing a
// (source, id) key collapse into one: the later content wins, the first position is kept.
func (a *Aggregator) Aggregate(ctx context.Context) (postings []entities.Posting, fetched int, err error) {
	positions := make(map[entities.PostingKey]int)

	for _, source := range a.sources {
		for _, country := range a.countries {
			if err = ctx.Err(); err != nil {
				return nil, fetched, err
			}

			batch := source.Fetch(ctx, country, a.limit)
			fetched += len(batch)
			metrics.FetchedPostingsCounter.WithLabelValues(source.Name()).Add(float64(len(batch)))
			log.Debugf("%s returned %d postings for %s", source.Name(), len(batch), country)

			for _, posting := range batch {
				posting, ok := a.normalize(posting, source.Name())
				if !ok {
					continue
				}

				if i, found := positions[posting.Key()]; found {
					postings[i] = posting
					continue
				}
				positions[posting.Key()] = len(postings)
				postings = append(postings, posting)
			}
		}
	}

	return postings, fetched, nil
}

func (a *Aggregator) normalize(posting entities.Posting, sourceName string) (entities.Posting, bool) {
	if posting.Source == "" {
		posting.Source = sourceName
	}
	if posting.ID == "" {
		posting.ID = entities.DeriveID(posting.URL, posting.Title)
	}

	if err := a.validate.Struct(posting); err != nil {
		log.Warnf("dropping posting %q from %s: %v", posting.Title, sourceName, err)
		return posting, false
	}
	return posting, true
}

// FilterBySalary drops postings whose advertised salary is known and below minSalary.
func FilterBySalary(postings []entities.Posting, minSalary float64) []entities.Posting {
	if minSalary <= 0 {
		return postings
	}
	return lo.Filter(postings, func(p entities.Posting, _ int) bool {
		return p.Salary == 0 || p.Salary >= minSalary
	})
}
