package services

import (
	"context"
	"fmt"
	"time"

	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/maxaizer/job-digest/internal/logger"
	"github.com/maxaizer/job-digest/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type seenStore interface {
	HasSeen(ctx context.Context, id, source string) (bool, error)
	MarkSeen(ctx context.Context, id, source, url, title string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RunReport struct {
	Fetched       int
	Unique        int
	New           int
	Primary       int
	Secondary     int
	PrimarySent   bool
	SecondarySent bool
}

// Pipeline runs one batch: aggregate, filter by salary, score, drop seen postings, classify, dispatch.
type Pipeline struct {
	aggregator *Aggregator
	scorer     *Scorer
	store      seenStore
	classifier *Classifier
	dispatcher *Dispatcher
	minSalary  float64
}

func NewPipeline(aggregator *Aggregator, scorer *Scorer, store seenStore, classifier *Classifier,
	dispatcher *Dispatcher, minSalary float64) *Pipeline {

	return &Pipeline{
		aggregator: aggregator,
		scorer:     scorer,
		store:      store,
		classifier: classifier,
		dispatcher: dispatcher,
		minSalary:  minSalary,
	}
}

func (p *Pipeline) Run(ctx context.Context) (RunReport, error) {
	var report RunReport
	startTime := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(startTime).Seconds())
	}()

	postings, fetched, err := p.aggregator.Aggregate(ctx)
	if err != nil {
		return report, fmt.Errorf("aggregation interrupted: %w", err)
	}
	report.Fetched = fetched
	report.Unique = len(postings)

	postings = FilterBySalary(postings, p.minSalary)
	postings = p.scorer.ScoreAll(postings)

	fresh, err := p.filterNew(ctx, postings)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("seen filter failed: %v", err)
		return report, err
	}
	report.New = len(fresh)
	metrics.NewPostingsCounter.Add(float64(len(fresh)))

	classification := p.classifier.Classify(fresh)
	report.Primary = len(classification.Primary)
	for _, bucket := range classification.Secondary {
		report.Secondary += len(bucket.Postings)
	}

	result, err := p.dispatcher.Dispatch(ctx, classification)
	report.PrimarySent = result.PrimarySent
	report.SecondarySent = result.SecondarySent
	if err != nil {
		return report, err
	}

	log.Infof("run finished: fetched %d, unique %d, new %d, primary %d, secondary %d",
		report.Fetched, report.Unique, report.New, report.Primary, report.Secondary)
	return report, nil
}

// filterNew keeps postings not seen before and marks them, all in one store transaction.
func (p *Pipeline) filterNew(ctx context.Context, postings []entities.Posting) ([]entities.Posting, error) {
	fresh := make([]entities.Posting, 0, len(postings))

	err := p.store.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, posting := range postings {
			seen, err := p.store.HasSeen(txCtx, posting.ID, posting.Source)
			if err != nil {
				return err
			}
			if seen {
				continue
			}

			if err = p.store.MarkSeen(txCtx, posting.ID, posting.Source, posting.URL, posting.Title); err != nil {
				return err
			}
			fresh = append(fresh, posting)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fresh, nil
}
