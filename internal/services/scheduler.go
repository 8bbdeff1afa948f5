package services

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type runner interface {
	Run(ctx context.Context) (RunReport, error)
}

// Scheduler runs the pipeline on a cron spec; a run that is still going makes the next tick a no-op.
type Scheduler struct {
	pipeline runner
	cron     *cron.Cron
	ctx      context.Context
	running  sync.Mutex
}

func NewScheduler(ctx context.Context, pipeline runner, spec string) (*Scheduler, error) {

	if spec == "" {
		return nil, errors.New("cron spec must not be empty")
	}

	s := &Scheduler{
		pipeline: pipeline,
		cron:     cron.New(),
		ctx:      ctx,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, errors.Wrapf(err, "invalid cron spec %q", spec)
	}

	s.cron.Start()
	log.Infof("scheduler started with spec %q", spec)
	return s, nil
}

// Stop waits for a running pipeline to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	if !s.running.TryLock() {
		log.Warn("previous run is still in progress, skipping")
		return
	}
	defer s.running.Unlock()

	startTime := time.Now()
	log.Infof("running pipeline at %v", startTime)

	report, err := s.pipeline.Run(s.ctx)
	if err != nil {
		log.Errorf("pipeline run failed after %v: %v", time.Since(startTime), err)
		return
	}
	log.Infof("pipeline run ended after %v, new postings: %d", time.Since(startTime), report.New)
}
