package services

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/maxaizer/job-digest/internal/events"
	"github.com/maxaizer/job-digest/internal/logger"
	"github.com/maxaizer/job-digest/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

type digestRenderer interface {
	PrimarySubject(date time.Time) string
	SecondarySubject(date time.Time) string
	RenderPrimary(postings []entities.Posting, date time.Time) (string, error)
	RenderSecondary(buckets []entities.Bucket, date time.Time) (string, error)
}

type DispatchResult struct {
	PrimarySent   bool
	SecondarySent bool
}

// Dispatcher sends the primary digest on every run and the secondary digest on one weekday.
type Dispatcher struct {
	bus              EventBus.Bus
	mailer           mailer
	renderer         digestRenderer
	secondaryWeekday time.Weekday
	now              func() time.Time
}

func NewDispatcher(bus EventBus.Bus, mailer mailer, renderer digestRenderer, secondaryWeekday time.Weekday) *Dispatcher {
	return &Dispatcher{
		bus:              bus,
		mailer:           mailer,
		renderer:         renderer,
		secondaryWeekday: secondaryWeekday,
		now:              time.Now,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, classification entities.Classification) (DispatchResult, error) {
	var result DispatchResult
	today := d.now()

	if len(classification.Primary) > 0 {
		subject := d.renderer.PrimarySubject(today)
		html, err := d.renderer.RenderPrimary(classification.Primary, today)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).Error(err)
			return result, err
		}

		if err = d.send(ctx, events.PrimaryDigest, subject, html, len(classification.Primary)); err != nil {
			return result, err
		}
		result.PrimarySent = true
	} else {
		log.Info("no new primary postings, primary digest skipped")
	}

	if today.Weekday() != d.secondaryWeekday {
		log.Debugf("secondary digest goes out on %v, today is %v", d.secondaryWeekday, today.Weekday())
		return result, nil
	}

	buckets := classification.NonEmptySecondary()
	if len(buckets) == 0 {
		log.Info("no new secondary postings, secondary digest skipped")
		return result, nil
	}

	subject := d.renderer.SecondarySubject(today)
	html, err := d.renderer.RenderSecondary(buckets, today)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeRender).Error(err)
		return result, err
	}

	total := 0
	for _, bucket := range buckets {
		total += len(bucket.Postings)
	}

	if err = d.send(ctx, events.SecondaryDigest, subject, html, total); err != nil {
		return result, err
	}
	result.SecondarySent = true

	return result, nil
}

func (d *Dispatcher) send(ctx context.Context, kind events.DigestKind, subject, html string, postings int) error {
	if err := d.mailer.Send(ctx, subject, html); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMail).Errorf("failed to send %s digest: %v", kind, err)
		return fmt.Errorf("failed to send %s digest: %w", kind, err)
	}

	d.bus.Publish(events.DigestSentTopic, events.DigestSent{
		Kind:     kind,
		Subject:  subject,
		Postings: postings,
		SentAt:   d.now(),
	})
	return nil
}

// SubscribeDigestMetrics counts and logs every sent digest.
func SubscribeDigestMetrics(bus EventBus.Bus) error {
	return bus.Subscribe(events.DigestSentTopic, func(event events.DigestSent) {
		metrics.DigestsSentCounter.WithLabelValues(string(event.Kind)).Inc()
		log.Infof("%s digest %q sent with %d postings", event.Kind, event.Subject, event.Postings)
	})
}
