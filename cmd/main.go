package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-digest/internal/clients/adzuna"
	"github.com/maxaizer/job-digest/internal/clients/sendgrid"
	"github.com/maxaizer/job-digest/internal/clients/smtp"
	"github.com/maxaizer/job-digest/internal/clients/telegram"
	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/digest"
	"github.com/maxaizer/job-digest/internal/logger"
	"github.com/maxaizer/job-digest/internal/metrics"
	"github.com/maxaizer/job-digest/internal/repositories"
	"github.com/maxaizer/job-digest/internal/services"
	"github.com/maxaizer/job-digest/internal/sources"
	log "github.com/sirupsen/logrus"
)

type mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

type seenStore interface {
	HasSeen(ctx context.Context, id, source string) (bool, error)
	MarkSeen(ctx context.Context, id, source, url, title string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func openStore(ctx context.Context, cfg config.DBConfig) (seenStore, func(), error) {
	if cfg.Driver == config.DriverRedis {
		client, err := repositories.NewRedisClient(ctx, cfg.ConnectionString)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisSeenPostings(client), func() { _ = client.Close() }, nil
	}

	dbContext, err := repositories.NewDbContext(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err = dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		return nil, nil, err
	}

	return repositories.NewSeenPostingsRepository(dbContext.DB), func() { _ = dbContext.Close() }, nil
}

func createSources(cfg *config.Config) []sources.Source {
	var result []sources.Source
	timeout := cfg.Sources.RequestTimeout

	for _, name := range cfg.Sources.Enabled {
		switch name {
		case config.SourceAdzuna:
			client := adzuna.NewClient(cfg.Sources.Adzuna.AppID, cfg.Sources.Adzuna.AppKey)
			if cfg.Sources.Adzuna.MaxRequestsPerSecond > 0 {
				client.SetRateLimit(cfg.Sources.Adzuna.MaxRequestsPerSecond)
			}
			result = append(result, sources.NewAdzunaSource(client, cfg.Search.Keywords, timeout))
		case config.SourceHays:
			result = append(result, sources.NewHays(cfg.Sources.Hays, timeout))
		case config.SourceMichaelPage:
			result = append(result, sources.NewMichaelPage(cfg.Sources.MichaelPage, timeout))
		case config.SourceRobertHalf:
			result = append(result, sources.NewRobertHalf(cfg.Sources.RobertHalf, timeout))
		}
	}

	return result
}

func createMailer(cfg config.MailConfig) mailer {
	switch cfg.Transport {
	case config.TransportSMTP:
		return smtp.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.From, cfg.To)
	case config.TransportTelegram:
		return telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID)
	default:
		return sendgrid.NewClient(cfg.SendGridAPIKey, cfg.From, cfg.To)
	}
}

func createPipeline(cfg *config.Config, store seenStore, bus EventBus.Bus) (*services.Pipeline, error) {
	weekday, err := cfg.Dispatch.Weekday()
	if err != nil {
		return nil, err
	}

	if err = services.SubscribeDigestMetrics(bus); err != nil {
		return nil, err
	}

	aggregator := services.NewAggregator(createSources(cfg), cfg.Search)
	scorer := services.NewScorer(services.NewScoringRules(cfg.Search, cfg.Scoring))
	classifier := services.NewClassifier(cfg.Classifier)
	dispatcher := services.NewDispatcher(bus, createMailer(cfg.Mail), digest.NewRenderer(cfg.Digest), weekday)

	return services.NewPipeline(aggregator, scorer, store, classifier, dispatcher, cfg.Search.MinSalary), nil
}

func runOnce(ctx context.Context, cfg *config.Config, pipeline *services.Pipeline) error {
	_, err := pipeline.Run(ctx)

	if cfg.Metrics.Textfile != "" {
		if writeErr := metrics.WriteTextfile(cfg.Metrics.Textfile); writeErr != nil {
			log.Errorf("can't write metrics textfile: %v", writeErr)
		}
	}

	return err
}

func runScheduled(ctx context.Context, cfg *config.Config, pipeline *services.Pipeline) error {
	if cfg.Metrics.Address != "" {
		metrics.StartMetricsServer(cfg.Metrics.Address)
	}

	scheduler, err := services.NewScheduler(ctx, pipeline, cfg.Schedule.Cron)
	if err != nil {
		return err
	}

	<-ctx.Done()

	log.Info("Shutting down scheduler...")
	scheduler.Stop()
	log.Info("Scheduler stopped.")
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	store, closeStore, err := openStore(ctx, cfg.DB)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("can't open seen postings store: %v", err)
		return err
	}
	defer closeStore()

	pipeline, err := createPipeline(cfg, repositories.NewCachedSeenPostings(store), EventBus.New())
	if err != nil {
		return err
	}

	if cfg.Schedule.Cron != "" {
		return runScheduled(ctx, cfg, pipeline)
	}
	return runOnce(ctx, cfg, pipeline)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(context.Background(), cfg.Logger)
	metrics.Register()

	err := run(ctx, cfg)
	if err != nil {
		log.Errorf("job digest failed: %v", err)
	}

	logger.Cleanup()
	if err != nil {
		os.Exit(1)
	}
}
