package sources

import (
	"context"
	"strings"
	"time"

	"github.com/maxaizer/job-digest/internal/clients/adzuna"
	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/maxaizer/job-digest/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const adzunaMaxPerPage = 50

type adzunaClient interface {
	HasCredentials() bool
	Search(ctx context.Context, parameters adzuna.SearchParameters) ([]adzuna.Job, error)
}

type AdzunaSource struct {
	client   adzunaClient
	keywords []string
	timeout  time.Duration
}

func NewAdzunaSource(client adzunaClient, keywords []string, timeout time.Duration) *AdzunaSource {
	return &AdzunaSource{client: client, keywords: keywords, timeout: timeout}
}

func (s *AdzunaSource) Name() string {
	return config.SourceAdzuna
}

func (s *AdzunaSource) Fetch(ctx context.Context, country string, limit int) []entities.Posting {
	if !s.client.HasCredentials() {
		log.Debug("adzuna credentials are not set, skipping")
		return []entities.Posting{}
	}

	code, ok := CountryCode(country)
	if !ok {
		log.Debugf("adzuna: no country code for %s", country)
		return []entities.Posting{}
	}

	if limit <= 0 {
		return []entities.Posting{}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	jobs, err := s.client.Search(ctx, adzuna.SearchParameters{
		CountryCode:    code,
		What:           strings.Join(s.keywords, " "),
		ResultsPerPage: min(limit, adzunaMaxPerPage),
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
			Errorf("adzuna fetch for %s failed: %v", country, err)
		return []entities.Posting{}
	}

	language := languageFor(country)
	return lo.Map(lo.Slice(jobs, 0, limit), func(job adzuna.Job, _ int) entities.Posting {
		posting := entities.Posting{
			Source:      s.Name(),
			Title:       job.Title,
			Company:     job.Company.DisplayName,
			Location:    job.Location.DisplayName,
			Description: job.Description,
			URL:         job.RedirectURL,
			Country:     country,
			Language:    language,
			Salary:      job.SalaryMax,
			Published:   job.Created,
		}
		if job.ID != "" {
			posting.ID = "adzuna-" + job.ID
		}
		return posting
	})
}
