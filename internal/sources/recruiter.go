package sources

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/maxaizer/job-digest/internal/logger"
	log "github.com/sirupsen/logrus"
)

// RecruiterSite describes the listing page markup of one recruiting firm.
type RecruiterSite struct {
	Name             string
	CardSelector     string
	TitleSelector    string
	LocationSelector string
	IDPrefix         string
}

var (
	HaysSite = RecruiterSite{
		Name:             "Hays",
		CardSelector:     "article.c-job",
		TitleSelector:    "h3",
		LocationSelector: ".c-job__location",
		IDPrefix:         "hays-",
	}
	MichaelPageSite = RecruiterSite{
		Name:             "Michael Page",
		CardSelector:     "div.job-search-results__item",
		TitleSelector:    "h3",
		LocationSelector: ".job-location",
		IDPrefix:         "mp-",
	}
	RobertHalfSite = RecruiterSite{
		Name:             "Robert Half",
		CardSelector:     "div.job-card",
		TitleSelector:    "h2",
		LocationSelector: ".job-location",
		IDPrefix:         "rh-",
	}
)

// RecruiterSource scrapes one listing page per country.
type RecruiterSource struct {
	site    RecruiterSite
	urls    map[string]string
	timeout time.Duration
}

// NewRecruiterSource takes listing page urls keyed by country name.
func NewRecruiterSource(site RecruiterSite, urls map[string]string, timeout time.Duration) *RecruiterSource {
	normalized := make(map[string]string, len(urls))
	for country, url := range urls {
		normalized[entities.Fold(country)] = url
	}
	return &RecruiterSource{site: site, urls: normalized, timeout: timeout}
}

func NewHays(urls map[string]string, timeout time.Duration) *RecruiterSource {
	return NewRecruiterSource(HaysSite, urls, timeout)
}

func NewMichaelPage(urls map[string]string, timeout time.Duration) *RecruiterSource {
	return NewRecruiterSource(MichaelPageSite, urls, timeout)
}

func NewRobertHalf(urls map[string]string, timeout time.Duration) *RecruiterSource {
	return NewRecruiterSource(RobertHalfSite, urls, timeout)
}

func (s *RecruiterSource) Name() string {
	return s.site.Name
}

func (s *RecruiterSource) Fetch(ctx context.Context, country string, limit int) []entities.Posting {
	postings := []entities.Posting{}

	url, ok := s.urls[entities.Fold(country)]
	if !ok || limit <= 0 {
		return postings
	}

	if err := ctx.Err(); err != nil {
		return postings
	}

	c := colly.NewCollector(colly.UserAgent("job-digest/1.0"))
	if s.timeout > 0 {
		c.SetRequestTimeout(s.timeout)
	}

	language := languageFor(country)

	c.OnHTML(s.site.CardSelector, func(e *colly.HTMLElement) {
		if len(postings) >= limit {
			return
		}

		link := ""
		if href := strings.TrimSpace(e.ChildAttr("a", "href")); href != "" {
			link = e.Request.AbsoluteURL(href)
		}

		posting := entities.Posting{
			Source:   s.site.Name,
			Title:    strings.TrimSpace(e.ChildText(s.site.TitleSelector)),
			Company:  s.site.Name,
			Location: strings.TrimSpace(e.ChildText(s.site.LocationSelector)),
			URL:      link,
			Country:  country,
			Language: language,
		}
		if link != "" {
			posting.ID = s.site.IDPrefix + link
		}

		postings = append(postings, posting)
	})

	if err := c.Visit(url); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
			Errorf("%s fetch for %s failed: %v", s.site.Name, country, err)
		return []entities.Posting{}
	}

	return postings
}
