package digest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/samber/lo"
)

//go:embed templates/digest.html
var templates embed.FS

const (
	primaryHeading   = "Vagas mais aderentes ao seu perfil"
	secondaryHeading = "Vagas internacionais"
)

type item struct {
	Rank     int
	Title    string
	Company  string
	Source   string
	Country  string
	Location string
	URL      string
	Score    string
}

type section struct {
	Name     string
	Detailed []item
	Others   []item
}

type page struct {
	Subject  string
	Heading  string
	Date     string
	Sections []section
}

// Renderer builds HTML digests. It performs no I/O and its output depends only on its inputs.
type Renderer struct {
	cfg      config.DigestConfig
	template *template.Template
}

func NewRenderer(cfg config.DigestConfig) *Renderer {
	return &Renderer{
		cfg:      cfg,
		template: template.Must(template.ParseFS(templates, "templates/digest.html")),
	}
}

func (r *Renderer) PrimarySubject(date time.Time) string {
	return subject(r.cfg.PrimarySubject, date)
}

func (r *Renderer) SecondarySubject(date time.Time) string {
	return subject(r.cfg.SecondarySubject, date)
}

// RenderPrimary lists the best postings first, in the order given.
func (r *Renderer) RenderPrimary(postings []entities.Posting, date time.Time) (string, error) {
	return r.render(page{
		Subject:  r.PrimarySubject(date),
		Heading:  primaryHeading,
		Date:     date.Format(time.DateOnly),
		Sections: []section{r.section("", postings, r.cfg.PrimaryMaxItems)},
	})
}

// RenderSecondary writes one section per non-empty bucket, keeping bucket order.
func (r *Renderer) RenderSecondary(buckets []entities.Bucket, date time.Time) (string, error) {
	sections := lo.FilterMap(buckets, func(bucket entities.Bucket, _ int) (section, bool) {
		return r.section(bucket.Name, bucket.Postings, r.cfg.SecondaryMaxItems), len(bucket.Postings) > 0
	})

	return r.render(page{
		Subject:  r.SecondarySubject(date),
		Heading:  secondaryHeading,
		Date:     date.Format(time.DateOnly),
		Sections: sections,
	})
}

func (r *Renderer) section(name string, postings []entities.Posting, maxItems int) section {
	if maxItems > 0 && len(postings) > maxItems {
		postings = postings[:maxItems]
	}

	items := lo.Map(postings, func(p entities.Posting, i int) item {
		return item{
			Rank:     i + 1,
			Title:    p.Title,
			Company:  p.Company,
			Source:   p.Source,
			Country:  p.Country,
			Location: p.Location,
			URL:      p.URL,
			Score:    fmt.Sprintf("%.1f", p.Score),
		}
	})

	detailed := min(r.cfg.DetailedItems, len(items))
	return section{Name: name, Detailed: items[:detailed], Others: items[detailed:]}
}

func (r *Renderer) render(p page) (string, error) {
	var buf bytes.Buffer
	if err := r.template.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to render digest %q: %w", p.Subject, err)
	}
	return buf.String(), nil
}

func subject(prefix string, date time.Time) string {
	return fmt.Sprintf("%s — %s", prefix, date.Format(time.DateOnly))
}
