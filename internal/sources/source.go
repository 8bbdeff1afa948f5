package sources

import (
	"context"

	"github.com/maxaizer/job-digest/internal/entities"
)

// Source fetches postings for one country. Failures are logged and yield an empty slice.
type Source interface {
	Name() string
	Fetch(ctx context.Context, country string, limit int) []entities.Posting
}

var countryCodes = map[string]string{
	"brazil":    "br",
	"spain":     "es",
	"argentina": "ar",
	"chile":     "cl",
	"colombia":  "co",
	"peru":      "pe",
	"mexico":    "mx",
	"portugal":  "pt",
}

// CountryCode maps a configured country name to its two-letter code.
func CountryCode(country string) (string, bool) {
	code, ok := countryCodes[entities.Fold(country)]
	return code, ok
}

func languageFor(country string) string {
	switch code, _ := CountryCode(country); code {
	case "br", "pt":
		return "pt"
	case "":
		return ""
	default:
		return "es"
	}
}
