package entities

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const derivedIDMaxLength = 100

type PostingKey struct {
	Source string
	ID     string
}

type Posting struct {
	ID          string `validate:"required"`
	Source      string `validate:"required"`
	Title       string
	Company     string
	Location    string
	Description string
	URL         string
	Country     string
	Language    string
	Salary      float64 `validate:"gte=0"`
	Published   string
	Score       float64
}

func (p Posting) Key() PostingKey {
	return PostingKey{Source: p.Source, ID: p.ID}
}

// DeriveID builds a stable id from the url, or from the title when the url is empty.
func DeriveID(url, title string) string {
	base := url
	if strings.TrimSpace(base) == "" {
		base = title
	}

	id := nonAlphanumeric.ReplaceAllString(Fold(base), "")
	if len(id) > derivedIDMaxLength {
		id = id[:derivedIDMaxLength]
	}
	return id
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Fold lower-cases s and strips diacritics, so "São Paulo" becomes "sao paulo".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
