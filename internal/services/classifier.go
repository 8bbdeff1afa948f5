package services

import (
	"regexp"
	"strings"

	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/samber/lo"
)

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

type regionBucket struct {
	name     string
	terms    []string
	catchAll bool
	minScore float64
}

func newRegionBucket(cfg config.BucketConfig) regionBucket {
	terms := lo.FilterMap(cfg.Terms, func(term string, _ int) (string, bool) {
		return matchText(term), strings.TrimSpace(term) != ""
	})

	return regionBucket{
		name:     cfg.Name,
		terms:    terms,
		catchAll: cfg.CatchAll,
		minScore: cfg.MinScore,
	}
}

func (b regionBucket) matches(text string, score float64) bool {
	if b.catchAll {
		return score >= b.minScore
	}
	return lo.SomeBy(b.terms, func(term string) bool { return strings.Contains(text, term) })
}

// Classifier splits postings into the primary region and prioritized secondary buckets.
type Classifier struct {
	primary   regionBucket
	secondary []regionBucket
}

func NewClassifier(cfg config.ClassifierConfig) *Classifier {
	return &Classifier{
		primary:   newRegionBucket(cfg.Primary),
		secondary: lo.Map(cfg.Secondary, func(b config.BucketConfig, _ int) regionBucket { return newRegionBucket(b) }),
	}
}

// Classify places each posting in at most one bucket, keeping the input order within buckets.
// Every configured secondary bucket is present in the result, possibly empty.
func (c *Classifier) Classify(postings []entities.Posting) entities.Classification {
	secondary := lo.Map(c.secondary, func(b regionBucket, _ int) entities.Bucket {
		return entities.Bucket{Name: b.name}
	})
	result := entities.Classification{Primary: []entities.Posting{}, Secondary: secondary}

	for _, posting := range postings {
		text := matchText(posting.Location + " " + posting.Country)

		if c.primary.matches(text, posting.Score) {
			result.Primary = append(result.Primary, posting)
			continue
		}

		for i, bucket := range c.secondary {
			if bucket.matches(text, posting.Score) {
				result.Secondary[i].Postings = append(result.Secondary[i].Postings, posting)
				break
			}
		}
	}

	return result
}

// matchText folds s and pads every word with spaces so terms only match whole words.
func matchText(s string) string {
	return " " + strings.TrimSpace(nonWord.ReplaceAllString(entities.Fold(s), " ")) + " "
}
