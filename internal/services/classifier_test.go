package services

import (
	"testing"

	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierConfig() config.ClassifierConfig {
	return config.ClassifierConfig{
		Primary: config.BucketConfig{Name: "Brasil", Terms: []string{"brazil", "brasil", "são paulo", "rio de janeiro"}},
		Secondary: []config.BucketConfig{
			{Name: "Catalunya", Terms: []string{"catalunya", "barcelona"}},
			{Name: "ES/PT", Terms: []string{"spain", "españa", "portugal", "madrid"}},
			{Name: "LATAM", Terms: []string{"latam", "chile", "méxico", "peru"}},
			{Name: "Outros", CatchAll: true, MinScore: 8},
		},
	}
}

func bucketOf(c entities.Classification, id string) string {
	for _, p := range c.Primary {
		if p.ID == id {
			return "primary"
		}
	}
	for _, b := range c.Secondary {
		for _, p := range b.Postings {
			if p.ID == id {
				return b.Name
			}
		}
	}
	return ""
}

func Test_Classifier_Classify(t *testing.T) {
	classifier := NewClassifier(classifierConfig())

	tests := []struct {
		name     string
		posting  entities.Posting
		expected string
	}{
		{name: "primary by country", posting: entities.Posting{Country: "Brazil"}, expected: "primary"},
		{name: "primary by accented city", posting: entities.Posting{Location: "Sao Paulo, SP"}, expected: "primary"},
		{name: "catalunya wins over spain", posting: entities.Posting{Location: "Barcelona", Country: "Spain"}, expected: "Catalunya"},
		{name: "spain", posting: entities.Posting{Location: "Madrid", Country: "Spain"}, expected: "ES/PT"},
		{name: "latam by accent-free country", posting: entities.Posting{Country: "Mexico"}, expected: "LATAM"},
		{name: "catch-all above threshold", posting: entities.Posting{Country: "Germany", Score: 8}, expected: "Outros"},
		{name: "catch-all below threshold", posting: entities.Posting{Country: "Germany", Score: 7.9}, expected: ""},
		{name: "whole words only", posting: entities.Posting{Location: "Perugia", Country: "Italy"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.posting.ID = "p"
			tt.posting.Source = "s"
			assert.Equal(t, tt.expected, bucketOf(classifier.Classify([]entities.Posting{tt.posting}), "p"))
		})
	}
}

func Test_Classifier_IsPartition(t *testing.T) {
	postings := []entities.Posting{
		{ID: "1", Country: "Brazil", Score: 20},
		{ID: "2", Location: "Barcelona", Country: "Spain", Score: 20},
		{ID: "3", Location: "Lisboa", Country: "Portugal", Score: 20},
		{ID: "4", Country: "Chile", Score: 20},
		{ID: "5", Country: "Germany", Score: 20},
		{ID: "6", Country: "Germany", Score: 1},
	}

	result := NewClassifier(classifierConfig()).Classify(postings)

	counts := map[string]int{}
	for _, p := range result.Primary {
		counts[p.ID]++
	}
	for _, b := range result.Secondary {
		for _, p := range b.Postings {
			counts[p.ID]++
		}
	}

	for _, p := range postings {
		assert.LessOrEqual(t, counts[p.ID], 1, p.ID)
	}
	assert.Equal(t, 0, counts["6"])
	require.Len(t, result.Secondary, 4)
	assert.Equal(t, []string{"Catalunya", "ES/PT", "LATAM", "Outros"},
		[]string{result.Secondary[0].Name, result.Secondary[1].Name, result.Secondary[2].Name, result.Secondary[3].Name})
}

func Test_Classifier_KeepsOrderWithinBuckets(t *testing.T) {
	result := NewClassifier(classifierConfig()).Classify([]entities.Posting{
		{ID: "b", Country: "Brazil", Score: 9},
		{ID: "a", Country: "Brazil", Score: 3},
	})

	require.Len(t, result.Primary, 2)
	assert.Equal(t, "b", result.Primary[0].ID)
	assert.Equal(t, "a", result.Primary[1].ID)
	assert.False(t, result.HasSecondary())
}
