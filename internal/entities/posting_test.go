package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DeriveID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		title    string
		expected string
	}{
		{name: "from url", url: "https://Example.com/Job/42", title: "ignored", expected: "httpsexamplecomjob42"},
		{name: "falls back to title", url: "  ", title: "Gerente de Projetos São Paulo", expected: "gerentedeprojetossaopaulo"},
		{name: "nothing usable", url: "", title: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveID(tt.url, tt.title))
		})
	}
}

func Test_DeriveID_IsTruncated(t *testing.T) {
	id := DeriveID("https://example.com/"+strings.Repeat("a", 300), "")

	assert.Len(t, id, 100)
	assert.True(t, strings.HasPrefix(id, "httpsexamplecom"))
}

func Test_Fold(t *testing.T) {
	assert.Equal(t, "sao paulo", Fold("São Paulo"))
	assert.Equal(t, "catalunya barcelona", Fold("CATALUNYA Barcelona"))
	assert.Equal(t, "mexico", Fold("México"))
}

func Test_Classification_NonEmptySecondary(t *testing.T) {
	c := Classification{Secondary: []Bucket{
		{Name: "Catalunya"},
		{Name: "LATAM", Postings: []Posting{{ID: "1", Source: "adzuna"}}},
	}}

	assert.True(t, c.HasSecondary())
	buckets := c.NonEmptySecondary()
	assert.Len(t, buckets, 1)
	assert.Equal(t, "LATAM", buckets[0].Name)

	assert.False(t, Classification{}.HasSecondary())
}
