package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingServer(t *testing.T, fixture string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, fixture)
	}))
	t.Cleanup(server.Close)
	return server
}

func Test_Hays_Fetch_ShouldParseCards(t *testing.T) {
	server := newListingServer(t, "testdata/hays.html")
	source := NewHays(map[string]string{"brazil": server.URL + "/jobs"}, 5*time.Second)

	postings := source.Fetch(context.Background(), "Brazil", 10)

	require.Len(t, postings, 3)
	assert.Equal(t, "hays-https://www.hays.com.br/vaga/gerente-pmo-123", postings[0].ID)
	assert.Equal(t, "Hays", postings[0].Source)
	assert.Equal(t, "Hays", postings[0].Company)
	assert.Equal(t, "Gerente de PMO", postings[0].Title)
	assert.Equal(t, "São Paulo", postings[0].Location)
	assert.Equal(t, "Brazil", postings[0].Country)
	assert.Equal(t, "pt", postings[0].Language)
	assert.Equal(t, "Project Controls Lead", postings[1].Title)
}

func Test_Hays_Fetch_RespectsLimit(t *testing.T) {
	server := newListingServer(t, "testdata/hays.html")
	source := NewHays(map[string]string{"Brazil": server.URL + "/jobs"}, 5*time.Second)

	assert.Len(t, source.Fetch(context.Background(), "Brazil", 2), 2)
	assert.Empty(t, source.Fetch(context.Background(), "Brazil", 0))
}

func Test_MichaelPage_Fetch_ResolvesRelativeLinks(t *testing.T) {
	server := newListingServer(t, "testdata/michael_page.html")
	source := NewMichaelPage(map[string]string{"spain": server.URL + "/jobs"}, 5*time.Second)

	postings := source.Fetch(context.Background(), "Spain", 10)

	require.Len(t, postings, 2)
	link := server.URL + "/job-detail/gerente-de-projetos/ref/jn-102026-1"
	assert.Equal(t, link, postings[0].URL)
	assert.Equal(t, "mp-"+link, postings[0].ID)
	assert.Equal(t, "Michael Page", postings[0].Source)
	assert.Equal(t, "es", postings[0].Language)

	assert.Empty(t, postings[1].ID)
	assert.Equal(t, "Sin enlace", postings[1].Title)
}

func Test_RobertHalf_Fetch_ShouldParseCards(t *testing.T) {
	server := newListingServer(t, "testdata/robert_half.html")
	source := NewRobertHalf(map[string]string{"spain": server.URL}, 5*time.Second)

	postings := source.Fetch(context.Background(), "Spain", 10)

	require.Len(t, postings, 1)
	assert.Equal(t, "rh-https://www.roberthalf.es/trabajos/pmo-manager-1", postings[0].ID)
	assert.Equal(t, "PMO Manager", postings[0].Title)
	assert.Equal(t, "Valencia", postings[0].Location)
}

func Test_RecruiterSource_UnknownCountry_ReturnsEmpty(t *testing.T) {
	source := NewHays(map[string]string{"brazil": "http://127.0.0.1:1/jobs"}, time.Second)

	postings := source.Fetch(context.Background(), "Chile", 10)

	assert.NotNil(t, postings)
	assert.Empty(t, postings)
}

func Test_RecruiterSource_FailingSite_ReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewRobertHalf(map[string]string{"brazil": server.URL}, time.Second)

	postings := source.Fetch(context.Background(), "Brazil", 10)

	assert.NotNil(t, postings)
	assert.Empty(t, postings)
}
