package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-digest/internal/config"
	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/maxaizer/job-digest/internal/repositories"
	"github.com/maxaizer/job-digest/internal/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSqliteStore(t *testing.T) *repositories.SeenPostings {
	t.Helper()
	dbCtx, err := repositories.NewDbContext(config.DBConfig{
		Driver:           config.DriverSqlite,
		ConnectionString: filepath.Join(t.TempDir(), "jobs.db"),
	})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })
	return repositories.NewSeenPostingsRepository(dbCtx.DB)
}

func newTestPipeline(store seenStore, mailer *fakeMailer, today time.Time, srcs ...sources.Source) *Pipeline {
	search := config.SearchConfig{
		Countries:           []string{"Brazil", "Spain", "Chile"},
		Languages:           []string{"pt", "es"},
		Keywords:            []string{"PMO"},
		FetchLimitPerSource: 10,
	}
	scoring := config.ScoringConfig{Strategy: config.SimpleScoring, PrimaryCountry: "Brazil"}

	scorer := NewScorer(NewScoringRules(search, scoring))
	scorer.now = func() time.Time { return today }

	return NewPipeline(
		NewAggregator(srcs, search),
		scorer,
		store,
		NewClassifier(classifierConfig()),
		newTestDispatcher(EventBus.New(), mailer, today),
		search.MinSalary,
	)
}

func Test_Pipeline_EndToEnd(t *testing.T) {
	duplicate := entities.Posting{ID: "a1", Source: "x", Title: "Gerente PMO", Country: "Brazil", URL: "https://example.com/a1"}
	first := &fakeSource{name: "first", postings: map[string][]entities.Posting{"Brazil": {duplicate}}}
	second := &fakeSource{name: "second", postings: map[string][]entities.Posting{"Brazil": {duplicate}}}

	mailer := &fakeMailer{}
	report, err := newTestPipeline(newSqliteStore(t), mailer, monday, first, second).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RunReport{Fetched: 2, Unique: 1, New: 1, Primary: 1, PrimarySent: true}, report)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].html, "Gerente PMO")
	assert.Contains(t, mailer.sent[0].subject, "Vagas Brasil")
}

func Test_Pipeline_SecondRunFindsNothingNew(t *testing.T) {
	source := &fakeSource{name: "adzuna", postings: map[string][]entities.Posting{
		"Brazil": {{ID: "adzuna-1", Title: "PMO", Country: "Brazil"}},
		"Chile":  {{ID: "adzuna-2", Title: "PMO", Country: "Chile"}},
	}}

	store := newSqliteStore(t)
	mailer := &fakeMailer{}
	pipeline := newTestPipeline(store, mailer, monday, source)

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.New)
	assert.True(t, report.PrimarySent)
	assert.True(t, report.SecondarySent)

	report, err = pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.New)
	assert.False(t, report.PrimarySent)
	assert.False(t, report.SecondarySent)
	assert.Len(t, mailer.sent, 2)
}

func Test_Pipeline_NoSecondaryDigestOffDay(t *testing.T) {
	source := &fakeSource{name: "adzuna", postings: map[string][]entities.Posting{
		"Brazil": {{ID: "1", Title: "PMO", Country: "Brazil"}},
		"Chile":  {{ID: "2", Title: "PMO", Country: "Chile"}},
	}}

	mailer := &fakeMailer{}
	report, err := newTestPipeline(newSqliteStore(t), mailer, tuesday, source).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Secondary)
	assert.True(t, report.PrimarySent)
	assert.False(t, report.SecondarySent)
	assert.Len(t, mailer.sent, 1)
}

type mockSeenStore struct {
	mock.Mock
}

func (m *mockSeenStore) HasSeen(ctx context.Context, id, source string) (bool, error) {
	args := m.Called(ctx, id, source)
	return args.Bool(0), args.Error(1)
}

func (m *mockSeenStore) MarkSeen(ctx context.Context, id, source, url, title string) error {
	return m.Called(ctx, id, source, url, title).Error(0)
}

func (m *mockSeenStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func Test_Pipeline_StoreFailureStopsBeforeDispatch(t *testing.T) {
	source := &fakeSource{name: "adzuna", postings: map[string][]entities.Posting{
		"Brazil": {{ID: "1", Title: "PMO", Country: "Brazil"}},
	}}

	failure := errors.New("database is locked")
	store := &mockSeenStore{}
	store.On("HasSeen", mock.Anything, "1", "adzuna").Return(false, failure)

	mailer := &fakeMailer{}
	_, err := newTestPipeline(store, mailer, monday, source).Run(context.Background())

	assert.ErrorIs(t, err, failure)
	assert.Empty(t, mailer.sent)
	store.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
