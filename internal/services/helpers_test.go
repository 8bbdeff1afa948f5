package services

import (
	"context"
	"sync"

	"github.com/maxaizer/job-digest/internal/entities"
)

type fakeSource struct {
	name     string
	postings map[string][]entities.Posting
	calls    []string
}

func (s *fakeSource) Name() string {
	return s.name
}

func (s *fakeSource) Fetch(_ context.Context, country string, limit int) []entities.Posting {
	s.calls = append(s.calls, country)
	postings := s.postings[country]
	if len(postings) > limit {
		postings = postings[:limit]
	}
	return append([]entities.Posting{}, postings...)
}

type sentMail struct {
	subject string
	html    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{subject: subject, html: htmlBody})
	return nil
}
