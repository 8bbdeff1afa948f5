package events

import "time"

var DigestSentTopic = "DigestSentEvent"

type DigestKind string

const (
	PrimaryDigest   DigestKind = "primary"
	SecondaryDigest DigestKind = "secondary"
)

type DigestSent struct {
	Kind     DigestKind
	Subject  string
	Postings int
	SentAt   time.Time
}
