package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type redisTxKey struct{}

type pendingMarks struct {
	keys    map[string]struct{}
	records []entities.SeenPosting
}

// RedisSeenPostings keeps one key per seen posting. Marks made inside WithinTransaction are
// buffered and written in a single MULTI/EXEC when fn succeeds.
type RedisSeenPostings struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping failed")
	}

	return client, nil
}

func NewRedisSeenPostings(client *redis.Client) *RedisSeenPostings {
	return &RedisSeenPostings{client: client, now: time.Now}
}

func (r *RedisSeenPostings) HasSeen(ctx context.Context, id, source string) (bool, error) {
	key := seenPostingKey(id, source)
	if pending, ok := ctx.Value(redisTxKey{}).(*pendingMarks); ok {
		if _, found := pending.keys[key]; found {
			return true, nil
		}
	}

	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up posting %s/%s", source, id)
	}
	return count > 0, nil
}

func (r *RedisSeenPostings) MarkSeen(ctx context.Context, id, source, url, title string) error {
	record := entities.SeenPosting{ID: id, Source: source, URL: url, Title: title, CreatedAt: r.now()}

	if pending, ok := ctx.Value(redisTxKey{}).(*pendingMarks); ok {
		key := seenPostingKey(id, source)
		if _, found := pending.keys[key]; !found {
			pending.keys[key] = struct{}{}
			pending.records = append(pending.records, record)
		}
		return nil
	}

	value, err := json.Marshal(record)
	if err != nil {
		return err
	}
	err = r.client.SetNX(ctx, seenPostingKey(id, source), value, 0).Err()
	return errors.Wrapf(err, "failed to mark posting %s/%s as seen", source, id)
}

func (r *RedisSeenPostings) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	pending := &pendingMarks{keys: map[string]struct{}{}}
	if err := fn(context.WithValue(ctx, redisTxKey{}, pending)); err != nil {
		return err
	}

	if len(pending.records) == 0 {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, record := range pending.records {
			value, err := json.Marshal(record)
			if err != nil {
				return err
			}
			pipe.SetNX(ctx, seenPostingKey(record.ID, record.Source), value, 0)
		}
		return nil
	})
	return errors.Wrap(err, "failed to commit seen postings")
}

// seenPostingKey length-prefixes the source so ids and sources containing ':' can't collide.
func seenPostingKey(id, source string) string {
	return fmt.Sprintf("seen_posting:%d:%s:%s", len(source), source, id)
}
