package repositories

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type seenRepository interface {
	HasSeen(ctx context.Context, id, source string) (bool, error)
	MarkSeen(ctx context.Context, id, source, url, title string) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type cachedTxKey struct{}

// CachedSeenPostings remembers committed positives. Seen records are never deleted, so a
// positive answer stays true; negatives are always asked from the repository.
type CachedSeenPostings struct {
	repo  seenRepository
	cache *gocache.Cache
}

func NewCachedSeenPostings(repo seenRepository) *CachedSeenPostings {
	return &CachedSeenPostings{repo: repo, cache: gocache.New(24*time.Hour, time.Hour)}
}

func (c *CachedSeenPostings) HasSeen(ctx context.Context, id, source string) (bool, error) {
	key := cacheKey(id, source)
	if _, found := c.cache.Get(key); found {
		return true, nil
	}

	seen, err := c.repo.HasSeen(ctx, id, source)
	if err == nil && seen {
		c.remember(ctx, key)
	}
	return seen, err
}

func (c *CachedSeenPostings) MarkSeen(ctx context.Context, id, source, url, title string) error {
	if err := c.repo.MarkSeen(ctx, id, source, url, title); err != nil {
		return err
	}
	c.remember(ctx, cacheKey(id, source))
	return nil
}

// WithinTransaction defers cache writes until the underlying transaction commits.
func (c *CachedSeenPostings) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var pending []string
	err := c.repo.WithinTransaction(ctx, func(txCtx context.Context) error {
		return fn(context.WithValue(txCtx, cachedTxKey{}, &pending))
	})
	if err != nil {
		return err
	}

	for _, key := range pending {
		c.cache.SetDefault(key, struct{}{})
	}
	return nil
}

func (c *CachedSeenPostings) remember(ctx context.Context, key string) {
	if pending, ok := ctx.Value(cachedTxKey{}).(*[]string); ok {
		*pending = append(*pending, key)
		return
	}
	c.cache.SetDefault(key, struct{}{})
}

func cacheKey(id, source string) string {
	return source + "\x00" + id
}
