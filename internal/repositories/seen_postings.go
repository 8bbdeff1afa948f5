package repositories

import (
	"context"

	"github.com/maxaizer/job-digest/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

type SeenPostings struct {
	db *gorm.DB
}

func NewSeenPostingsRepository(db *gorm.DB) *SeenPostings {
	return &SeenPostings{db: db}
}

func (repo *SeenPostings) HasSeen(ctx context.Context, id, source string) (bool, error) {
	var count int64
	err := repo.conn(ctx).Model(&entities.SeenPosting{}).
		Where("id = ? AND source = ?", id, source).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up posting %s/%s", source, id)
	}
	return count > 0, nil
}

// MarkSeen is idempotent: marking an existing posting again is a no-op.
func (repo *SeenPostings) MarkSeen(ctx context.Context, id, source, url, title string) error {
	err := repo.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entities.SeenPosting{
		ID:     id,
		Source: source,
		URL:    url,
		Title:  title,
	}).Error
	return errors.Wrapf(err, "failed to mark posting %s/%s as seen", source, id)
}

// WithinTransaction runs fn in one database transaction; repository calls made with the
// context passed to fn join it.
func (repo *SeenPostings) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (repo *SeenPostings) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return repo.db.WithContext(ctx)
}
