package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/core"
)

const failureKeyPrefix = "login-failures:"

// Repository is the interface for auth repository
type Repository interface {
	GetTrainerByUsername(ctx context.Context, username string) (core.Trainer, error)
	FailureCount(ctx context.Context, username string) (int64, error)
	RecordFailure(ctx context.Context, username string) error
	ClearFailures(ctx context.Context, username string) error
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewRepository creates a new auth repository
func NewRepository(db *gorm.DB, rdb *redis.Client) Repository {
	return &repository{db, rdb}
}

// GetTrainerByUsername fetches the account row for a login attempt.
func (r *repository) GetTrainerByUsername(ctx context.Context, username string) (core.Trainer, error) {
	ctx, span := tracer.Start(ctx, "Auth.Repository.GetTrainerByUsername")
	defer span.End()

	var trainer core.Trainer
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&trainer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return core.Trainer{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Trainer{}, err
	}
	return trainer, nil
}

// FailureCount returns the number of recent failed logins for a
// username.
func (r *repository) FailureCount(ctx context.Context, username string) (int64, error) {
	ctx, span := tracer.Start(ctx, "Auth.Repository.FailureCount")
	defer span.End()

	count, err := r.rdb.Get(ctx, failureKeyPrefix+username).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}

// RecordFailure bumps the failure counter. The counter expires on its
// own, which is also what unlocks a throttled account.
func (r *repository) RecordFailure(ctx context.Context, username string) error {
	ctx, span := tracer.Start(ctx, "Auth.Repository.RecordFailure")
	defer span.End()

	key := failureKeyPrefix + username
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if count == 1 {
		if err := r.rdb.Expire(ctx, key, 15*time.Minute).Err(); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// ClearFailures resets the counter after a successful login.
func (r *repository) ClearFailures(ctx context.Context, username string) error {
	ctx, span := tracer.Start(ctx, "Auth.Repository.ClearFailures")
	defer span.End()

	return r.rdb.Del(ctx, failureKeyPrefix+username).Err()
}
