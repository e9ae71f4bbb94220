package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/token"
	"github.com/pokecamp/backend/x/util"
)

// countingRepository keeps the failure counters in memory so the
// lockout can be driven without a redis instance. Lookups still hit
// the real database.
type countingRepository struct {
	db       Repository
	failures map[string]int64
}

func (r *countingRepository) GetTrainerByUsername(ctx context.Context, username string) (core.Trainer, error) {
	return r.db.GetTrainerByUsername(ctx, username)
}

func (r *countingRepository) FailureCount(ctx context.Context, username string) (int64, error) {
	return r.failures[username], nil
}

func (r *countingRepository) RecordFailure(ctx context.Context, username string) error {
	r.failures[username]++
	return nil
}

func (r *countingRepository) ClearFailures(ctx context.Context, username string) error {
	delete(r.failures, username)
	return nil
}

var ctx = context.Background()

func TestLogin(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Site: util.Site{
			JwtSecret:        "unittest-secret",
			TokenExpiryHours: 1,
		},
	}

	// the throttle must not be a hard dependency: this client points
	// at nothing and logins still have to work
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:1"})

	tokenService := token.NewService(config)
	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db, rdb), tokenService, auditService, config)

	hash, err := bcrypt.GenerateFromPassword([]byte("pikachu123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	trainer := core.Trainer{
		Username: "ash",
		Password: string(hash),
		Role:     core.RoleTrainer,
	}
	assert.NoError(t, db.Create(&trainer).Error)

	// happy path: token round-trips through the validator
	signed, got, err := service.Login(ctx, "ash", "pikachu123")
	if assert.NoError(t, err) {
		assert.Equal(t, trainer.ID, got.ID)

		claims, err := tokenService.Validate(signed)
		if assert.NoError(t, err) {
			assert.Equal(t, trainer.ID, claims.UserID)
			assert.Equal(t, core.RoleTrainer, claims.Role)
		}
	}

	// a login is audited with the trainer's name snapshotted
	var entry core.AuditLog
	if assert.NoError(t, db.Where("action = ?", audit.ActionLogin).First(&entry).Error) {
		assert.Equal(t, "ash", entry.Username)
	}

	// wrong password and unknown user look identical to the caller
	_, _, err = service.Login(ctx, "ash", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginThrottle(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Site: util.Site{
			JwtSecret:        "unittest-secret",
			TokenExpiryHours: 1,
		},
	}

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:1"})
	repository := &countingRepository{
		db:       NewRepository(db, rdb),
		failures: map[string]int64{},
	}
	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(repository, token.NewService(config), auditService, config)

	hash, err := bcrypt.GenerateFromPassword([]byte("pikachu123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, db.Create(&core.Trainer{
		Username: "ash",
		Password: string(hash),
		Role:     core.RoleTrainer,
	}).Error)

	for i := 0; i < maxLoginFailures; i++ {
		_, _, err := service.Login(ctx, "ash", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// the tenth failure locks the username, even for the right password
	_, _, err = service.Login(ctx, "ash", "pikachu123")
	assert.ErrorIs(t, err, ErrThrottled)

	// a throttled login answers 429
	handler := NewHandler(service)
	c, _, rec, _ := testutil.CreateJsonRequest(http.MethodPost, `{"username": "ash", "password": "pikachu123"}`)
	if assert.NoError(t, handler.Login(c)) {
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	}

	// the counter expiring unlocks the account, and the successful
	// login resets it
	repository.failures["ash"] = 0
	_, _, err = service.Login(ctx, "ash", "pikachu123")
	assert.NoError(t, err)
	assert.Zero(t, repository.failures["ash"])
}
