package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/internal/testutil"
	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/token"
	"github.com/pokecamp/backend/x/util"
)

func TestIdentifyTrainer(t *testing.T) {

	db, cleanup := testutil.CreateDB()
	defer cleanup()

	config := util.Config{
		Site: util.Site{
			JwtSecret:        "unittest-secret",
			TokenExpiryHours: 1,
		},
	}

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	tokenService := token.NewService(config)
	auditService := audit.NewService(audit.NewRepository(db))
	service := NewService(NewRepository(db, rdb), tokenService, auditService, config)

	e := echo.New()

	signed, err := tokenService.Issue(core.Trainer{
		ID:       42,
		Username: "ash",
		Role:     core.RoleTrainer,
	})
	assert.NoError(t, err)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	// valid token sets the requester on the context
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = service.IdentifyTrainer(next)(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(42), c.Get(core.RequesterIdCtxKey))
		assert.Equal(t, core.RoleTrainer, c.Get(core.RequesterRoleCtxKey))
	}

	// missing header
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = service.IdentifyTrainer(next)(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// garbage token
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = service.IdentifyTrainer(next)(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestRestrict(t *testing.T) {

	e := echo.New()

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	// master passes
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(core.RequesterRoleCtxKey, core.RoleMaster)

	err := Restrict(ISADMIN)(next)(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// trainer is rejected
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(core.RequesterRoleCtxKey, core.RoleTrainer)

	err = Restrict(ISADMIN)(next)(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}
}
