package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/x/core"
)

func TestAuthorize(t *testing.T) {

	// masters may act on anything
	assert.True(t, Authorize(core.RoleMaster, 1, 1))
	assert.True(t, Authorize(core.RoleMaster, 1, 2))

	// trainers only on their own resources
	assert.True(t, Authorize(core.RoleTrainer, 7, 7))
	assert.False(t, Authorize(core.RoleTrainer, 7, 8))

	// an unknown role gets no special treatment
	assert.False(t, Authorize(core.Role("X"), 7, 8))
}
