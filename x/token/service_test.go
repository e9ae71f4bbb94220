package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/util"
)

func TestIssueAndValidate(t *testing.T) {

	config := util.Config{
		Site: util.Site{
			JwtSecret:        "unittest-secret",
			TokenExpiryHours: 1,
		},
	}
	service := NewService(config)

	trainer := core.Trainer{
		ID:       7,
		Username: "misty",
		Role:     core.RoleMaster,
	}

	signed, err := service.Issue(trainer)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := service.Validate(signed)
	if assert.NoError(t, err) {
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, core.RoleMaster, claims.Role)
		assert.Equal(t, "misty", claims.Subject)
		assert.NotEmpty(t, claims.ID)
	}

	// a token signed with another secret is rejected
	other := NewService(util.Config{Site: util.Site{JwtSecret: "different", TokenExpiryHours: 1}})
	_, err = other.Validate(signed)
	assert.Error(t, err)

	// garbage is rejected
	_, err = service.Validate("not-a-token")
	assert.Error(t, err)
}
