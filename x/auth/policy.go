package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/pokecamp/backend/x/core"
)

// Authorize is the single access decision used by every
// ownership-scoped route: masters may act on anything, trainers only
// on their own resources. It is a pure function on purpose — callers
// decide what a denial looks like.
func Authorize(role core.Role, requesterID uint, ownerID uint) bool {
	if role == core.RoleMaster {
		return true
	}
	return requesterID == ownerID
}

// Requester reads the authenticated identity the middleware stored on
// the context. ok is false on routes that skipped authentication.
func Requester(c echo.Context) (uint, core.Role, bool) {
	id, idOk := c.Get(core.RequesterIdCtxKey).(uint)
	role, roleOk := c.Get(core.RequesterRoleCtxKey).(core.Role)
	return id, role, idOk && roleOk
}
