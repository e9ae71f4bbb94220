package auth

import (
	"github.com/pokecamp/backend/x/core"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type trainerSummary struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Role     core.Role `json:"tipo_usuario"`
}
