package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pokecamp/backend/x/core"
)

type Principal int

const (
	ISADMIN = iota
)

// IdentifyTrainer authenticates the bearer token and stores the
// requester's id and role on the context. Routes behind this
// middleware never run without a valid identity.
func (s *service) IdentifyTrainer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyTrainer")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "access denied, no token provided"})
		}

		split := strings.Split(authHeader, " ")
		if len(split) != 2 || split[0] != "Bearer" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid authentication header"})
		}

		claims, err := s.token.Validate(split[1])
		if err != nil {
			span.RecordError(err)
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
		}

		c.Set(core.RequesterIdCtxKey, claims.UserID)
		c.Set(core.RequesterRoleCtxKey, claims.Role)
		span.SetAttributes(attribute.Int("RequesterId", int(claims.UserID)))
		span.SetAttributes(attribute.String("RequesterRole", string(claims.Role)))

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Restrict gates a route on a principal. Only ISADMIN exists today.
func Restrict(principal Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.Restrict")
			defer span.End()

			role, _ := c.Get(core.RequesterRoleCtxKey).(core.Role)

			switch principal {
			case ISADMIN:
				if role != core.RoleMaster {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "access denied, masters only"})
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
