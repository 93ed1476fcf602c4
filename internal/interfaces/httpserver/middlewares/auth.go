package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"lms-server/internal/domain/user"
	"lms-server/internal/infrastructure/auth"
	"lms-server/internal/infrastructure/metrics"
	"lms-server/internal/interfaces/httpserver/responses"
	"lms-server/internal/utils/platformerrors"
)

const userContextKey = "auth_user"

// AuthMiddleware validates the bearer token and attaches the user row to the
// gin context. A fresh identity gets a student account on first sight.
func AuthMiddleware(validator *auth.TokenValidator, users *user.Service, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			metrics.RecordAuthRequest("missing")
			responses.HandleNewError(c, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
				"missing bearer token", nil, "0a4e7c92-5d18-4b36-8f0a-c7d3e9b12a65")
			c.Abort()
			return
		}

		claims, err := validator.Validate(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			metrics.RecordAuthRequest("invalid")
			log.Debug().Err(err).Msg("token validation failed")
			responses.HandleNewError(c, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
				"invalid bearer token", nil, "7b2d0f48-9e63-4a15-b8c2-14f0a6d93e57")
			c.Abort()
			return
		}

		usr, err := users.EnsureUser(c.Request.Context(), user.Identity{
			Issuer:  claims.Issuer,
			Subject: claims.Subject,
			Name:    claims.Name,
			Email:   claims.Email,
		})
		if err != nil {
			metrics.RecordAuthRequest("error")
			responses.HandleError(c, err)
			c.Abort()
			return
		}

		metrics.RecordAuthRequest("ok")
		c.Set(userContextKey, usr)
		c.Next()
	}
}

// UserFromContext returns the authenticated user attached by AuthMiddleware.
func UserFromContext(c *gin.Context) (*user.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	usr, ok := val.(*user.User)
	return usr, ok
}
