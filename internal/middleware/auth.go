package middleware

import (
	"net/http"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CheckUserKey and TokenKey are the gin context keys LoadUser fills for
// downstream handlers: the resolved *models.User and the raw backend JWT.
const CheckUserKey = "user"
const TokenKey = "token"

// SessionTokenKey is where the backend JWT lives inside the cookie session.
const SessionTokenKey = "auth_token"

// LoadUser resolves the session's backend token to a user record and puts
// both on the request context. The /auth/me lookup is cached per token so
// every page load does not round-trip to the backend.
func LoadUser(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(SessionTokenKey).(string)
		if token == "" {
			c.Next()
			return
		}

		cacheKey := "session:me:" + token
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if user, ok := cached.(*models.User); ok {
				c.Set(CheckUserKey, user)
				c.Set(TokenKey, token)
				c.Next()
				return
			}
		}

		user, err := client.WithToken(token).Me(c.Request.Context())
		if err != nil {
			if api.IsStatus(err, http.StatusUnauthorized) {
				// Token expired or revoked; drop the stale session.
				session.Delete(SessionTokenKey)
				session.Save()
			} else {
				logrus.WithError(err).Warn("resolve session user")
			}
			c.Next()
			return
		}

		utils.GetCache().Set(cacheKey, &user, 5*time.Minute)
		c.Set(CheckUserKey, &user)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability gates a route on the role capability table instead of
// per-handler role string checks.
func RequireCapability(cap models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !u.(*models.User).Role.Can(cap) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// CurrentUser is a typed accessor for the user LoadUser stored, if any.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// InvalidateSession drops the cached /auth/me lookup for a token, used after
// profile updates and logout.
func InvalidateSession(token string) {
	if token != "" {
		utils.GetCache().Delete("session:me:" + token)
	}
}
