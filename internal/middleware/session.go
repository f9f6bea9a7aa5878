package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afisha/internal/config"
	"afisha/internal/models"
	"afisha/internal/service"
	"afisha/internal/web"
)

const sessionKey = "session"

// Session resolves the session cookie, if present, into the typed session
// value and attaches it to the request. An invalid or expired cookie just
// means an anonymous request.
func Session(cfg *config.AppConfig, auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Session.CookieName)
		if err == nil && token != "" {
			if session, err := auth.SessionFromToken(c.Request.Context(), token); err == nil {
				c.Set(sessionKey, session)
			}
		}

		c.Next()
	}
}

// RequireLogin gates pages behind "is any user logged in". Role is never
// consulted.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			web.SetFlash(c, "Please log in first.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SessionFrom returns the session attached by the Session middleware.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}
