package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey holds the logged in admin's username.
const SessionUserKey = "admin_user"

// CurrentUser returns the logged in admin, or "" for anonymous requests.
func CurrentUser(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	user, _ := sessions.Default(c).Get(SessionUserKey).(string)
	return user
}

// MustLogin sends anonymous requests to loginPath.
func MustLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == "" {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
