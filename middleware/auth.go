package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tawatchai-03/clinic-frontend/models"
	"github.com/Tawatchai-03/clinic-frontend/services/session"
	"github.com/Tawatchai-03/clinic-frontend/utils"
)

const (
	// ContextSession is the gin context key the resolved session lives under.
	ContextSession = "session"
	// ContextSessionID is the gin context key for the raw session ID.
	ContextSessionID = "sessionID"
)

// landingRedirect is where every failed guard sends the client.
const landingRedirect = "/"

// resolveSession pulls the bearer token, validates it, and loads the stored
// session. The guard trusts the local store completely: no upstream call is
// made, so a stale session survives until a later API call fails.
func resolveSession(c *gin.Context, store *session.Store) (*models.Session, string) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, ""
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return nil, ""
	}

	_, sid, err := utils.ExtractSessionFromToken(tokenString)
	if err != nil {
		return nil, ""
	}
	sess, err := store.Get(sid)
	if err != nil || !sess.LoggedIn() {
		return nil, ""
	}
	return sess, sid
}

// RequireSession admits any authenticated session.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, sid := resolveSession(c, store)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message:  "please log in or register to continue",
				Redirect: landingRedirect,
			})
			return
		}
		c.Set(ContextSession, sess)
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

// RequireRole admits only authenticated sessions with the given role. A
// role mismatch and a missing login share the redirect target and differ
// only in the message.
func RequireRole(store *session.Store, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, sid := resolveSession(c, store)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message:  "please log in",
				Redirect: landingRedirect,
			})
			return
		}
		if sess.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message:  "your account role does not have access to this screen",
				Redirect: landingRedirect,
			})
			return
		}
		c.Set(ContextSession, sess)
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

// SessionFrom returns the session a guard stored on the context.
func SessionFrom(c *gin.Context) *models.Session {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}
