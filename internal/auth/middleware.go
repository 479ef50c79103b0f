package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/models"
)

const (
	TokenCookie   = "token"
	SessionCookie = "sid"
	SessionHeader = "X-Session-ID"

	userKey    = "auth.user"
	sessionKey = "auth.session"
)

// UserLookup resolves the user a verified token refers to.
type UserLookup interface {
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// Middleware attaches the caller's user, when a valid token is presented, and
// a session id to every request. Requests without a token proceed as guests.
func Middleware(tokens *Tokens, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionFromRequest(c)
		c.Set(sessionKey, sessionID)

		token := TokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokens.VerifyToken(token)
		if err != nil {
			log.Printf("Rejected token: %v", err)
			c.Next()
			return
		}

		user, err := users.UserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Printf("Token user %d not resolved: %v", claims.UserID, err)
			c.Next()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin is the server-side capability check for every mutating admin route.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// SetUser binds a user to the request, as a successful login does.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if token, err := c.Cookie(TokenCookie); err == nil {
		return token
	}
	return ""
}

func sessionFromRequest(c *gin.Context) string {
	if sid := c.GetHeader(SessionHeader); validSession(sid) {
		return sid
	}
	if sid, err := c.Cookie(SessionCookie); err == nil && validSession(sid) {
		return sid
	}

	sid := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sid, 0, "/", "", false, true)
	return sid
}

func validSession(sid string) bool {
	_, err := uuid.Parse(sid)
	return err == nil
}
