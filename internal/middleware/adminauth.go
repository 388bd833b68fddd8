package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminSessionCookie is the cookie holding the signed admin session token.
const AdminSessionCookie = "admin_session"

// adminUsernameKey is the gin context key for the authenticated admin.
const adminUsernameKey = "adminUsername"

// adminClaims are the JWT claims of an admin session.
type adminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAdminSession issues a signed session token for an authenticated admin.
func NewAdminSession(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(secret))
}

// ParseAdminSession verifies a session token and returns the admin username.
func ParseAdminSession(secret, tokenString string) (string, error) {
	var claims adminClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Username == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Username, nil
}

// AdminRequired returns middleware that gates admin routes behind a valid
// session cookie and stores the admin username in the request context.
func AdminRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AdminSessionCookie)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		username, err := ParseAdminSession(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(adminUsernameKey, username)
		c.Next()
	}
}

// AdminOptional returns middleware that records the admin username when a
// valid session cookie is present but never rejects the request. Used on
// public routes whose audit trail attributes admin submissions.
func AdminOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AdminSessionCookie)
		if err == nil && tokenString != "" {
			if username, err := ParseAdminSession(secret, tokenString); err == nil {
				c.Set(adminUsernameKey, username)
			}
		}
		c.Next()
	}
}

// AdminUsername returns the authenticated admin username, or an empty
// string for public requests.
func AdminUsername(c *gin.Context) string {
	return c.GetString(adminUsernameKey)
}
