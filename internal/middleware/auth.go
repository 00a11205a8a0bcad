package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"campusnet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key the auth middleware fills in.
const ContextUserID = "user_id"

// Auth validates the Bearer token and puts the user id into the
// request context. Every protected route reads identity from here,
// never from client-supplied fields.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authorization header is required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := ParseUserID(tokenString, secret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// ParseUserID extracts the user id from a signed token. Shared with
// the websocket upgrade path, which carries the token in the query
// string instead of a header.
func ParseUserID(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("missing user_id claim")
	}
	return userID, nil
}

// UserID reads the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
