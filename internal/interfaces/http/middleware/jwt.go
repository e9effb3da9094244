package middleware

import (
	"errors"
	"strings"

	"github.com/blindtest/backend/internal/infrastructure/auth"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys for JWT claims
const (
	ContextKeyJWTClaims = "jwt_claims"
	ContextKeyUserID    = "jwt_user_id"
	ContextKeyUserEmail = "jwt_email"
	ContextKeyUserRole  = "jwt_role"
)

// JWTAuthConfig configures the JWT authentication middleware
type JWTAuthConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
}

// JWTAuth returns a middleware that validates Bearer tokens and stores the
// authenticated identity in the request context
func JWTAuth(cfg JWTAuthConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		token, ok := extractBearerToken(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing or malformed Authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			code, message := tokenErrorResponse(err)
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(ContextKeyJWTClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserEmail, claims.Email)
		c.Set(ContextKeyUserRole, claims.Role)

		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func tokenErrorResponse(err error) (string, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Access token has expired"
	case errors.Is(err, auth.ErrInvalidTokenType):
		return dto.ErrCodeTokenInvalid, "Token is not an access token"
	default:
		return dto.ErrCodeTokenInvalid, "Invalid access token"
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := getRequestIDFromContext(c)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTClaims retrieves the validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyJWTClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID retrieves the authenticated user's UUID from the gin context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := GetJWTClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetJWTRole retrieves the authenticated user's role from the gin context
func GetJWTRole(c *gin.Context) (string, bool) {
	claims, ok := GetJWTClaims(c)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
