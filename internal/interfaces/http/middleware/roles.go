package middleware

import (
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireRoles returns a middleware that allows only the listed roles past.
// It must run after JWTAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, ok := GetJWTRole(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !allowed[role] {
			requestID := getRequestIDFromContext(c)
			c.AbortWithStatusJSON(
				dto.GetHTTPStatus(dto.ErrCodeForbidden),
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient permissions for this operation", requestID),
			)
			return
		}
		c.Next()
	}
}
