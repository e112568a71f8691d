package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mysticum/wms/internal/domain/identity"
	"github.com/mysticum/wms/internal/interfaces/http/dto"
)

// RequireRoles allows only requests whose token carries one of the given
// role codes. Must run after JWTAuth.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Insufficient role for this operation", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// RequireManagerial allows only administrators, managers and deputy managers.
func RequireManagerial() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity.Role(GetJWTRole(c)).IsManagerial() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Managerial role required for this operation", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
