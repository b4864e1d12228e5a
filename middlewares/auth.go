package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shaymimran45/CTF-WAR-2/models"
	"github.com/shaymimran45/CTF-WAR-2/utils"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextUserRole = "user_role"
)

// JWTAuth 校验 Bearer Token，通过后把用户信息放进上下文
func JWTAuth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Access token required")
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.AbortError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := jwtManager.Parse(parts[1])
		if err != nil {
			utils.AbortError(c, http.StatusForbidden, "Invalid or expired token")
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole 角色门禁，需要挂在 JWTAuth 之后
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get(ContextUserRole)
		if !exists {
			utils.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		role := roleAny.(models.UserRole)

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}
		utils.AbortError(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// CurrentUserID 读取 JWTAuth 写入的用户 ID
func CurrentUserID(c *gin.Context) uint {
	idAny, _ := c.Get(ContextUserID)
	id, _ := idAny.(uint)
	return id
}
