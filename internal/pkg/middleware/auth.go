package middleware

import (
	"net/http"
	"strings"

	"canvas_blog/pkg/response"
	"canvas_blog/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserID gin 上下文中已认证用户的键
const ContextUserID = "userID"

// AuthMiddleware JWT认证中间件，写路径必须携带有效 Token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseBearer(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证
// 读路径上无效或缺失的 Token 按匿名访客处理，不拦截请求
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := parseBearer(c); ok {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// parseBearer 解析 "Bearer <token>" 头
func parseBearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// CurrentUserID 从上下文取当前用户，匿名时返回空串
func CurrentUserID(c *gin.Context) string {
	val, _ := c.Get(ContextUserID)
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}
