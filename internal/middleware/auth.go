package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kaziabulhasib/EasyPay-server/internal/service"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the cookie the login handler sets and this
// middleware reads.
const TokenCookieName = "token"

// ContextUserIDKey is where the middleware stores the authenticated
// user's id for downstream handlers.
const ContextUserIDKey = "userId"

// AuthMiddleware 校验请求携带的 token，并把 userId 放进 context。
// token 优先从 cookie 读取，其次是 Authorization: Bearer 头。
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		if cookie, err := c.Cookie(TokenCookieName); err == nil {
			tokenStr = cookie
		}

		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}
		}

		userID, err := auth.Authenticate(tokenStr)
		if err != nil {
			if errors.Is(err, service.ErrNoToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
				return
			}
			// 签名不对、过期、格式错，统一返回同一个错误
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
