package handler

import (
	"errors"
	"net/http"

	"github.com/kaziabulhasib/EasyPay-server/internal/middleware"
	"github.com/kaziabulhasib/EasyPay-server/internal/repository"
	"github.com/kaziabulhasib/EasyPay-server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 返回用户数据的只读接口，都挂在鉴权中间件后面
type UserHandler struct {
	Auth *service.AuthService
}

// NewUserHandler 构造函数
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{Auth: auth}
}

// ListUsers handles GET /users: every stored record, as stored.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Auth.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListPayments handles GET /payment. The transaction history feature
// was never finished upstream; it returns the same listing as /users.
func (h *UserHandler) ListPayments(c *gin.Context) {
	h.ListUsers(c)
}

// GetMe handles GET /me: the authenticated user's own record, with the
// pin hash stripped.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied"})
		return
	}

	user, err := h.Auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// token 有效但用户不在了
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
