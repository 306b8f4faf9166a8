package handler

import (
	"errors"
	"net/http"

	"github.com/kaziabulhasib/EasyPay-server/internal/middleware"
	"github.com/kaziabulhasib/EasyPay-server/internal/models"
	"github.com/kaziabulhasib/EasyPay-server/internal/service"
	"github.com/kaziabulhasib/EasyPay-server/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责注册 / 登录 / 登出接口
type AuthHandler struct {
	Auth *service.AuthService
	// SecureCookie turns on the cookie Secure flag (release mode only,
	// like NODE_ENV=production in the original service).
	SecureCookie bool
}

// NewAuthHandler 构造函数
func NewAuthHandler(auth *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{Auth: auth, SecureCookie: secureCookie}
}

// ---------- 注册 ----------

// Register handles POST /register. The body carries email and/or
// mobile, a pin, and any number of extra profile fields which are
// stored as-is.
func (h *AuthHandler) Register(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	candidate := userFromBody(body)

	if err := util.ValidatePin(candidate.Pin); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if candidate.Email == "" && candidate.Mobile == "" {
		// 两个标识都没有的话，这个账号永远登录不了
		c.JSON(http.StatusBadRequest, gin.H{"message": "email or mobile is required"})
		return
	}
	if err := util.ValidateEmail(candidate.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := util.ValidateMobile(candidate.Mobile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	stored, err := h.Auth.Register(c.Request.Context(), candidate)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		return
	}

	// 返回完整存储记录（含哈希后的 pin），和原服务行为一致
	c.JSON(http.StatusOK, stored)
}

// userFromBody pulls the fields the core understands out of the raw
// request body and keeps the rest as opaque profile data.
func userFromBody(body map[string]interface{}) *models.User {
	user := &models.User{Extra: make(map[string]interface{})}
	for k, v := range body {
		switch k {
		case "email":
			user.Email, _ = v.(string)
		case "mobile":
			user.Mobile, _ = v.(string)
		case "pin":
			user.Pin, _ = v.(string)
		default:
			user.Extra[k] = v
		}
	}
	return user
}

// ---------- 登录 ----------

type loginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Pin        string `json:"pin" binding:"required"`
}

// Login handles POST /login. On success the signed token is set as an
// HTTP-only cookie; the body never contains it.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), req.Identifier, req.Pin)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		return
	}

	maxAge := int(h.Auth.TokenTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, token, maxAge, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
}

// ---------- 登出 ----------

// Logout clears the token cookie. Tokens are stateless so there is
// nothing to revoke server-side; the client just stops carrying it.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
