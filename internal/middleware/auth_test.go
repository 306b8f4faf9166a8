package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaziabulhasib/EasyPay-server/internal/repository"
	"github.com/kaziabulhasib/EasyPay-server/internal/service"
	"github.com/kaziabulhasib/EasyPay-server/internal/util"

	"github.com/gin-gonic/gin"
)

func newProtectedEngine(auth *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(ContextUserIDKey)})
	})
	return r
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	auth := service.NewAuthService(repository.NewInMemoryUserRepository(), "test-secret", time.Hour)
	r := newProtectedEngine(auth)

	token, err := util.GenerateToken("test-secret", "user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// cookie 没有时退回 Authorization 头
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if want := `"userId":"user-42"`; !strings.Contains(w.Body.String(), want) {
		t.Errorf("body = %s, want it to contain %s", w.Body.String(), want)
	}
}

func TestAuthMiddleware_CookieWins(t *testing.T) {
	auth := service.NewAuthService(repository.NewInMemoryUserRepository(), "test-secret", time.Hour)
	r := newProtectedEngine(auth)

	cookieToken, _ := util.GenerateToken("test-secret", "cookie-user", time.Hour)
	headerToken, _ := util.GenerateToken("test-secret", "header-user", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"userId":"cookie-user"`) {
		t.Errorf("cookie token should take precedence, body = %s", w.Body.String())
	}
}
