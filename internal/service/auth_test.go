package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaziabulhasib/EasyPay-server/internal/models"
	"github.com/kaziabulhasib/EasyPay-server/internal/repository"
	"github.com/kaziabulhasib/EasyPay-server/internal/util"
)

const testSecret = "test-secret"

func newTestService() (*AuthService, *repository.InMemoryUserRepository) {
	repo := repository.NewInMemoryUserRepository()
	return NewAuthService(repo, testSecret, time.Hour), repo
}

func TestRegister_HashesPin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	stored, err := svc.Register(ctx, &models.User{Email: "a@x.com", Mobile: "1", Pin: "1234"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if stored.ID.IsZero() {
		t.Error("stored record should have an assigned id")
	}
	if stored.Pin == "1234" {
		t.Error("stored pin must not be plaintext")
	}
	if !util.CheckPin("1234", stored.Pin) {
		t.Error("stored pin hash should verify against the original pin")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.User{Email: "a@x.com", Mobile: "1", Pin: "1234"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// 同 email 不同 mobile
	_, err := svc.Register(ctx, &models.User{Email: "a@x.com", Mobile: "2", Pin: "9999"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("duplicate email: err = %v, want ErrDuplicateUser", err)
	}

	// 同 mobile 不同 email
	_, err = svc.Register(ctx, &models.User{Email: "b@x.com", Mobile: "1", Pin: "9999"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("duplicate mobile: err = %v, want ErrDuplicateUser", err)
	}

	// 重复注册不应增加记录数
	if repo.Count() != 1 {
		t.Errorf("record count = %d, want 1", repo.Count())
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	stored, err := svc.Register(ctx, &models.User{Email: "a@x.com", Mobile: "1", Pin: "1234"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// email 和 mobile 都可以作为 identifier
	for _, identifier := range []string{"a@x.com", "1"} {
		token, err := svc.Login(ctx, identifier, "1234")
		if err != nil {
			t.Fatalf("Login(%q) failed: %v", identifier, err)
		}
		userID, err := svc.Authenticate(token)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if userID != stored.ID.Hex() {
			t.Errorf("token userId = %q, want %q", userID, stored.ID.Hex())
		}
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.User{Email: "a@x.com", Pin: "1234"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// 密码错误和用户不存在必须返回同一个错误
	_, errWrongPin := svc.Login(ctx, "a@x.com", "0000")
	_, errNoUser := svc.Login(ctx, "nobody@x.com", "1234")

	if !errors.Is(errWrongPin, ErrInvalidCredentials) {
		t.Errorf("wrong pin: err = %v, want ErrInvalidCredentials", errWrongPin)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Errorf("unknown identifier: err = %v, want ErrInvalidCredentials", errNoUser)
	}
	if !errors.Is(errWrongPin, errNoUser) && errWrongPin.Error() != errNoUser.Error() {
		t.Error("the two failure modes must be indistinguishable")
	}
}

func TestAuthenticate_Errors(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Authenticate(""); !errors.Is(err, ErrNoToken) {
		t.Errorf("empty token: err = %v, want ErrNoToken", err)
	}

	if _, err := svc.Authenticate("garbage.token.value"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: err = %v, want ErrInvalidToken", err)
	}

	// 用别的密钥签出来的 token 不应通过
	other, err := util.GenerateToken("another-secret", "user-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := svc.Authenticate(other); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign-secret token: err = %v, want ErrInvalidToken", err)
	}
}

func TestListUsers(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, u := range []*models.User{
		{Email: "a@x.com", Mobile: "1", Pin: "1234"},
		{Email: "b@x.com", Mobile: "2", Pin: "5678"},
	} {
		if _, err := svc.Register(ctx, u); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("len(users) = %d, want 2", len(users))
	}
}
