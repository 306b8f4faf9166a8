package repository

import (
	"context"
	"sync"

	"github.com/kaziabulhasib/EasyPay-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryUserRepository is a map-backed UserRepository used in tests.
// It enforces the same email/mobile uniqueness as the Mongo indexes.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // key: hex id
}

// NewInMemoryUserRepository returns an empty in-memory repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]models.User)}
}

func (r *InMemoryUserRepository) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if (u.Email != "" && u.Email == identifier) || (u.Mobile != "" && u.Mobile == identifier) {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) FindByEmailOrMobile(_ context.Context, email, mobile string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.match(email, mobile); ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) Insert(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.match(user.Email, user.Mobile); taken {
		return nil, ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID.Hex()] = *user
	return user, nil
}

func (r *InMemoryUserRepository) ListAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

// Count reports the number of stored records. Test helper.
func (r *InMemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// match must be called with the lock held.
func (r *InMemoryUserRepository) match(email, mobile string) (*models.User, bool) {
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (mobile != "" && u.Mobile == mobile) {
			u := u
			return &u, true
		}
	}
	return nil, false
}
