//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"sync"

	"chat-server/domain"

	"github.com/google/uuid"
)

type IUserRepository interface {
	Register(key, requestedName string) domain.User
	Unregister(key string)
	Get(key string) (domain.User, bool)
	Count() int
}

// UserRepository maps a stable connection key (the remote address) to
// the registered user for that connection. One active user per live
// connection; no enumeration is exposed beyond Count.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Register allocates a fresh unique id, inserts the user under key and
// returns it. A prior entry at the same key is silently overwritten
// (last-register-wins); the previous session's resources are not
// touched here.
func (u *UserRepository) Register(key, requestedName string) domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	user := domain.User{ID: uuid.New(), Name: requestedName}
	u.users[key] = user
	return user
}

// Unregister removes the entry for key. A missing key is a no-op, so
// double removal on cleanup paths is safe.
func (u *UserRepository) Unregister(key string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.users, key)
}

func (u *UserRepository) Get(key string) (domain.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.users[key]
	return user, ok
}

func (u *UserRepository) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.users)
}
