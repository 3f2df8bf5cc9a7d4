package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/marcos-nsantos/identity-service/internal/adapter/repository"
	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
)

// UserRepo is a non-durable, in-process user store. A single RWMutex guards
// the map so the email-uniqueness invariant holds under concurrent
// registration attempts.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.PublicUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.Public(), nil
}

func (r *UserRepo) FindAll(ctx context.Context) ([]entity.PublicUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]entity.PublicUser, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user.Public())
	}
	return users, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.PublicUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.lookupByEmail(email)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user.Public(), nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lookupByEmail(email) != nil, nil
}

// Create stores a new user. The uniqueness check and the insert happen under
// the same write lock, so a losing concurrent create fails without mutating
// state.
func (r *UserRepo) Create(ctx context.Context, input repository.CreateUserInput) (*entity.PublicUser, error) {
	user, err := entity.NewUser(input.Email, input.Name, input.PasswordHash)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lookupByEmail(user.Email) != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	r.users[user.ID] = user
	return user.Public(), nil
}

// Update applies only the supplied fields, re-validating each. Validation and
// the collision check complete before any field is written.
func (r *UserRepo) Update(ctx context.Context, id string, input repository.UpdateUserInput) (*entity.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	email := user.Email
	if input.Email != "" {
		normalized, err := entity.NormalizeEmail(input.Email)
		if err != nil {
			return nil, err
		}
		if other := r.lookupByEmail(normalized); other != nil && other.ID != id {
			return nil, domain.ErrUserAlreadyExists
		}
		email = normalized
	}

	name := user.Name
	if input.Name != "" {
		normalized, err := entity.NormalizeName(input.Name)
		if err != nil {
			return nil, err
		}
		name = normalized
	}

	user.Email = email
	user.Name = name
	return user.Public(), nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// FindByEmailWithSecret returns the privileged view including the password
// hash. It hands out a copy so callers cannot mutate stored state.
func (r *UserRepo) FindByEmailWithSecret(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.lookupByEmail(email)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return false, nil
	}
	user.PasswordHash = passwordHash
	return true, nil
}

// Stats counts records created on or after local midnight of the call time.
func (r *UserRepo) Stats(ctx context.Context) (*repository.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	createdToday := 0
	for _, user := range r.users {
		if !user.CreatedAt.Before(midnight) {
			createdToday++
		}
	}

	return &repository.Stats{
		TotalUsers:   len(r.users),
		CreatedToday: createdToday,
	}, nil
}

// lookupByEmail matches case-insensitively. Callers must hold the lock.
func (r *UserRepo) lookupByEmail(email string) *entity.User {
	needle := strings.ToLower(email)
	for _, user := range r.users {
		if user.Email == needle {
			return user
		}
	}
	return nil
}
