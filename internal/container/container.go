// Package container wires the identity core together. A process constructs
// exactly one Container in main and passes it by reference; tests build
// isolated instances and swap capabilities through Replace.
package container

import (
	"fmt"
	"sync"

	"github.com/marcos-nsantos/identity-service/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/auth"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/config"
	"github.com/marcos-nsantos/identity-service/internal/usecase/user"
)

// Logical capability names.
const (
	ServicePasswordHasher = "PasswordHasher"
	ServiceTokenService   = "TokenService"
	ServiceUserRepository = "UserRepository"
	ServiceUserService    = "UserService"
)

type Container struct {
	mu       sync.RWMutex
	services map[string]any
	cfg      *config.Config
}

// New builds the registry in fixed dependency order: the hasher, token
// service and repository have no dependencies and are constructed first; the
// user service consumes all three.
func New(cfg *config.Config) *Container {
	c := &Container{cfg: cfg}
	c.registerServices()
	return c
}

func (c *Container) registerServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	hasher := auth.NewPasswordHasher(c.cfg.Hasher.BcryptCost)
	tokens := auth.NewTokenService(c.cfg.JWT.SecretKey, c.cfg.JWT.TokenTTL)
	users := memory.NewUserRepo()

	c.services = map[string]any{
		ServicePasswordHasher: hasher,
		ServiceTokenService:   tokens,
		ServiceUserRepository: users,
		ServiceUserService:    user.NewService(users, hasher, tokens),
	}
}

func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	svc, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrServiceNotFound, name)
	}
	return svc, nil
}

// Register adds or overwrites an entry.
func (c *Container) Register(name string, svc any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.services[name] = svc
}

// Replace swaps an existing entry and fails when the name was never
// registered, so call sites distinguish "add new" from "swap existing".
func (c *Container) Replace(name string, svc any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.services[name]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrServiceNotFound, name)
	}
	c.services[name] = svc
	return nil
}

func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.services[name]
	return ok
}

func (c *Container) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.services))
	for name := range c.services {
		names = append(names, name)
	}
	return names
}

// Reset discards every entry and re-runs the fixed construction order with
// the container's original configuration.
func (c *Container) Reset() {
	c.registerServices()
}

// UserService returns the registered orchestration core. It panics if the
// entry was replaced with something that is not a *user.Service; use Get for
// substituted implementations.
func (c *Container) UserService() *user.Service {
	svc, err := c.Get(ServiceUserService)
	if err != nil {
		panic(err)
	}
	return svc.(*user.Service)
}

// TokenService returns the registered token capability.
func (c *Container) TokenService() *auth.TokenService {
	svc, err := c.Get(ServiceTokenService)
	if err != nil {
		panic(err)
	}
	return svc.(*auth.TokenService)
}
