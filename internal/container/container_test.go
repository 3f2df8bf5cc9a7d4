package container_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/identity-service/internal/container"
	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT:    config.JWTConfig{SecretKey: "test-secret", TokenTTL: time.Hour},
		Hasher: config.HasherConfig{BcryptCost: 4},
	}
}

func TestContainer_ConstructionOrder(t *testing.T) {
	c := container.New(testConfig())

	for _, name := range []string{
		container.ServicePasswordHasher,
		container.ServiceTokenService,
		container.ServiceUserRepository,
		container.ServiceUserService,
	} {
		svc, err := c.Get(name)
		require.NoError(t, err, name)
		assert.NotNil(t, svc, name)
	}

	assert.Len(t, c.List(), 4)
	assert.NotNil(t, c.UserService())
	assert.NotNil(t, c.TokenService())
}

func TestContainer_Get(t *testing.T) {
	c := container.New(testConfig())

	t.Run("unregistered name", func(t *testing.T) {
		svc, err := c.Get("Nope")
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("entries are shared, not copied", func(t *testing.T) {
		first, err := c.Get(container.ServiceUserRepository)
		require.NoError(t, err)
		second, err := c.Get(container.ServiceUserRepository)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})
}

func TestContainer_RegisterReplace(t *testing.T) {
	c := container.New(testConfig())

	t.Run("register upserts", func(t *testing.T) {
		c.Register("Extra", "value")
		assert.True(t, c.Has("Extra"))

		c.Register("Extra", "other")
		svc, err := c.Get("Extra")
		require.NoError(t, err)
		assert.Equal(t, "other", svc)
	})

	t.Run("replace requires an existing entry", func(t *testing.T) {
		err := c.Replace("Unknown", "value")
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)

		fake := struct{ name string }{"fake hasher"}
		require.NoError(t, c.Replace(container.ServicePasswordHasher, fake))

		svc, err := c.Get(container.ServicePasswordHasher)
		require.NoError(t, err)
		assert.Equal(t, fake, svc)
	})
}

func TestContainer_Reset(t *testing.T) {
	c := container.New(testConfig())

	c.Register("Extra", "value")
	require.NoError(t, c.Replace(container.ServiceUserService, "swapped"))

	c.Reset()

	assert.False(t, c.Has("Extra"))
	assert.Len(t, c.List(), 4)
	assert.NotNil(t, c.UserService())
}
