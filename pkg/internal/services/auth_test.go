package services

import (
	"context"
	"testing"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *miniredis.Miniredis {
	server := miniredis.RunT(t)

	previous := cache.C
	cache.C = redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { cache.C = previous })

	return server
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticateJwt(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")

	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"email": "jane.doe@x.com",
		"name":  "Jane",
	})

	account, err := authenticateJwt(token)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@x.com", account.Email)
	assert.Equal(t, "Jane", account.Name)
}

func TestAuthenticateJwtNameFallback(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")

	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"email": "jane.doe@x.com",
	})

	account, err := authenticateJwt(token)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", account.Name)
}

func TestAuthenticateJwtRejectsBadSecret(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")

	token := signTestToken(t, "another-secret", jwt.MapClaims{
		"email": "jane.doe@x.com",
	})

	_, err := authenticateJwt(token)
	assert.Error(t, err)
}

func TestAuthenticateCachesIdentity(t *testing.T) {
	server := newTestCache(t)
	viper.Set("security.jwt_secret", "test-secret")

	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"email": "jane.doe@x.com",
	})

	account, err := Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@x.com", account.Email)
	assert.True(t, server.Exists("auth:"+digestToken(token)))

	// The cache answers the second call; rotating the secret does not
	// matter until the entry lapses.
	viper.Set("security.jwt_secret", "rotated-secret")
	account, err = Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@x.com", account.Email)
}

func TestForgetAuthCacheRevokesImmediately(t *testing.T) {
	server := newTestCache(t)
	viper.Set("security.jwt_secret", "test-secret")

	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"email": "jane.doe@x.com",
	})

	_, err := Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.True(t, server.Exists("auth:"+digestToken(token)))

	ForgetAuthCache(context.Background(), digestToken(token))
	assert.False(t, server.Exists("auth:"+digestToken(token)))

	// With the entry gone, a now-invalid credential stops resolving.
	viper.Set("security.jwt_secret", "rotated-secret")
	_, err = Authenticate(context.Background(), token)
	assert.Error(t, err)
}

func TestAuthenticateJwtRequiresEmail(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")

	token := signTestToken(t, "test-secret", jwt.MapClaims{
		"name": "No Email",
	})

	_, err := authenticateJwt(token)
	assert.Error(t, err)
}
