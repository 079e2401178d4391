package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/cache"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
)

const authCacheLifespan = 5 * time.Minute

// Authenticate resolves a bearer credential into an account. Both the
// identity provider's JWTs and developer API keys are accepted.
func Authenticate(ctx context.Context, token string) (models.Account, error) {
	var account models.Account

	key := fmt.Sprintf("auth:%s", digestToken(token))
	if cache.C != nil {
		if raw, err := cache.C.Get(ctx, key).Result(); err == nil {
			if jsoniter.UnmarshalFromString(raw, &account) == nil {
				return account, nil
			}
		}
	}

	var err error
	if strings.HasPrefix(token, apiKeyPrefix) {
		account, err = AuthenticateApiKey(token)
	} else {
		account, err = authenticateJwt(token)
	}
	if err != nil {
		return account, err
	}

	if cache.C != nil {
		raw, _ := jsoniter.MarshalToString(account)
		cache.C.Set(ctx, key, raw, authCacheLifespan)
	}

	return account, nil
}

func authenticateJwt(token string) (models.Account, error) {
	var account models.Account

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil {
		return account, err
	}

	if email, ok := claims["email"].(string); ok && len(email) > 0 {
		account.Email = email
	} else {
		return account, fmt.Errorf("token is missing the email claim")
	}
	if name, ok := claims["name"].(string); ok {
		account.Name = name
	}
	if len(account.Name) == 0 {
		account.Name = NameFromEmail(account.Email)
	}
	if picture, ok := claims["picture"].(string); ok {
		account.Picture = picture
	}

	return account, nil
}

// ForgetAuthCache drops the cached identity behind a credential digest
// so revoked credentials stop resolving before the cache entry lapses.
func ForgetAuthCache(ctx context.Context, digest string) {
	if cache.C != nil {
		cache.C.Del(ctx, fmt.Sprintf("auth:%s", digest))
	}
}

func digestToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
