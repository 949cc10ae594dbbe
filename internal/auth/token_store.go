package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	refreshBlacklistKey   = "blacklist:refresh_token:"
)

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID, email string, ttl time.Duration) error {
	data := map[string]interface{}{
		"email": email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetRefreshToken retrieves the subject bound to a refresh token.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, error) {
	key := refreshTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return "", fmt.Errorf("refresh token not found")
	}

	var tokenData map[string]interface{}
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return "", fmt.Errorf("unmarshal token data: %w", err)
	}

	email, ok := tokenData["email"].(string)
	if !ok {
		return "", fmt.Errorf("invalid email in token data")
	}
	return email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}

// BlacklistRefreshToken marks a refresh token as revoked until it expires.
func (s *TokenStore) BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := refreshBlacklistKey + tokenID
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsRefreshTokenBlacklisted checks if a refresh token has been revoked.
func (s *TokenStore) IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	key := refreshBlacklistKey + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil // fail safe
	}
	return data != nil, nil
}
