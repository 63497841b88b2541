// Package cache provides the Redis-backed read cache for wallet lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mahfaza/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheService caches wallet reads. A nil service is a no-op cache so the
// application keeps working when Redis is down.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if client == nil {
		return nil
	}
	return &CacheService{client: client, ttl: ttl}
}

func walletKey(userID string) string {
	return fmt.Sprintf("wallet:%s", userID)
}

func (s *CacheService) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if s == nil {
		return nil, ErrCacheMiss
	}
	val, err := s.client.Get(ctx, walletKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var wallet models.Wallet
	if err := json.Unmarshal([]byte(val), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *CacheService) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, walletKey(wallet.UserID), data, s.ttl).Err()
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID string) error {
	if s == nil {
		return nil
	}
	return s.client.Del(ctx, walletKey(userID)).Err()
}

func (s *CacheService) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}
