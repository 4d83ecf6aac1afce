package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"biz-directory/pkg/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenDenylist records revoked token ids until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const denylistPrefix = "auth:revoked:"

type redisDenylist struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisDenylist(client *redis.Client, log *zap.Logger) TokenDenylist {
	return &redisDenylist{
		client: client,
		log:    log.With(zap.String("cache", "token_denylist")),
	}
}

func (d *redisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, denylistPrefix+tokenID, 1, ttl).Err(); err != nil {
		d.log.Error("failed to revoke token", zap.Error(err))
		return apperror.Upstream("token store", err)
	}
	return nil
}

func (d *redisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, denylistPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		d.log.Error("failed to check token", zap.Error(err))
		return false, apperror.Upstream("token store", err)
	}
	return true, nil
}

// memoryDenylist is used when no Redis address is configured. Revocations
// live only as long as the process.
type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenylist() TokenDenylist {
	return &memoryDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, id)
		}
	}
	d.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	return ok && exp.After(d.now()), nil
}
