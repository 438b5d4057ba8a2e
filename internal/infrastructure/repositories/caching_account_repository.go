package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tunefans/identity/internal/core/domain/account"
	"github.com/tunefans/identity/internal/core/domain/profile"
	"github.com/tunefans/identity/internal/core/ports"
)

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// CachingAccountRepository decorates an AccountRepository with cache-aside
// reads. Writes go straight through and refresh or drop the cached entry,
// so activation and password changes are visible immediately.
type CachingAccountRepository struct {
	inner ports.AccountRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingAccountRepository(inner ports.AccountRepository, cache ports.Cache, ttl time.Duration) ports.AccountRepository {
	return &CachingAccountRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingAccountRepository) CreateWithProfile(ctx context.Context, a *account.Account, p profile.Profile) error {
	if err := c.inner.CreateWithProfile(ctx, a, p); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, "account:id:"+a.ID.String(), a, c.ttl)
	cacheSetSilently(c.cache, ctx, "account:email:"+a.Email, a, c.ttl)
	return nil
}

func (c *CachingAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if v, ok := cacheGet[account.Account](c.cache, ctx, "account:id:"+id.String()); ok {
		return v, nil
	}
	a, err := c.inner.GetByID(ctx, id)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "account:id:"+id.String(), a, c.ttl)
		cacheSetSilently(c.cache, ctx, "account:email:"+a.Email, a, c.ttl)
	}
	return a, err
}

func (c *CachingAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	if v, ok := cacheGet[account.Account](c.cache, ctx, "account:email:"+email); ok {
		return v, nil
	}
	a, err := c.inner.GetByEmail(ctx, email)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "account:email:"+email, a, c.ttl)
		cacheSetSilently(c.cache, ctx, "account:id:"+a.ID.String(), a, c.ttl)
	}
	return a, err
}

func (c *CachingAccountRepository) Update(ctx context.Context, a *account.Account) error {
	if err := c.inner.Update(ctx, a); err != nil {
		return err
	}
	// Overwrite cache
	cacheSetSilently(c.cache, ctx, "account:id:"+a.ID.String(), a, c.ttl)
	cacheSetSilently(c.cache, ctx, "account:email:"+a.Email, a, c.ttl)
	return nil
}
