package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/career-compass-api/utils/response"
)

// LockoutStore is the counter storage brute force protection needs; *cache.RedisCache implements it
type LockoutStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// attemptWindow is how long failed logins are remembered
const attemptWindow = 15 * time.Minute

// BruteForceProtection locks out an IP after repeated failed logins
type BruteForceProtection struct {
	store LockoutStore
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store LockoutStore) *BruteForceProtection {
	return &BruteForceProtection{store: store}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// LockoutFor returns the lockout earned after n failed attempts, 0 for none
func LockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	default:
		return 0
	}
}

// CheckAndRecordAttempt middleware rejects requests from a locked IP
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := lockKey(c.IP())

		locked, err := b.store.Exists(c.Context(), key)
		if err != nil {
			// Cache outage must not lock everyone out
			return c.Next()
		}

		if locked {
			ttl, _ := b.store.TTL(c.Context(), key)
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt counts a failed login and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) error {
	attempts, err := b.store.Increment(ctx, attemptKey(ip))
	if err != nil {
		return nil
	}

	if attempts == 1 {
		_ = b.store.Expire(ctx, attemptKey(ip), attemptWindow)
	}

	lock := LockoutFor(attempts)
	if lock == 0 {
		return nil
	}
	return b.store.Set(ctx, lockKey(ip), "locked", lock)
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) {
	_ = b.store.Delete(ctx, attemptKey(ip), lockKey(ip))
}
