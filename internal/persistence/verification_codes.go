package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const verificationCodePrefix = "verification_code:"

// StoreVerificationCode saves a code for the given email, replacing any
// previous one, with the supplied TTL.
func (r *Redis) StoreVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Set(ctx, verificationCodePrefix+email, code, ttl).Err()
}

// GetVerificationCode returns the stored code for the email, or "" when no
// code exists or it has expired.
func (r *Redis) GetVerificationCode(ctx context.Context, email string) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("redis client not configured")
	}
	code, err := r.Client.Get(ctx, verificationCodePrefix+email).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// DeleteVerificationCode removes the stored code so it cannot be replayed.
func (r *Redis) DeleteVerificationCode(ctx context.Context, email string) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Del(ctx, verificationCodePrefix+email).Err()
}
