package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefixSession prefixes every session key in redis.
const KeyPrefixSession = "portfolio:session:"

// SessionKey returns the redis key for a token hash.
func SessionKey(hash string) string {
	return KeyPrefixSession + hash
}

// RedisSessionStore keeps sessions in redis so they survive restarts and are
// shared across instances. Key expiry carries the session TTL.
type RedisSessionStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, now: time.Now}
}

func (r *RedisSessionStore) Create(ctx context.Context, ttl time.Duration) (string, *Session, error) {
	token, hash, err := GenerateToken()
	if err != nil {
		return "", nil, err
	}
	now := r.now()
	s := &Session{TokenHash: hash, CreatedAt: now, ExpiresAt: now.Add(ttl), LastSeen: now}

	data, err := json.Marshal(s)
	if err != nil {
		return "", nil, err
	}
	if err := r.client.Set(ctx, SessionKey(hash), data, ttl).Err(); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	return token, s, nil
}

func (r *RedisSessionStore) get(ctx context.Context, hash string) (*Session, error) {
	data, err := r.client.Get(ctx, SessionKey(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Validate(ctx context.Context, token string) (*Session, error) {
	hash := HashToken(token)
	s, err := r.get(ctx, hash)
	if err != nil {
		return nil, err
	}
	// Key expiry normally wins; this covers clock skew between hosts.
	if s.Expired(r.now()) {
		_ = r.client.Del(ctx, SessionKey(hash)).Err()
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *RedisSessionStore) Touch(ctx context.Context, token string) error {
	hash := HashToken(token)
	s, err := r.get(ctx, hash)
	if err != nil {
		return err
	}
	s.LastSeen = r.now()
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, SessionKey(hash), data, redis.KeepTTL).Err()
}

func (r *RedisSessionStore) Revoke(ctx context.Context, token string) error {
	return r.client.Del(ctx, SessionKey(HashToken(token))).Err()
}
