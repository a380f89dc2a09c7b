package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/redissvc"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// ErrRefreshTokenInvalid is returned when a refresh token is unknown,
// expired, or already redeemed.
var ErrRefreshTokenInvalid = errors.New("refresh token invalid or expired")

// RefreshTokenStore issues and redeems refresh tokens. Tokens are single
// use: a successful Redeem invalidates the token.
type RefreshTokenStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Redeem(ctx context.Context, token string) (string, error)
}

// RedisRefreshStore keeps refresh tokens in redis; the TTL takes care of
// expiry so no cleanup loop is needed.
type RedisRefreshStore struct {
	redis *redissvc.RedisService
}

func NewRedisRefreshStore(svc *redissvc.RedisService) *RedisRefreshStore {
	return &RedisRefreshStore{redis: svc}
}

// Issue mints a refresh token bound to userID.
func (s *RedisRefreshStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.redis.Rdb().Set(ctx, refreshKey(token), userID, refreshTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem consumes a refresh token and returns the bound user id. GetDel makes
// redemption atomic, so a replayed token fails.
func (s *RedisRefreshStore) Redeem(ctx context.Context, token string) (string, error) {
	userID, err := s.redis.Rdb().GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func refreshKey(token string) string {
	return "refresh:" + token
}

// MemoryRefreshStore is the in-memory counterpart used by tests and
// single-node setups without redis.
type MemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]memoryRefreshToken
}

type memoryRefreshToken struct {
	userID    string
	expiresAt time.Time
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{tokens: map[string]memoryRefreshToken{}}
}

func (s *MemoryRefreshStore) Issue(_ context.Context, userID string) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryRefreshToken{userID: userID, expiresAt: time.Now().Add(refreshTokenTTL)}
	return token, nil
}

func (s *MemoryRefreshStore) Redeem(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrRefreshTokenInvalid
	}
	delete(s.tokens, token)
	return entry.userID, nil
}
