package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore keeps pending verification codes. The backing store enforces the
// TTL itself; there is no in-process map and no lazy expiry.
type CodeStore interface {
	Put(ctx context.Context, email, codeHash, purpose string, ttl time.Duration) error
	// Consume checks the hash and deletes the entry on a match. A miss
	// (wrong code, expired, or never issued) returns (false, nil).
	Consume(ctx context.Context, email, codeHash, purpose string) (bool, error)
}

type codeRecord struct {
	CodeHash string `json:"code_hash"`
	Purpose  string `json:"purpose"`
}

// RedisCodeStore implements CodeStore on Redis with per-key expiry.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore connects and pings; a dead Redis fails startup rather
// than first use.
func NewRedisCodeStore(addr, password string, db int) (*RedisCodeStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisCodeStore{client: rdb}, nil
}

// Close releases the underlying client.
func (s *RedisCodeStore) Close() error { return s.client.Close() }

func codeKey(email, purpose string) string {
	return "verify:" + purpose + ":" + email
}

func (s *RedisCodeStore) Put(ctx context.Context, email, codeHash, purpose string, ttl time.Duration) error {
	payload, err := json.Marshal(codeRecord{CodeHash: codeHash, Purpose: purpose})
	if err != nil {
		return fmt.Errorf("marshal code record: %w", err)
	}
	if err := s.client.Set(ctx, codeKey(email, purpose), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Consume(ctx context.Context, email, codeHash, purpose string) (bool, error) {
	key := codeKey(email, purpose)
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch code: %w", err)
	}
	var rec codeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return false, fmt.Errorf("decode code record: %w", err)
	}
	if rec.CodeHash != codeHash || rec.Purpose != purpose {
		// wrong guess does not burn the code; expiry still bounds attempts
		return false, nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("consume code: %w", err)
	}
	return true, nil
}

// GenerateCode returns a 6-digit numeric verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashCode hashes a verification code for storage; codes are never kept in
// plaintext.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
