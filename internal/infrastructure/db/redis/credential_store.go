package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "hybrid-shell:session:"

// CredentialStore keeps the session mirror in Redis.
// Key format: <prefix><key>, e.g. hybrid-shell:session:auth_token
type CredentialStore struct {
	client *redis.Client
	prefix string
}

// NewCredentialStore wraps client. An empty prefix uses defaultKeyPrefix.
func NewCredentialStore(client *redis.Client, prefix string) *CredentialStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &CredentialStore{client: client, prefix: prefix}
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("credential get %s: %w", key, err)
	}
	return v, true, nil
}

// Write applies set and clear inside one MULTI/EXEC transaction. A key in
// both set and clear is set.
func (s *CredentialStore) Write(ctx context.Context, set map[string]string, clear ...string) error {
	var del []string
	for _, k := range clear {
		if _, ok := set[k]; !ok {
			del = append(del, s.key(k))
		}
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range set {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		if len(del) > 0 {
			pipe.Del(ctx, del...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("credential write: %w", err)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, s.keys(keys)...).Err(); err != nil {
		return fmt.Errorf("credential delete: %w", err)
	}
	return nil
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *CredentialStore) key(k string) string {
	return s.prefix + k
}

func (s *CredentialStore) keys(ks []string) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = s.key(k)
	}
	return out
}
