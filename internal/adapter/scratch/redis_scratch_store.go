package scratch

import (
	"context"
	"errors"
	"log"
	"time"

	"sisgenius/internal/usecase/interfaces"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	// draftTTL bounds how long an abandoned draft lingers. Scratch storage
	// is best effort anyway; nothing may depend on the value surviving.
	draftTTL = 7 * 24 * time.Hour

	probeTimeout = 2 * time.Second
)

// RedisScratchStore is the Redis-backed scratch storage for wizard drafts.
//
// Every operation starts with a sentinel write-read-delete probe; a failed
// probe means "storage unusable" and the affected key is removed so no
// half-written value survives. Absence is never an error.

type RedisScratchStore struct {
	client *redis.Client
}

var _ interfaces.IScratchStore = (*RedisScratchStore)(nil)

func NewRedisScratchStore(client *redis.Client) *RedisScratchStore {
	return &RedisScratchStore{client: client}
}

func (s *RedisScratchStore) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	sentinel := "scratch:probe:" + uuid.NewString()
	if err := s.client.Set(ctx, sentinel, "1", probeTimeout).Err(); err != nil {
		return false
	}
	if err := s.client.Get(ctx, sentinel).Err(); err != nil {
		return false
	}
	if err := s.client.Del(ctx, sentinel).Err(); err != nil {
		return false
	}
	return true
}

func (s *RedisScratchStore) Get(ctx context.Context, key string) (string, bool, error) {
	if !s.Available(ctx) {
		return "", false, nil
	}

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.selfHeal(ctx, key, err)
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisScratchStore) Set(ctx context.Context, key, value string) error {
	if !s.Available(ctx) {
		return errors.New("scratch storage unavailable")
	}

	if err := s.client.Set(ctx, key, value, draftTTL).Err(); err != nil {
		s.selfHeal(ctx, key, err)
		return err
	}
	return nil
}

func (s *RedisScratchStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisScratchStore) selfHeal(ctx context.Context, key string, cause error) {
	log.Printf("[scratch][redis] clearing key after storage error key=%s err=%v", key, cause)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("[scratch][redis] clear failed key=%s err=%v", key, err)
	}
}
