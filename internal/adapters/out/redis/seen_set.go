// Package redis shares the new-order seen set between service instances.
package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"localstore/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// NewClient connects and pings addr.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return client, nil
}

// SeenSet implements ports.SeenSet as one Redis set per scope. Each set
// expires ttl after its last change, so partners who stop polling leave
// nothing behind.
type SeenSet struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewSeenSet(client redis.UniversalClient, prefix string, ttl time.Duration) (*SeenSet, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl < 0 {
		return nil, errs.NewValueIsOutOfRangeError("ttl", ttl, 0, "unbounded")
	}
	return &SeenSet{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *SeenSet) key(scope string) string {
	return s.prefix + "seen:" + scope
}

func (s *SeenSet) Members(ctx context.Context, scope string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key(scope)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *SeenSet) Add(ctx context.Context, scope string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, s.key(scope), members...)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key(scope), s.ttl)
		}
		return nil
	})
	return err
}

func (s *SeenSet) Remove(ctx context.Context, scope string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	return s.client.SRem(ctx, s.key(scope), members...).Err()
}
