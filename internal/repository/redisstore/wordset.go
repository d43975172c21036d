// Package redisstore loads word sets from a Redis set, for deployments
// that keep the breach blacklist in a shared store instead of a local
// file.
package redisstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// WordSetRepository reads every member of a Redis set, lowercased. A
// missing key simply yields an empty set; connection failures are returned
// for the caller to degrade to an empty set.
type WordSetRepository struct {
	client *redis.Client
	key    string
}

func NewWordSetRepository(client *redis.Client, key string) *WordSetRepository {
	return &WordSetRepository{client: client, key: key}
}

func (r *WordSetRepository) Load(ctx context.Context) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return set, fmt.Errorf("failed to read set %q: %w", r.key, err)
	}
	for _, m := range members {
		word := strings.ToLower(strings.TrimSpace(m))
		if word != "" {
			set[word] = struct{}{}
		}
	}
	return set, nil
}
