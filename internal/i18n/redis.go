package i18n

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
)

const DefaultRedisPrefix = "apierror:messages"

// subset of redis.UniversalClient used to read overrides
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// reads message overrides stored as one hash per locale (<prefix>:<tag>, field = key).
// the result is meant for Bundle.With; the live bundle is never mutated.
func LoadRedisOverrides(ctx context.Context, client hashReader, prefix string, tags []language.Tag) (map[string]map[string]string, error) {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	overrides := make(map[string]map[string]string, len(tags))

	for _, tag := range tags {
		key := fmt.Sprintf("%s:%s", prefix, tag.String())

		values, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read message overrides %s: %w", key, err)
		}

		if len(values) > 0 {
			overrides[tag.String()] = values
		}
	}

	return overrides, nil
}
