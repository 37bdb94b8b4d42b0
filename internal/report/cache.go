package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"frauddash/internal/domain"
)

// DatasetFingerprint returns a stable content hash of the dataset, used
// as the cache key. Two processes loading the same CSV compute the same
// fingerprint, so a restart can serve its summary from cache; any
// change to the data changes the key.
func DatasetFingerprint(dataset []domain.Transaction) string {
	h := sha256.New()
	for _, tx := range dataset {
		fmt.Fprintf(h, "%d\x1f%s\x1f%s\x1f%s\x1f%v\x1f%s\x1f%t\x1e",
			tx.RowID, tx.TransactionID, tx.Merchant, tx.Location,
			tx.Amount, tx.Timestamp, tx.IsPotentialFraud)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SummaryCache stores computed summaries keyed by dataset identity.
// Caching is purely an optimization: a Get miss or any error simply
// causes a recomputation.
type SummaryCache interface {
	Get(key string) (*domain.Summary, error)
	Set(key string, summary *domain.Summary) error
}

// RedisSummaryCache backs SummaryCache with Redis.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache wraps a Redis client as a SummaryCache. Entries
// expire after ttl; keys are content fingerprints so staleness is not a
// concern, expiry only bounds memory.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

func (c *RedisSummaryCache) Get(key string) (*domain.Summary, error) {
	ctx := context.Background()
	data, err := c.client.Get(ctx, summaryKey(key)).Result()
	if err != nil {
		return nil, err
	}

	var summary domain.Summary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *RedisSummaryCache) Set(key string, summary *domain.Summary) error {
	ctx := context.Background()
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(key), data, c.ttl).Err()
}

func summaryKey(fingerprint string) string {
	return "frauddash:summary:" + fingerprint
}
