package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trogers1052/bond-crm-service/internal/config"
	"github.com/trogers1052/bond-crm-service/internal/models"
)

// ErrCacheMiss is returned when no analysis is cached for a transcript
var ErrCacheMiss = errors.New("cache miss")

// Client wraps the Redis client with analysis caching operations
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client
func New(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewFromClient wraps an existing go-redis client
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks if Redis is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// AnalysisKey returns the cache key for a transcript hash
func AnalysisKey(transcriptHash string) string {
	return fmt.Sprintf("transcript:%s:analysis", transcriptHash)
}

// SetAnalysis caches an analysis under its transcript hash with TTL
func (c *Client) SetAnalysis(ctx context.Context, a *models.Analysis, ttl time.Duration) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return c.rdb.Set(ctx, AnalysisKey(a.TranscriptHash), data, ttl).Err()
}

// GetAnalysis retrieves the cached analysis for a transcript hash
func (c *Client) GetAnalysis(ctx context.Context, transcriptHash string) (*models.Analysis, error) {
	data, err := c.rdb.Get(ctx, AnalysisKey(transcriptHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached analysis: %w", err)
	}

	var a models.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &a, nil
}
