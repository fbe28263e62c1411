package xredis

import (
	"context"
	"time"

	"github.com/mtaadao/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key ...string) error

	// List
	LPush(ctx context.Context, key string, values ...string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Set
	SAdd(ctx context.Context, key string, members ...string) error
	SCard(ctx context.Context, key string) (uint64, error)
	SMembers(ctx context.Context, key string) ([]string, error)

	// Single object
	Set(ctx context.Context, key, value string) error
	SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetObj(ctx context.Context, key string, v any) error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) Del(ctx context.Context, key ...string) error {
	err := c.redisClient.Del(ctx, key...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}

///// LIST

func (c *client) LPush(ctx context.Context, key string, values ...string) error {
	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}

	return c.redisClient.LPush(ctx, key, args...).Err()
}

func (c *client) LTrim(ctx context.Context, key string, start, stop int64) error {
	return c.redisClient.LTrim(ctx, key, start, stop).Err()
}

func (c *client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return c.redisClient.LRange(ctx, key, start, stop).Result()
}

///// SET

func (c *client) SAdd(ctx context.Context, key string, members ...string) error {
	args := make([]any, 0, len(members))
	for _, m := range members {
		args = append(args, m)
	}

	return c.redisClient.SAdd(ctx, key, args...).Err()
}

func (c *client) SCard(ctx context.Context, key string) (uint64, error) {
	n, err := c.redisClient.SCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	return uint64(n), nil
}

func (c *client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.redisClient.SMembers(ctx, key).Result()
}

///// SINGLE OBJECT

func (c *client) Set(ctx context.Context, key, value string) error {
	return c.redisClient.Set(ctx, key, value, 0).Err()
}

func (c *client) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	return c.redisClient.Set(ctx, key, obj, ttl).Err()
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) GetObj(ctx context.Context, key string, v any) error {
	return c.redisClient.Get(ctx, key).Scan(v)
}
