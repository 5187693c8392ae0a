package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Client wraps go-redis with the small surface the services need.
type Client struct {
	rdb *goredis.Client
}

func New(cfg config.RedisConfig) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "pinging redis")
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// SetNX sets key to value only if it does not exist, returning whether the
// key was claimed.
func (c *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, errors.Wrap(errors.CodeDependency, err, "redis SETNX")
	}
	return ok, nil
}

// Get returns the value at key, or empty string when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "redis GET")
	}
	return val, nil
}

// Set stores value at key with a TTL.
func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "redis SET")
	}
	return nil
}

// releaseScript deletes key only when it still holds value, so a worker
// never releases a lock another worker re-acquired.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// ReleaseIfHeld deletes key only when its current value matches value.
func (c *Client) ReleaseIfHeld(ctx context.Context, key, value string) error {
	if err := releaseScript.Run(ctx, c.rdb, []string{key}, value).Err(); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "redis lock release")
	}
	return nil
}

// Del removes keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "redis DEL")
	}
	return nil
}
