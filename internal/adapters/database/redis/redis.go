package redis

import (
	"context"
	"fmt"

	"github.com/clubhub-dev/clubhub/internal/adapters/database/redis/sessions"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Raw      *redis.Client
	Sessions *sessions.Storage
}

type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func New(ctx context.Context, opts Options) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping session storage: %w", err)
	}

	return &Client{
		Raw:      client,
		Sessions: sessions.NewStorage(client),
	}, nil
}

func (c *Client) Close() error {
	return c.Raw.Close()
}
