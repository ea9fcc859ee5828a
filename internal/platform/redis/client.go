package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/cunningbot/internal/redact"
	goredis "github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Connect parses url, opens a client and verifies the connection with PING.
// The caller owns the returned client and must Close it.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %s", redact.Error(err))
	}

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %s", redact.Error(err))
	}

	return client, nil
}
