//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/cunningbot/internal/ciutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis returns a client for the Redis named by BOT_TEST_REDIS_URL, or
// starts a throwaway container when none is configured. Outside CI the test
// is skipped when no container runtime is available.
func setupRedis(t *testing.T) *goredis.Client {
	t.Helper()
	ctx := context.Background()

	if url := ciutil.TestRedisURL(nil); url != "" {
		client, err := Connect(ctx, url)
		if err != nil {
			t.Fatalf("Failed to connect to Redis: %v", err)
		}
		// Tests share the external database, so start from empty.
		if err := client.FlushDB(ctx).Err(); err != nil {
			t.Fatalf("Failed to flush Redis: %v", err)
		}
		t.Cleanup(func() { _ = client.Close() })
		return client
	}

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		if ciutil.IsCI() {
			t.Fatalf("Failed to start Redis testcontainer: %v", err)
		}
		t.Skipf("Failed to start Redis testcontainer: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get Redis connection string: %v", err)
	}

	client, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}
