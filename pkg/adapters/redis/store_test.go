package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/storyboard/pkg/adapters/redis"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunDocumentStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "board", &domain.Document{Version: domain.DocumentVersion}))
	assert.True(t, mr.Exists("test:board"))
	assert.Equal(t, time.Minute, mr.TTL("test:board"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "board")
	assert.ErrorIs(t, err, domain.ErrArtboardNotFound)
}

func TestRedisStore_InvalidPayload(t *testing.T) {
	mr, client := setup(t)
	require.NoError(t, mr.Set("storyboard:artboard:broken", "{"))

	_, err := redis.NewFromClient(client).Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}
