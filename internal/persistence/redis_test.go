package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/estate-navigator/internal/config"
)

func setupRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	require.NotNil(t, r)
	t.Cleanup(r.Close)
	return r, mr
}

func TestNewRedisDisabledWithoutAddr(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.Nil(t, r)

	ctx := context.Background()
	assert.ErrorIs(t, r.Ping(ctx), ErrRedisDisabled)
	assert.ErrorIs(t, r.Publish(ctx, "ch", []byte("x")), ErrRedisDisabled)
	r.Close()
}

func TestPing(t *testing.T) {
	r, mr := setupRedis(t)
	require.NoError(t, r.Ping(context.Background()))

	mr.Close()
	assert.Error(t, r.Ping(context.Background()))
}

func TestPublishReachesSubscriber(t *testing.T) {
	r, _ := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := r.Client.Subscribe(ctx, "estate:navigation")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, r.Publish(ctx, "estate:navigation", []byte(`{"type":"navigated"}`)))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "estate:navigation", msg.Channel)
		assert.JSONEq(t, `{"type":"navigated"}`, msg.Payload)
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}
