package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zero-waste-meals/internal/config"
	"zero-waste-meals/internal/model"
)

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	foods, ok := c.GetTop(ctx)
	assert.False(t, ok)
	assert.Nil(t, foods)

	// Writes are swallowed; a subsequent read still misses
	c.SetTop(ctx, []model.Food{{ID: uuid.New(), Name: "Bread", Quantity: 5, Date: time.Now()}})
	foods, ok = c.GetTop(ctx)
	assert.False(t, ok)
	assert.Nil(t, foods)

	assert.NotPanics(t, func() { c.Invalidate(ctx) })
}

func TestNewRedisCache_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, config.RedisConfig{
		Addr:       "localhost:1",
		TTLSeconds: 30,
	}, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, c)
}
