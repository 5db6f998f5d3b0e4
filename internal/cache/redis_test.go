package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisMock(t *testing.T) (*RedisCache, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, "cst:"), mock
}

func TestRedisCache_Get(t *testing.T) {
	c, mock := setupRedisMock(t)
	ctx := context.Background()

	mock.ExpectGet("cst:hit").SetVal("value")
	mock.ExpectGet("cst:miss").RedisNil()
	mock.ExpectGet("cst:down").SetErr(errors.New("connection refused"))

	got, err := c.Get(ctx, "hit")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	_, err = c.Get(ctx, "miss")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = c.Get(ctx, "down")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetExistsDelete(t *testing.T) {
	c, mock := setupRedisMock(t)
	ctx := context.Background()

	mock.ExpectSet("cst:k", []byte("v"), time.Hour).SetVal("OK")
	mock.ExpectExists("cst:k").SetVal(1)
	mock.ExpectDel("cst:k").SetVal(1)
	mock.ExpectExists("cst:k").SetVal(0)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))

	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetOrSet(t *testing.T) {
	c, mock := setupRedisMock(t)
	ctx := context.Background()

	mock.ExpectGet("cst:k").RedisNil()
	mock.ExpectSet("cst:k", []byte("fresh"), time.Minute).SetVal("OK")

	got, err := c.GetOrSet(ctx, "k", time.Minute, func() ([]byte, error) {
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_ClearScansPrefix(t *testing.T) {
	c, mock := setupRedisMock(t)
	ctx := context.Background()

	mock.ExpectScan(0, "cst:*", scanBatch).SetVal([]string{"cst:a", "cst:b"}, 7)
	mock.ExpectDel("cst:a", "cst:b").SetVal(2)
	mock.ExpectScan(7, "cst:*", scanBatch).SetVal([]string{}, 0)

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}
