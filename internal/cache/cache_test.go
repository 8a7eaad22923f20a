package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = client.Close()
		SetClient(nil)
	})
	return mr
}

type chef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestAside_LoadsOnceThenServesCache(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	calls := 0
	load := func(dest *[]chef) func() error {
		return func() error {
			calls++
			*dest = []chef{{ID: 1, Name: "ada"}}
			return nil
		}
	}

	var first, second []chef
	require.NoError(t, Aside(ctx, TopChefsKey, &first, LeaderboardTTL, load(&first)))
	require.NoError(t, Aside(ctx, TopChefsKey, &second, LeaderboardTTL, load(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(TopChefsKey))

	mr.FastForward(LeaderboardTTL + time.Second)
	var third []chef
	require.NoError(t, Aside(ctx, TopChefsKey, &third, LeaderboardTTL, load(&third)))
	assert.Equal(t, 2, calls)
}

func TestAside_LoadErrorIsNotCached(t *testing.T) {
	mr := useMiniredis(t)
	boom := errors.New("db down")

	var out []chef
	err := Aside(context.Background(), TrendingRecipesKey, &out, RecipeListTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(TrendingRecipesKey))
}

func TestAside_WithoutClientCallsFetch(t *testing.T) {
	SetClient(nil)
	var v int
	require.NoError(t, Aside(context.Background(), "k", &v, time.Minute, func() error {
		v = 7
		return nil
	}))
	assert.Equal(t, 7, v)
}

func TestInvalidate(t *testing.T) {
	mr := useMiniredis(t)
	require.NoError(t, mr.Set(TrendingRecipesKey, "[]"))
	require.NoError(t, mr.Set(FeaturedRecipesKey, "[]"))
	require.NoError(t, mr.Set(UserKey(4), "{}"))

	InvalidateRecipeLists(context.Background())
	InvalidateUser(context.Background(), 4)

	assert.False(t, mr.Exists(TrendingRecipesKey))
	assert.False(t, mr.Exists(FeaturedRecipesKey))
	assert.False(t, mr.Exists("user:4"))
}

func TestInitRedis_UnreachableLeavesNilClient(t *testing.T) {
	c := InitRedis("redis://127.0.0.1:1/0")
	assert.Nil(t, c)
	assert.Nil(t, GetClient())
}
