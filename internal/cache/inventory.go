package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	WSTicketKeyPrefix  = "ws_ticket:%s"
	BlacklistKeyPrefix = "blacklist:%s"
	TrendingRecipesKey = "recipes:trending"
	FeaturedRecipesKey = "recipes:featured"
	TopChefsKey        = "users:top_chefs"
)

const (
	UserTTL        = 5 * time.Minute
	WSTicketTTL    = 30 * time.Second
	RecipeListTTL  = 60 * time.Second
	LeaderboardTTL = 60 * time.Second
)

// UserKey is the cache key of the auth snapshot for a user.
func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// WSTicketKey is the key of a single-use websocket ticket.
func WSTicketKey(ticket string) string {
	return fmt.Sprintf(WSTicketKeyPrefix, ticket)
}

// BlacklistKey is the key marking a revoked token id.
func BlacklistKey(jti string) string {
	return fmt.Sprintf(BlacklistKeyPrefix, jti)
}

// Invalidate deletes keys, ignoring a missing client.
func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateRecipeLists drops every cached public recipe list.
func InvalidateRecipeLists(ctx context.Context) {
	Invalidate(ctx, TrendingRecipesKey, FeaturedRecipesKey)
}

func InvalidateLeaderboard(ctx context.Context) {
	Invalidate(ctx, TopChefsKey)
}
