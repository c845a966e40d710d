package followapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plume/internal/adapters/memory"
	"plume/internal/config"
)

func init() {
	config.Logger = zap.NewNop()
}

func TestFollowSelfIsNoOp(t *testing.T) {
	store := memory.NewStore()
	svc := NewFollowService(store.Follows())
	u := store.SeedUser("olga", "olga@example.com")

	err := svc.Follow(context.Background(), u.ID.String(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, store.FollowCount(), "self-follow must never create a row")
}

func TestFollowIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	svc := NewFollowService(store.Follows())
	u := store.SeedUser("olga", "olga@example.com")
	a := store.SeedUser("lev", "lev@example.com")

	ctx := context.Background()
	require.NoError(t, svc.Follow(ctx, u.ID.String(), a.ID.String()))
	require.NoError(t, svc.Follow(ctx, u.ID.String(), a.ID.String()))
	assert.Equal(t, 1, store.FollowCount(), "following twice keeps a single row")

	following, err := svc.IsFollowing(ctx, u.ID.String(), a.ID.String())
	require.NoError(t, err)
	assert.True(t, following)
}

func TestUnfollowRemovesExactlyOneRelation(t *testing.T) {
	store := memory.NewStore()
	svc := NewFollowService(store.Follows())
	u := store.SeedUser("olga", "olga@example.com")
	a := store.SeedUser("lev", "lev@example.com")
	b := store.SeedUser("anna", "anna@example.com")

	ctx := context.Background()
	require.NoError(t, svc.Follow(ctx, u.ID.String(), a.ID.String()))
	require.NoError(t, svc.Follow(ctx, u.ID.String(), b.ID.String()))

	require.NoError(t, svc.Unfollow(ctx, u.ID.String(), a.ID.String()))
	assert.Equal(t, 1, store.FollowCount())

	ids, err := svc.FollowingIDs(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID.String()}, ids)

	// unfollowing again is harmless
	require.NoError(t, svc.Unfollow(ctx, u.ID.String(), a.ID.String()))
	assert.Equal(t, 1, store.FollowCount())
}

func TestFollowersOf(t *testing.T) {
	store := memory.NewStore()
	svc := NewFollowService(store.Follows())
	u := store.SeedUser("olga", "olga@example.com")
	v := store.SeedUser("ivan", "ivan@example.com")
	a := store.SeedUser("lev", "lev@example.com")

	ctx := context.Background()
	require.NoError(t, svc.Follow(ctx, u.ID.String(), a.ID.String()))
	require.NoError(t, svc.Follow(ctx, v.ID.String(), a.ID.String()))

	followers, err := svc.FollowersOf(ctx, a.ID.String())
	require.NoError(t, err)
	require.Len(t, followers, 2)
	names := []string{followers[0].Username, followers[1].Username}
	assert.ElementsMatch(t, []string{"olga", "ivan"}, names)
}
