package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/domain"
)

func TestSignupLatestRequiresOpenSignup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.signupSvc.Latest(ctx, testGuild)
	assert.ErrorIs(t, err, domain.ErrNoOpenSignup)
	_, err = env.signupSvc.JoinByName(ctx, testGuild, "Ann")
	assert.ErrorIs(t, err, domain.ErrNoOpenSignup)
	err = env.signupSvc.Reset(ctx, testGuild)
	assert.ErrorIs(t, err, domain.ErrNoOpenSignup)
}

func TestJoinCreatesRatingRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	openSignup(t, env, "m1")
	id := domain.RealID("u1")
	require.NoError(t, env.signupSvc.Join(ctx, testGuild, "m1", id, "Alice"))

	rating, err := env.ratings.Get(ctx, testGuild, id)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, domain.DefaultPoints, rating.Points)
	assert.Equal(t, "Alice", rating.DisplayName)
}

func TestJoinByNameDisambiguatesDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	openSignup(t, env, "m1")

	first, err := env.signupSvc.JoinByName(ctx, testGuild, "Ann")
	require.NoError(t, err)
	assert.True(t, first.Synthetic)
	assert.Equal(t, "Ann", first.Value)

	second, err := env.signupSvc.JoinByName(ctx, testGuild, "Ann")
	require.NoError(t, err)
	assert.True(t, second.Synthetic)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second.Value, "Ann#"), "got %q", second.Value)

	players, err := env.signupSvc.Participants(ctx, testGuild)
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestLeaveAndReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	openSignup(t, env, "m1")
	for _, u := range []string{"u1", "u2"} {
		require.NoError(t, env.signupSvc.Join(ctx, testGuild, "m1", domain.RealID(u), u))
	}

	require.NoError(t, env.signupSvc.Leave(ctx, testGuild, domain.RealID("u1")))
	players, err := env.signupSvc.Participants(ctx, testGuild)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "u2", players[0].DisplayName)

	require.NoError(t, env.signupSvc.Reset(ctx, testGuild))
	players, err = env.signupSvc.Participants(ctx, testGuild)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestPickLaneValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.signupSvc.PickLane(ctx, testGuild, "m1", domain.RealID("u1"), "Alice", domain.Role("FEED"))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	require.NoError(t, env.signupSvc.PickLane(ctx, testGuild, "m1", domain.RealID("u1"), "Alice", domain.RoleMid))
}

func TestIsSignupMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	openSignup(t, env, "m1")

	tracked, err := env.signupSvc.IsSignupMessage(ctx, testGuild, "m1")
	require.NoError(t, err)
	assert.True(t, tracked)

	tracked, err = env.signupSvc.IsSignupMessage(ctx, testGuild, "other")
	require.NoError(t, err)
	assert.False(t, tracked)
}
