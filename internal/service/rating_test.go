package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/domain"
	"scrimbot/internal/repository"
)

func playerPoints(t *testing.T, env *testEnv, id domain.PlayerID) int {
	t.Helper()
	rating, err := env.ratings.Get(context.Background(), testGuild, id)
	require.NoError(t, err)
	require.NotNil(t, rating)
	return rating.Points
}

func TestApplyMatchResultOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a1, a2 := domain.RealID("a1"), domain.RealID("a2")
	b1, b2 := domain.RealID("b1"), domain.RealID("b2")
	matchID, err := env.matches.Record(ctx, testGuild, []domain.PlayerID{a1, a2}, []domain.PlayerID{b1, b2})
	require.NoError(t, err)

	outcome, err := env.ratingSvc.ApplyMatchResult(ctx, testGuild, matchID, domain.WinnerA)
	require.NoError(t, err)
	assert.Equal(t, matchID, outcome.MatchID)
	require.Len(t, outcome.WinnerDeltas, 2)
	require.Len(t, outcome.LoserDeltas, 2)

	// Default policy: +3 for a win, -2 for a loss, no streak yet.
	assert.Equal(t, 303, playerPoints(t, env, a1))
	assert.Equal(t, 303, playerPoints(t, env, a2))
	assert.Equal(t, 298, playerPoints(t, env, b1))
	assert.Equal(t, 298, playerPoints(t, env, b2))

	_, err = env.ratingSvc.ApplyMatchResult(ctx, testGuild, matchID, domain.WinnerB)
	assert.ErrorIs(t, err, domain.ErrMatchAlreadyResolved)
	assert.Equal(t, 303, playerPoints(t, env, a1), "a failed registration changes nothing")
	assert.Equal(t, 298, playerPoints(t, env, b1))
}

func TestApplyMatchResultLatest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, b := domain.RealID("a"), domain.RealID("b")
	_, err := env.matches.Record(ctx, testGuild, []domain.PlayerID{a}, []domain.PlayerID{b})
	require.NoError(t, err)
	latest, err := env.matches.Record(ctx, testGuild, []domain.PlayerID{a}, []domain.PlayerID{b})
	require.NoError(t, err)

	outcome, err := env.ratingSvc.ApplyMatchResult(ctx, testGuild, 0, domain.WinnerB)
	require.NoError(t, err)
	assert.Equal(t, latest, outcome.MatchID, "match id 0 targets the newest match")
}

func TestApplyMatchResultValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ratingSvc.ApplyMatchResult(ctx, testGuild, 1, domain.WinnerSide("C"))
	assert.ErrorIs(t, err, domain.ErrInvalidWinnerSide)

	_, err = env.ratingSvc.ApplyMatchResult(ctx, testGuild, 99, domain.WinnerA)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestApplyMatchResultSkipsNameOnlyPlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	real := domain.RealID("a")
	guest := domain.SyntheticID("Ann")
	matchID, err := env.matches.Record(ctx, testGuild, []domain.PlayerID{real, guest}, []domain.PlayerID{domain.RealID("b")})
	require.NoError(t, err)

	outcome, err := env.ratingSvc.ApplyMatchResult(ctx, testGuild, matchID, domain.WinnerA)
	require.NoError(t, err)
	require.Len(t, outcome.WinnerDeltas, 1, "name-only players carry no rating")

	rating, err := env.ratings.Get(ctx, testGuild, guest)
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestStreakBonusGrowsAndResets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, b := domain.RealID("a"), domain.RealID("b")
	play := func(winner domain.WinnerSide) *domain.MatchOutcome {
		matchID, err := env.matches.Record(ctx, testGuild, []domain.PlayerID{a}, []domain.PlayerID{b})
		require.NoError(t, err)
		outcome, err := env.ratingSvc.ApplyMatchResult(ctx, testGuild, matchID, winner)
		require.NoError(t, err)
		return outcome
	}

	// First win: no streak yet, +3.
	outcome := play(domain.WinnerA)
	assert.Equal(t, 3, outcome.WinnerDeltas[0].Delta())
	// Second and third: streak before the win is 1, then 2.
	assert.Equal(t, 4, play(domain.WinnerA).WinnerDeltas[0].Delta())
	assert.Equal(t, 5, play(domain.WinnerA).WinnerDeltas[0].Delta())
	// Fourth and beyond: the bonus caps at 3 even as the streak keeps growing.
	assert.Equal(t, 6, play(domain.WinnerA).WinnerDeltas[0].Delta())
	assert.Equal(t, 6, play(domain.WinnerA).WinnerDeltas[0].Delta())

	// b has lost five straight: the stored counter is uncapped, the
	// penalty caps alongside the bonus.
	rating, err := env.ratings.Get(ctx, testGuild, b)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 5, rating.LossStreak, "stored counter is uncapped")
	assert.Equal(t, -5, play(domain.WinnerA).LoserDeltas[0].Delta())

	// A loss resets the win streak, so the next win is back to base.
	outcome = play(domain.WinnerB)
	assert.Equal(t, -2, outcome.LoserDeltas[0].Delta(), "first loss has no streak penalty")
	assert.Equal(t, 3, play(domain.WinnerA).WinnerDeltas[0].Delta())
}

func TestApplyLaneResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	teams := []domain.LaneTeam{
		{TeamID: 1, Members: []domain.LaneMember{
			{Player: domain.Player{ID: domain.RealID("w1"), DisplayName: "W1", Points: 300}, Role: domain.RoleTop},
		}},
		{TeamID: 2, Members: []domain.LaneMember{
			{Player: domain.Player{ID: domain.RealID("l1"), DisplayName: "L1", Points: 300}, Role: domain.RoleTop},
		}},
	}
	require.NoError(t, env.laneTeams.SaveTeams(ctx, testGuild, teams))

	outcome, err := env.ratingSvc.ApplyLaneResult(ctx, testGuild, 1, 2)
	require.NoError(t, err)
	require.Len(t, outcome.WinnerDeltas, 1)
	require.Len(t, outcome.LoserDeltas, 1)

	// Lane stakes raise the win base to 6 and soften the loss to -3.
	assert.Equal(t, 6, outcome.WinnerDeltas[0].Delta())
	assert.Equal(t, -3, outcome.LoserDeltas[0].Delta())
	assert.Equal(t, 306, playerPoints(t, env, domain.RealID("w1")))
	assert.Equal(t, 297, playerPoints(t, env, domain.RealID("l1")))
}

func TestApplyLaneResultValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ratingSvc.ApplyLaneResult(ctx, testGuild, 3, 3)
	assert.ErrorIs(t, err, domain.ErrSameTeam)

	_, err = env.ratingSvc.ApplyLaneResult(ctx, testGuild, 1, 2)
	assert.ErrorIs(t, err, domain.ErrLaneTeamNotFound)
}

func TestPolicyShapesDeltas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	winBase := 10
	policy, err := env.ratingSvc.UpdatePolicy(ctx, testGuild, repository.PolicyPatch{WinBase: &winBase})
	require.NoError(t, err)
	assert.Equal(t, 10, policy.WinBase)

	a, b := domain.RealID("a"), domain.RealID("b")
	matchID, err := env.matches.Record(ctx, testGuild, []domain.PlayerID{a}, []domain.PlayerID{b})
	require.NoError(t, err)
	outcome, err := env.ratingSvc.ApplyMatchResult(ctx, testGuild, matchID, domain.WinnerA)
	require.NoError(t, err)
	assert.Equal(t, 10, outcome.WinnerDeltas[0].Delta())
}
