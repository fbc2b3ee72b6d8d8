package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestPolicyDefaults(t *testing.T) {
	repo := NewPolicyRepository(newTestDB(t), zerolog.Nop())

	policy, err := repo.Get(context.Background(), testGuild)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPointsPolicy(), policy)
}

func TestPolicyPartialUpdate(t *testing.T) {
	repo := NewPolicyRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, testGuild, PolicyPatch{WinBase: intPtr(5)}))

	policy, err := repo.Get(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, 5, policy.WinBase)
	assert.Equal(t, domain.DefaultPointsPolicy().LossBase, policy.LossBase, "unset fields keep defaults")

	require.NoError(t, repo.Set(ctx, testGuild, PolicyPatch{LossBase: intPtr(-4)}))

	policy, err = repo.Get(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, 5, policy.WinBase, "later patches keep earlier values")
	assert.Equal(t, -4, policy.LossBase)
}

func TestPolicyLossCapFollowsWinCap(t *testing.T) {
	repo := NewPolicyRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, testGuild, PolicyPatch{WinStreakCap: intPtr(6)}))

	policy, err := repo.Get(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, 6, policy.WinStreakCap)
	assert.Equal(t, 6, policy.LossStreakCap, "loss cap follows win cap until set on its own")

	require.NoError(t, repo.Set(ctx, testGuild, PolicyPatch{LossStreakCap: intPtr(2)}))

	policy, err = repo.Get(ctx, testGuild)
	require.NoError(t, err)
	assert.Equal(t, 6, policy.WinStreakCap)
	assert.Equal(t, 2, policy.LossStreakCap)
}
