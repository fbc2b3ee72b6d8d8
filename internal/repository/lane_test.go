package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/domain"
)

func TestReserveTeamIDs(t *testing.T) {
	repo := NewLaneTeamRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	first, err := repo.ReserveTeamIDs(ctx, testGuild, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	first, err = repo.ReserveTeamIDs(ctx, testGuild, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), first, "blocks never overlap")

	first, err = repo.ReserveTeamIDs(ctx, "guild-other", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first, "sequences are per guild")

	_, err = repo.ReserveTeamIDs(ctx, testGuild, 0)
	assert.Error(t, err)
}

func TestSaveTeamsSkipsPlaceholders(t *testing.T) {
	repo := NewLaneTeamRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	team := domain.LaneTeam{
		TeamID: 1,
		Members: []domain.LaneMember{
			{Player: domain.Player{ID: domain.RealID("u2"), DisplayName: "Mid", Points: 320}, Role: domain.RoleMid},
			{Player: domain.Player{ID: domain.RealID("u1"), DisplayName: "Top", Points: 350}, Role: domain.RoleTop},
			{
				Player:      domain.Player{ID: domain.SyntheticID("vacant:ADC:0"), DisplayName: "(vacant)", Points: 300},
				Role:        domain.RoleADC,
				Placeholder: true,
			},
		},
	}
	require.NoError(t, repo.SaveTeams(ctx, testGuild, []domain.LaneTeam{team}))

	members, err := repo.TeamMembers(ctx, testGuild, 1)
	require.NoError(t, err)
	require.Len(t, members, 2, "placeholders are display-only")
	assert.Equal(t, domain.RoleTop, members[0].Role, "members come back in lane order")
	assert.Equal(t, domain.RoleMid, members[1].Role)
	assert.Equal(t, "Top", members[0].Player.DisplayName)
	assert.Equal(t, 350, members[0].Player.Points)
}

func TestRecentTeamIDs(t *testing.T) {
	repo := NewLaneTeamRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	for id := int64(1); id <= 4; id++ {
		team := domain.LaneTeam{
			TeamID: id,
			Members: []domain.LaneMember{
				{Player: domain.Player{ID: domain.RealID("u1"), DisplayName: "P", Points: 300}, Role: domain.RoleTop},
			},
		}
		require.NoError(t, repo.SaveTeams(ctx, testGuild, []domain.LaneTeam{team}))
	}

	ids, err := repo.RecentTeamIDs(ctx, testGuild, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 2}, ids)
}
