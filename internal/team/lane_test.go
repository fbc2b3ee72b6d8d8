package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/domain"
)

func laneParticipant(id, name string, points int, role domain.Role) domain.LaneParticipant {
	return domain.LaneParticipant{
		Player: domain.Player{ID: domain.RealID(id), DisplayName: name, Points: points},
		Role:   role,
	}
}

func rolesOf(team domain.LaneTeam) map[domain.Role]int {
	counts := map[domain.Role]int{}
	for _, m := range team.Members {
		counts[m.Role]++
	}
	return counts
}

func TestAssignLaneTeamsEmpty(t *testing.T) {
	assert.Nil(t, AssignLaneTeams(nil, 1))
	assert.Nil(t, AssignLaneTeams([]domain.LaneParticipant{}, 1))
}

func TestAssignLaneTeamsCompleteness(t *testing.T) {
	participants := []domain.LaneParticipant{
		laneParticipant("p1", "P1", 350, domain.RoleTop),
		laneParticipant("p2", "P2", 310, domain.RoleTop),
		laneParticipant("p3", "P3", 290, domain.RoleJungle),
		laneParticipant("p4", "P4", 330, domain.RoleJungle),
		laneParticipant("p5", "P5", 300, domain.RoleMid),
	}

	teams := AssignLaneTeams(participants, 1)
	require.Len(t, teams, 2, "team count follows the most populated role")

	real := 0
	for _, team := range teams {
		require.Len(t, team.Members, len(domain.Roles()))
		counts := rolesOf(team)
		for _, role := range domain.Roles() {
			assert.Equal(t, 1, counts[role], "team %d fields one %s", team.TeamID, role)
		}
		for _, m := range team.Members {
			if m.Placeholder {
				assert.True(t, m.Player.ID.Synthetic)
				assert.Equal(t, PlaceholderStrength, m.Player.Points)
			} else {
				real++
			}
		}
	}
	assert.Equal(t, len(participants), real, "every signed-up player gets a seat")
}

func TestAssignLaneTeamsBalance(t *testing.T) {
	participants := []domain.LaneParticipant{
		laneParticipant("t1", "T1", 500, domain.RoleTop),
		laneParticipant("t2", "T2", 300, domain.RoleTop),
		laneParticipant("j1", "J1", 200, domain.RoleJungle),
		laneParticipant("j2", "J2", 400, domain.RoleJungle),
	}

	teams := AssignLaneTeams(participants, 7)
	require.Len(t, teams, 2)

	// Strong TOP pairs with weak JUNGLE and vice versa; remaining roles are
	// placeholders worth 300 each, so totals stay equal.
	assert.Equal(t, teams[0].TotalStrength, teams[1].TotalStrength)
	assert.Equal(t, 500+200+3*PlaceholderStrength, teams[0].TotalStrength)
}

func TestAssignLaneTeamsOneRolePerTeam(t *testing.T) {
	// A lopsided first role must not let one team absorb both members of a
	// later role just because it stayed lighter.
	participants := []domain.LaneParticipant{
		laneParticipant("t1", "T1", 1000, domain.RoleTop),
		laneParticipant("t2", "T2", 100, domain.RoleTop),
		laneParticipant("j1", "J1", 500, domain.RoleJungle),
		laneParticipant("j2", "J2", 400, domain.RoleJungle),
	}

	teams := AssignLaneTeams(participants, 1)
	require.Len(t, teams, 2)
	for _, team := range teams {
		counts := rolesOf(team)
		for _, role := range domain.Roles() {
			assert.Equal(t, 1, counts[role])
		}
	}
}

func TestAssignLaneTeamsIDs(t *testing.T) {
	participants := []domain.LaneParticipant{
		laneParticipant("a", "A", 300, domain.RoleMid),
		laneParticipant("b", "B", 300, domain.RoleMid),
		laneParticipant("c", "C", 300, domain.RoleMid),
	}

	teams := AssignLaneTeams(participants, 42)
	require.Len(t, teams, 3)
	for i, team := range teams {
		assert.Equal(t, int64(42+i), team.TeamID)
	}
}
