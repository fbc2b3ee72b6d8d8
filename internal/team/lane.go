package team

import (
	"fmt"
	"sort"

	"scrimbot/internal/domain"
)

// PlaceholderStrength is the neutral weight an empty role slot contributes
// to team balancing.
const PlaceholderStrength = 300

// AssignLaneTeams builds lane teams from role-tagged participants. The team
// count follows the most populated role so every signed-up player gets a
// seat; under-subscribed roles are padded with placeholders. Within each
// role candidates are taken strongest first and dropped onto the lightest
// team still missing that role, a greedy heuristic that keeps total
// strengths close but is not globally optimal.
//
// Team ids are firstTeamID, firstTeamID+1, and so on; the caller reserves
// the block from the per-guild sequence before calling.
func AssignLaneTeams(participants []domain.LaneParticipant, firstTeamID int64) []domain.LaneTeam {
	if len(participants) == 0 {
		return nil
	}

	groups := map[domain.Role][]domain.LaneParticipant{}
	for _, p := range participants {
		if domain.ValidRole(p.Role) {
			groups[p.Role] = append(groups[p.Role], p)
		}
	}

	teamCount := 1
	for _, g := range groups {
		if len(g) > teamCount {
			teamCount = len(g)
		}
	}

	teams := make([]domain.LaneTeam, teamCount)
	for i := range teams {
		teams[i] = domain.LaneTeam{TeamID: firstTeamID + int64(i)}
	}

	for _, role := range domain.Roles() {
		candidates := append([]domain.LaneParticipant(nil), groups[role]...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Player.Points > candidates[j].Player.Points
		})

		members := make([]domain.LaneMember, 0, teamCount)
		for _, c := range candidates {
			members = append(members, domain.LaneMember{Player: c.Player, Role: role})
		}
		for len(members) < teamCount {
			members = append(members, placeholder(role, len(members)))
		}

		taken := make([]bool, len(teams))
		for _, m := range members {
			idx := -1
			for i := range teams {
				if taken[i] {
					continue
				}
				if idx < 0 || teams[i].TotalStrength < teams[idx].TotalStrength {
					idx = i
				}
			}
			taken[idx] = true
			teams[idx].Members = append(teams[idx].Members, m)
			teams[idx].TotalStrength += m.Player.Points
		}
	}

	return teams
}

func placeholder(role domain.Role, slot int) domain.LaneMember {
	return domain.LaneMember{
		Player: domain.Player{
			ID:          domain.SyntheticID(fmt.Sprintf("vacant:%s:%d", role, slot)),
			DisplayName: "(vacant)",
			Points:      PlaceholderStrength,
		},
		Role:        role,
		Placeholder: true,
	}
}
