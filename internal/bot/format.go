package bot

import (
	"fmt"
	"strings"

	"scrimbot/internal/domain"
	"scrimbot/internal/service"

	"github.com/bwmarrin/discordgo"
)

const (
	colorTeal = 0x00ae86
	colorRed  = 0xff6b6b
)

var laneEmojiToRole = map[string]domain.Role{
	"⚔️": domain.RoleTop,
	"🌲":  domain.RoleJungle,
	"🪄":  domain.RoleMid,
	"🏹":  domain.RoleADC,
	"❤️": domain.RoleSupport,
}

var roleToEmoji = map[domain.Role]string{
	domain.RoleTop:     "⚔️",
	domain.RoleJungle:  "🌲",
	domain.RoleMid:     "🪄",
	domain.RoleADC:     "🏹",
	domain.RoleSupport: "❤️",
}

// label renders a player reference: mentions for real accounts, the plain
// display name for name-only participants. The only place the id tag
// matters.
func label(p domain.Player) string {
	if p.ID.Synthetic {
		if p.DisplayName != "" {
			return p.DisplayName
		}
		return p.ID.Value
	}
	return fmt.Sprintf("<@%s>", p.ID.Value)
}

func labelID(id domain.PlayerID, displayName string) string {
	return label(domain.Player{ID: id, DisplayName: displayName})
}

func teamLines(players []domain.Player) string {
	if len(players) == 0 {
		return "(empty)"
	}
	lines := make([]string, len(players))
	for i, p := range players {
		lines[i] = fmt.Sprintf("%s (⭐%d)", label(p), p.Points)
	}
	return strings.Join(lines, "\n")
}

func balancedSplitEmbed(outcome *service.SplitOutcome) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Team split (Match ID: %d)", outcome.MatchID),
		Color: colorTeal,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Team A (⭐%d)", outcome.SumA), Value: teamLines(outcome.TeamA)},
			{Name: fmt.Sprintf("Team B (⭐%d)", outcome.SumB), Value: teamLines(outcome.TeamB)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Point difference: %d", outcome.Diff)},
	}
}

func randomSplitEmbed(outcome *service.SplitOutcome) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Random team split (Match ID: %d)", outcome.MatchID),
		Color: colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Team A", Value: teamLines(outcome.TeamA)},
			{Name: "Team B", Value: teamLines(outcome.TeamB)},
		},
	}
}

// deltaLine renders one rating change: "name: 300 +3 +2 => 305".
func deltaLine(d domain.RatingDelta) string {
	line := fmt.Sprintf("%s: %d %+d", labelID(d.PlayerID, d.DisplayName), d.Before, d.Base)
	if d.StreakAdj != 0 {
		line += fmt.Sprintf(" %+d", d.StreakAdj)
	}
	return line + fmt.Sprintf(" => %d", d.After)
}

func deltaBlock(deltas []domain.RatingDelta) []string {
	if len(deltas) == 0 {
		return []string{"- no changes"}
	}
	lines := make([]string, len(deltas))
	for i, d := range deltas {
		lines[i] = deltaLine(d)
	}
	return lines
}

func matchResultText(outcome *domain.MatchOutcome) string {
	winners, losers := "Team A", "Team B"
	if outcome.Winner == domain.WinnerB {
		winners, losers = losers, winners
	}
	parts := []string{
		fmt.Sprintf("Winner registered: %s (Match ID: %d)", winners, outcome.MatchID),
		"",
		"# " + winners,
	}
	parts = append(parts, deltaBlock(outcome.WinnerDeltas)...)
	parts = append(parts, "", "# "+losers)
	parts = append(parts, deltaBlock(outcome.LoserDeltas)...)
	return strings.Join(parts, "\n")
}

func laneResultText(outcome *service.LaneOutcome) string {
	parts := []string{
		fmt.Sprintf("Lane result registered: team %d beat team %d", outcome.WinTeamID, outcome.LoseTeamID),
		"",
		fmt.Sprintf("# Winning team %d", outcome.WinTeamID),
	}
	parts = append(parts, deltaBlock(outcome.WinnerDeltas)...)
	parts = append(parts, "", fmt.Sprintf("# Losing team %d", outcome.LoseTeamID))
	parts = append(parts, deltaBlock(outcome.LoserDeltas)...)
	return strings.Join(parts, "\n")
}

func laneMemberLine(m domain.LaneMember) string {
	name := m.Player.DisplayName
	if m.Placeholder {
		name = "(vacant)"
	}
	return fmt.Sprintf("%s %s (⭐%d)", roleToEmoji[m.Role], name, m.Player.Points)
}

func laneTeamsEmbed(teams []domain.LaneTeam) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "Lane team assignment", Color: colorTeal}
	for _, t := range teams {
		lines := make([]string, len(t.Members))
		for i, m := range t.Members {
			lines[i] = laneMemberLine(m)
		}
		value := strings.Join(lines, "\n")
		if value == "" {
			value = "(empty)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Team %d (total ⭐%d)", t.TeamID, t.TotalStrength),
			Value: value,
		})
	}
	return embed
}

func strengthArrow(at, now int) string {
	if now > at {
		return fmt.Sprintf("⭐%d ↗ %d", at, now)
	}
	if now < at {
		return fmt.Sprintf("⭐%d ↘ %d", at, now)
	}
	return fmt.Sprintf("⭐%d", at)
}

func laneHistoryEmbed(teams []domain.LaneHistoryTeam) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Lane team history (latest %d)", len(teams)),
		Description: "Shown as points at assignment → points now",
		Color:       colorTeal,
	}
	for _, t := range teams {
		lines := make([]string, len(t.Members))
		for i, m := range t.Members {
			lines[i] = fmt.Sprintf("%s %s (%s)",
				roleToEmoji[m.Role], m.Player.DisplayName, strengthArrow(m.StrengthAt, m.StrengthNow))
		}
		value := strings.Join(lines, "\n")
		if value == "" {
			value = "(no members)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Team %d (total %s)", t.TeamID, strengthArrow(t.TotalAt, t.TotalNow)),
			Value: value,
		})
	}
	return embed
}

func policyText(p domain.PointsPolicy) string {
	return fmt.Sprintf("win=%d, loss=%d, streak_cap=%d, loss_streak_cap=%d",
		p.WinBase, p.LossBase, p.WinStreakCap, p.LossStreakCap)
}

func leaderboardText(ratings []domain.Rating) string {
	lines := make([]string, 0, len(ratings)+1)
	lines = append(lines, "Leaderboard:")
	for i, r := range ratings {
		name := r.DisplayName
		if name == "" {
			name = r.PlayerID.Value
		}
		lines = append(lines, fmt.Sprintf("%d. %s: ⭐%d / %dW-%dL / %d%% (WS:%d)",
			i+1, name, r.Points, r.Wins, r.Losses, int(r.Winrate*100+0.5), r.WinStreak))
	}
	return strings.Join(lines, "\n")
}

func helpEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Commands",
		Color:       colorTeal,
		Description: "Available commands by category.",
	}
	categories := []struct {
		name     string
		commands []string
	}{
		{"Signup", []string{"start_signup", "show_participants", "reset_participants", "leave", "kick", "join_name"}},
		{"Teams", []string{"team", "team_simple"}},
		{"Results", []string{"result", "win", "result_team"}},
		{"Ratings", []string{"rank", "set_strength", "record", "delete_user"}},
		{"Lanes", []string{"start_lane_signup", "show_lane_history"}},
		{"Settings", []string{"set_points", "show_points"}},
	}
	for _, cat := range categories {
		var lines []string
		for _, name := range cat.commands {
			for _, def := range commandDefinitions {
				if def.Name == name {
					lines = append(lines, fmt.Sprintf("**/%s**: %s", def.Name, def.Description))
					break
				}
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  cat.name,
			Value: strings.Join(lines, "\n"),
		})
	}
	return embed
}
