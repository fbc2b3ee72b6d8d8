package domain

import (
	"strings"
	"time"
)

const DefaultPoints = 300

// PlayerID distinguishes real Discord accounts from "name-only" participants
// added by hand. The algorithms treat both uniformly; only the presentation
// layer looks at Synthetic (mention vs plain name).
type PlayerID struct {
	Value     string
	Synthetic bool
}

func RealID(v string) PlayerID      { return PlayerID{Value: v} }
func SyntheticID(v string) PlayerID { return PlayerID{Value: v, Synthetic: true} }

// Key is the canonical form used for signatures, map keys and storage.
func (id PlayerID) Key() string {
	if id.Synthetic {
		return "name:" + id.Value
	}
	return id.Value
}

// ParsePlayerID is the inverse of Key.
func ParsePlayerID(key string) PlayerID {
	if rest, ok := strings.CutPrefix(key, "name:"); ok {
		return SyntheticID(rest)
	}
	return RealID(key)
}

// Player is assembled per operation from a signup roster plus ratings.
type Player struct {
	ID          PlayerID
	DisplayName string
	Points      int
}

// Rating is the persistent per-guild, per-player record. WinStreak and
// LossStreak are mutually exclusive; at most one is nonzero.
type Rating struct {
	GuildID     string
	PlayerID    PlayerID
	DisplayName string
	Points      int
	Wins        int
	Losses      int
	WinStreak   int
	LossStreak  int
	Winrate     float64
}

// PointsPolicy controls match deltas. The policy repository fills unset
// fields with defaults, so callers always see a complete policy.
type PointsPolicy struct {
	WinBase       int
	LossBase      int
	WinStreakCap  int
	LossStreakCap int
}

func DefaultPointsPolicy() PointsPolicy {
	return PointsPolicy{WinBase: 3, LossBase: -2, WinStreakCap: 3, LossStreakCap: 3}
}

// LaneStakes derives the higher-stakes schedule used for lane-team results.
// The streak caps carry over so both result paths stay consistent.
func (p PointsPolicy) LaneStakes() PointsPolicy {
	return PointsPolicy{
		WinBase:       p.WinBase + 3,
		LossBase:      p.LossBase - 1,
		WinStreakCap:  p.WinStreakCap,
		LossStreakCap: p.LossStreakCap,
	}
}

type WinnerSide string

const (
	WinnerA WinnerSide = "A"
	WinnerB WinnerSide = "B"
)

func ValidWinnerSide(s WinnerSide) bool { return s == WinnerA || s == WinnerB }

// Match is created at split time with no winner and resolved exactly once.
type Match struct {
	ID        int64
	GuildID   string
	TeamA     []PlayerID
	TeamB     []PlayerID
	Winner    WinnerSide // empty while open
	CreatedAt time.Time
}

func (m Match) Resolved() bool { return m.Winner != "" }

// RatingDelta reports one player's change from a resolved match.
type RatingDelta struct {
	PlayerID    PlayerID
	DisplayName string
	Before      int
	Base        int
	StreakAdj   int
	After       int
}

func (d RatingDelta) Delta() int { return d.Base + d.StreakAdj }

// MatchOutcome is the full result of applying one match resolution.
type MatchOutcome struct {
	MatchID      int64
	Winner       WinnerSide
	WinnerDeltas []RatingDelta
	LoserDeltas  []RatingDelta
}

// Role is one of the five fixed lane positions.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

// Roles lists all lanes in display order.
func Roles() []Role {
	return []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}
}

func ValidRole(r Role) bool {
	switch r {
	case RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport:
		return true
	}
	return false
}

// LaneParticipant is a signup entry for the lane-constrained split.
type LaneParticipant struct {
	Player Player
	Role   Role
}

// LaneMember is one slot of an assembled lane team. Placeholder members fill
// under-subscribed roles; they contribute neutral strength and are never
// persisted.
type LaneMember struct {
	Player      Player
	Role        Role
	Placeholder bool
}

// LaneTeam holds at most one member per role. TeamID comes from a per-guild
// sequence that never reuses ids.
type LaneTeam struct {
	TeamID        int64
	GuildID       string
	Members       []LaneMember
	TotalStrength int
}

// LaneHistoryMember pairs a stored assignment with the player's points now.
type LaneHistoryMember struct {
	Player      Player
	Role        Role
	StrengthAt  int
	StrengthNow int
}

type LaneHistoryTeam struct {
	TeamID   int64
	Members  []LaneHistoryMember
	TotalAt  int
	TotalNow int
}

// Signup is an open recruitment message collecting participants by reaction.
type Signup struct {
	GuildID   string
	MessageID string
	ChannelID string
	AuthorID  string
	CreatedAt time.Time
}
