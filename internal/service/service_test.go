package service

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/database"
	"scrimbot/internal/repository"
)

const testGuild = "guild-1"

// testEnv wires the services onto real repositories over a temp sqlite
// database, the same stack the bot runs in production.
type testEnv struct {
	ratings   *repository.RatingRepository
	matches   *repository.MatchRepository
	laneTeams *repository.LaneTeamRepository
	signupSvc *SignupService
	teamSvc   *TeamService
	ratingSvc *RatingService
	laneSvc   *LaneService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	nop := zerolog.Nop()
	ratings := repository.NewRatingRepository(db, nop)
	matches := repository.NewMatchRepository(db, nop)
	signups := repository.NewSignupRepository(db, nop)
	signatures := repository.NewSignatureRepository(db, nop)
	laneTeams := repository.NewLaneTeamRepository(db, nop)
	policies := repository.NewPolicyRepository(db, nop)

	return &testEnv{
		ratings:   ratings,
		matches:   matches,
		laneTeams: laneTeams,
		signupSvc: NewSignupService(signups, ratings, nop),
		teamSvc:   NewTeamService(signups, matches, signatures, nop),
		ratingSvc: NewRatingService(ratings, matches, laneTeams, policies, nop),
		laneSvc:   NewLaneService(signups, laneTeams, ratings, nop),
	}
}
