package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/domain"
)

func TestSignupLatestAndGet(t *testing.T) {
	repo := NewSignupRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	latest, err := repo.Latest(ctx, testGuild)
	require.NoError(t, err)
	assert.Nil(t, latest, "no open signup yet")

	require.NoError(t, repo.Create(ctx, domain.Signup{
		MessageID: "m1", GuildID: testGuild, ChannelID: "c1", AuthorID: "u1",
	}))
	require.NoError(t, repo.Create(ctx, domain.Signup{
		MessageID: "m2", GuildID: testGuild, ChannelID: "c1", AuthorID: "u2",
	}))

	latest, err = repo.Latest(ctx, testGuild)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "m2", latest.MessageID)

	s, err := repo.Get(ctx, testGuild, "m1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.AuthorID)

	s, err = repo.Get(ctx, testGuild, "missing")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSignupParticipants(t *testing.T) {
	db := newTestDB(t)
	signups := NewSignupRepository(db, zerolog.Nop())
	ratings := NewRatingRepository(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, signups.Create(ctx, domain.Signup{
		MessageID: "m1", GuildID: testGuild, ChannelID: "c1", AuthorID: "u1",
	}))

	rated := domain.RealID("u1")
	require.NoError(t, ratings.SetPoints(ctx, testGuild, rated, "bob", 360))

	require.NoError(t, signups.AddParticipant(ctx, testGuild, "m1", rated, "bob"))
	require.NoError(t, signups.AddParticipant(ctx, testGuild, "m1", domain.SyntheticID("Ann"), "Ann"))
	// Re-joining is a no-op, not an error.
	require.NoError(t, signups.AddParticipant(ctx, testGuild, "m1", rated, "bob"))

	players, err := signups.Participants(ctx, testGuild, "m1")
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Ann", players[0].DisplayName, "roster sorts by name, case-insensitive")
	assert.Equal(t, domain.DefaultPoints, players[0].Points, "unrated players default to 300")
	assert.Equal(t, "bob", players[1].DisplayName)
	assert.Equal(t, 360, players[1].Points)
	assert.True(t, players[0].ID.Synthetic)
	assert.Equal(t, rated, players[1].ID)

	require.NoError(t, signups.RemoveParticipant(ctx, testGuild, "m1", rated))
	players, err = signups.Participants(ctx, testGuild, "m1")
	require.NoError(t, err)
	require.Len(t, players, 1)

	require.NoError(t, signups.ClearParticipants(ctx, testGuild, "m1"))
	players, err = signups.Participants(ctx, testGuild, "m1")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestLaneParticipantRepick(t *testing.T) {
	repo := NewSignupRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()
	id := domain.RealID("u1")

	require.NoError(t, repo.UpsertLaneParticipant(ctx, testGuild, "m1", id, "Alice", domain.RoleTop))
	require.NoError(t, repo.UpsertLaneParticipant(ctx, testGuild, "m1", id, "Alice", domain.RoleMid))

	participants, err := repo.LaneParticipants(ctx, testGuild, "m1")
	require.NoError(t, err)
	require.Len(t, participants, 1, "picking a second lane replaces the first")
	assert.Equal(t, domain.RoleMid, participants[0].Role)
	assert.Equal(t, domain.DefaultPoints, participants[0].Player.Points)

	require.NoError(t, repo.RemoveLaneParticipant(ctx, testGuild, "m1", id))
	participants, err = repo.LaneParticipants(ctx, testGuild, "m1")
	require.NoError(t, err)
	assert.Empty(t, participants)
}
