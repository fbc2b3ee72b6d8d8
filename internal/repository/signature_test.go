package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimbot/internal/constants"
)

func TestSignatureAppendAndRecent(t *testing.T) {
	repo := NewSignatureRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testGuild, "a,b|c,d"))
	require.NoError(t, repo.Append(ctx, testGuild, "a,c|b,d"))

	sigs, err := repo.Recent(ctx, testGuild, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a,c|b,d", "a,b|c,d"}, sigs, "newest first")
}

func TestSignaturePruneToHistorySize(t *testing.T) {
	repo := NewSignatureRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	total := constants.SignatureHistorySize + 3
	for i := 1; i <= total; i++ {
		require.NoError(t, repo.Append(ctx, testGuild, fmt.Sprintf("sig-%d", i)))
	}

	sigs, err := repo.Recent(ctx, testGuild, total)
	require.NoError(t, err)
	require.Len(t, sigs, constants.SignatureHistorySize)
	assert.Equal(t, fmt.Sprintf("sig-%d", total), sigs[0])
	assert.Equal(t, fmt.Sprintf("sig-%d", total-constants.SignatureHistorySize+1), sigs[len(sigs)-1])
}

func TestSignatureGuildIsolation(t *testing.T) {
	repo := NewSignatureRepository(newTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "guild-a", "one"))
	require.NoError(t, repo.Append(ctx, "guild-b", "two"))

	sigs, err := repo.Recent(ctx, "guild-a", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, sigs)
}
