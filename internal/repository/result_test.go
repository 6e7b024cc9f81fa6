package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
	"github.com/rocketscienceinc/pairmatch-backend/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResultRepo(t *testing.T) (context.Context, ResultRepository) {
	t.Helper()

	ctx := context.Background()

	sqliteStorage, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqliteStorage.Connection.Close()
	})

	require.NoError(t, sqliteStorage.Init(ctx))

	return ctx, NewResultRepository(sqliteStorage.Connection)
}

func TestResultRepository_Save(t *testing.T) {
	ctx, resultRepo := newResultRepo(t)

	// Given: a finished round summary
	result := &entity.GameResult{
		GameID:     "ABC234",
		Score:      65,
		Elapsed:    97,
		FinishedAt: time.Now().UTC(),
	}

	// When: Save is called
	err := resultRepo.Save(ctx, result)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestResultRepository_ListTop(t *testing.T) {
	t.Run("Orders by score, fastest first on ties", func(t *testing.T) {
		ctx, resultRepo := newResultRepo(t)

		// Given: three finished rounds
		finishedAt := time.Now().UTC()
		for _, result := range []*entity.GameResult{
			{GameID: "LOW234", Score: 20, Elapsed: 120, FinishedAt: finishedAt},
			{GameID: "TOP234", Score: 80, Elapsed: 90, FinishedAt: finishedAt},
			{GameID: "TIE234", Score: 80, Elapsed: 60, FinishedAt: finishedAt},
		} {
			require.NoError(t, resultRepo.Save(ctx, result))
		}

		// When: the top results are listed
		results, err := resultRepo.ListTop(ctx, 10)

		// Then: the tie is broken by elapsed time
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "TIE234", results[0].GameID)
		assert.Equal(t, "TOP234", results[1].GameID)
		assert.Equal(t, "LOW234", results[2].GameID)
	})

	t.Run("Respects the limit", func(t *testing.T) {
		ctx, resultRepo := newResultRepo(t)

		// Given: three finished rounds
		for _, gameID := range []string{"AAA234", "BBB234", "CCC234"} {
			result := &entity.GameResult{GameID: gameID, Score: 10, FinishedAt: time.Now().UTC()}
			require.NoError(t, resultRepo.Save(ctx, result))
		}

		// When: only two are requested
		results, err := resultRepo.ListTop(ctx, 2)

		// Then: exactly two come back
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("Empty table yields no results", func(t *testing.T) {
		ctx, resultRepo := newResultRepo(t)

		results, err := resultRepo.ListTop(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
