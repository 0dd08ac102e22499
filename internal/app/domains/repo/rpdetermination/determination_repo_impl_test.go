package rpdetermination

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ftaorigin/common/entity"
	"ftaorigin/internal/app/domains/entity/etorigin"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(entity.AllModels()...))
	return db
}

func TestDeterminationRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewDeterminationRepository(setupDB(t))

	trail := []etorigin.TrailEntry{{
		Status:      etorigin.TrailStatusFail,
		PartID:      "CELL",
		Origin:      "CN",
		HSCode:      "850790",
		PartHeading: "8507",
		FGHeading:   "8507",
		Message:     "Part: CELL (Origin: CN, HS: 850790) -> [FAIL] Same Heading as FG (8507).",
	}}

	first := etorigin.NewDetermination("PACK", etorigin.DefaultDestCountry, etorigin.VerdictForeign, trail)
	first.DeterminedAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Append(ctx, first))
	assert.NotZero(t, first.ID)

	second := etorigin.NewDetermination("CASE", etorigin.DefaultDestCountry, etorigin.DomesticVerdict("KR"),
		[]etorigin.TrailEntry{etorigin.NewNoComponentsEntry("KR")})
	require.NoError(t, repo.Append(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	list, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// 最新的在前
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "CASE", list[0].PartID)
	assert.Equal(t, etorigin.Verdict("KR"), list[0].Result)

	got := list[1]
	assert.Equal(t, "PACK", got.PartID)
	assert.Equal(t, etorigin.DefaultDestCountry, got.DestCountry)
	assert.Equal(t, etorigin.VerdictForeign, got.Result)
	assert.Equal(t, etorigin.RuleCTSH4, got.RuleApplied)
	assert.Equal(t, trail, got.Trail)
	assert.WithinDuration(t, first.DeterminedAt, got.DeterminedAt, time.Second)

	limited, err := repo.List(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)

	byPart, err := repo.List(ctx, "PACK", 0)
	require.NoError(t, err)
	require.Len(t, byPart, 1)
	assert.Equal(t, first.ID, byPart[0].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Clear(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
