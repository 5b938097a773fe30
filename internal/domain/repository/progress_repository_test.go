package repository

import (
	"context"
	"path/filepath"
	"testing"

	"career_path/internal/domain/model"

	"github.com/stretchr/testify/require"
)

func TestJSONProgressRepository_MissingRecordIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewJSONProgressRepository(filepath.Join(t.TempDir(), "progress.json"))

	got, err := repo.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestJSONProgressRepository_SetSkillRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.json")
	repo := NewJSONProgressRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.SetSkill(ctx, "1", "web_dev", "HTML", true))
	require.NoError(t, repo.SetSkill(ctx, "1", "web_dev", "CSS", false))
	require.NoError(t, repo.SetSkill(ctx, "1", "data_science", "Python", true))
	require.NoError(t, repo.SetSkill(ctx, "2", "web_dev", "HTML", true))

	got, err := NewJSONProgressRepository(path).Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, model.Progress{
		"web_dev":      {"HTML": true, "CSS": false},
		"data_science": {"Python": true},
	}, got)

	other, err := repo.Get(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, model.Progress{"web_dev": {"HTML": true}}, other)
}

func TestJSONProgressRepository_SetSkillOverwrites(t *testing.T) {
	t.Parallel()

	repo := NewJSONProgressRepository(filepath.Join(t.TempDir(), "progress.json"))
	ctx := context.Background()

	require.NoError(t, repo.SetSkill(ctx, "1", "web_dev", "HTML", true))
	require.NoError(t, repo.SetSkill(ctx, "1", "web_dev", "HTML", false))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	require.False(t, got["web_dev"]["HTML"])
}
