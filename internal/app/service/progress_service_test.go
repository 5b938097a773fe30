package service

import (
	"context"
	"path/filepath"
	"testing"

	"career_path/internal/common"
	"career_path/internal/domain/repository"

	"github.com/stretchr/testify/require"
)

func newTestProgressService(t *testing.T) *ProgressService {
	t.Helper()
	repo := repository.NewJSONProgressRepository(filepath.Join(t.TempDir(), "progress.json"))
	return NewProgressService(repo, NewRoadmapService())
}

func TestDashboard_EmptyProgress(t *testing.T) {
	t.Parallel()

	svc := newTestProgressService(t)

	tracks, err := svc.Dashboard(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	require.Equal(t, "web_dev", tracks[0].Key)
	require.Equal(t, "Web Developer", tracks[0].Title)
	require.Len(t, tracks[0].Skills, 5)
	for _, skill := range tracks[0].Skills {
		require.False(t, skill.Done)
	}
}

func TestSetSkill_ReflectedInDashboard(t *testing.T) {
	t.Parallel()

	svc := newTestProgressService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetSkill(ctx, "1", "web_dev", "HTML", true))
	require.NoError(t, svc.SetSkill(ctx, "1", "data_science", "Machine Learning", true))

	tracks, err := svc.Dashboard(ctx, "1")
	require.NoError(t, err)

	byKey := map[string]TrackStatus{}
	for _, track := range tracks {
		byKey[track.Key] = track
	}
	requireSkill(t, byKey["web_dev"], "HTML", true)
	requireSkill(t, byKey["web_dev"], "CSS", false)
	requireSkill(t, byKey["data_science"], "Machine Learning", true)

	// Another user's dashboard is untouched.
	other, err := svc.Dashboard(ctx, "2")
	require.NoError(t, err)
	for _, track := range other {
		for _, skill := range track.Skills {
			require.False(t, skill.Done)
		}
	}
}

func requireSkill(t *testing.T, track TrackStatus, name string, done bool) {
	t.Helper()
	for _, skill := range track.Skills {
		if skill.Name == name {
			require.Equal(t, done, skill.Done, "skill %s", name)
			return
		}
	}
	t.Fatalf("skill %s not found in track %s", name, track.Key)
}

func TestSetSkill_UnknownTrackOrSkill(t *testing.T) {
	t.Parallel()

	svc := newTestProgressService(t)
	ctx := context.Background()

	err := svc.SetSkill(ctx, "1", "underwater_basket_weaving", "HTML", true)
	require.ErrorIs(t, err, common.ErrNotFound)

	err = svc.SetSkill(ctx, "1", "web_dev", "COBOL", true)
	require.ErrorIs(t, err, common.ErrNotFound)
}
