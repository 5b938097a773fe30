package repository

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"career_path/internal/common"
	"career_path/internal/domain/model"

	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) UserRepository {
	t.Helper()
	return NewJSONUserRepository(filepath.Join(t.TempDir(), "users.json"))
}

func TestJSONUserRepository_CreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		user := &model.User{
			Name:           "User " + strconv.Itoa(i),
			Email:          "user" + strconv.Itoa(i) + "@x.com",
			HashedPassword: "hash",
			CreatedAt:      time.Now(),
		}
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, strconv.Itoa(i), user.ID)
	}
}

func TestJSONUserRepository_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	first := &model.User{Name: "Ada", Email: "dup@x.com", HashedPassword: "h1"}
	require.NoError(t, repo.Create(ctx, first))

	second := &model.User{Name: "Grace", Email: "dup@x.com", HashedPassword: "h2"}
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, common.ErrConflict)
	require.Empty(t, second.ID)

	// The table still holds exactly one record for that email.
	got, err := repo.FindByEmail(ctx, "dup@x.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "Ada", got.Name)
}

func TestJSONUserRepository_FindRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "users.json")
	repo := NewJSONUserRepository(path)
	ctx := context.Background()

	created := &model.User{
		Name:           "Ada",
		Email:          "ada@x.com",
		HashedPassword: "hash",
		CreatedAt:      time.Now().Truncate(time.Second),
	}
	require.NoError(t, repo.Create(ctx, created))

	// A fresh repository over the same file reads the same record.
	reopened := NewJSONUserRepository(path)
	got, err := reopened.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, got.Email)
	require.Equal(t, created.Name, got.Name)
	require.Equal(t, created.HashedPassword, got.HashedPassword)
	require.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestJSONUserRepository_FindMissing(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "999")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}
