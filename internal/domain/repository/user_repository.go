package repository

import (
	"context"
	"fmt"
	"strconv"

	"career_path/internal/common"
	"career_path/internal/domain/model"
	"career_path/internal/platform/store"
)

type UserRepository interface {
	// Create persists the user and assigns its ID. It fails with
	// common.ErrConflict when the email is already taken. Callers must
	// pass the email already lowercased.
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type jsonUserRepository struct {
	table *store.Table[model.User]
}

// NewJSONUserRepository stores users in a pretty-printed JSON file at
// path. Ids are allocated as count+1 inside the table lock, which is
// only sound because records are never deleted.
func NewJSONUserRepository(path string) UserRepository {
	return &jsonUserRepository{table: store.NewTable[model.User](path)}
}

func (r *jsonUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.table.Mutate(func(users map[string]model.User) error {
		for _, u := range users {
			if u.Email == user.Email {
				return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
			}
		}
		user.ID = strconv.Itoa(len(users) + 1)
		users[user.ID] = *user
		return nil
	})
}

func (r *jsonUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.table.Load()
	if err != nil {
		return nil, fmt.Errorf("jsonUserRepository.FindByEmail: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *jsonUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.table.Load()
	if err != nil {
		return nil, fmt.Errorf("jsonUserRepository.FindByID: %w", err)
	}
	u, ok := users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}
