package repository

import (
	"context"
	"fmt"

	"career_path/internal/domain/model"
	"career_path/internal/platform/store"
)

type ProgressRepository interface {
	// Get returns the user's progress record; an absent record reads as
	// an empty one.
	Get(ctx context.Context, userID string) (model.Progress, error)
	SetSkill(ctx context.Context, userID, track, skill string, done bool) error
}

type jsonProgressRepository struct {
	table *store.Table[model.Progress]
}

func NewJSONProgressRepository(path string) ProgressRepository {
	return &jsonProgressRepository{table: store.NewTable[model.Progress](path)}
}

func (r *jsonProgressRepository) Get(ctx context.Context, userID string) (model.Progress, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, fmt.Errorf("jsonProgressRepository.Get: %w", err)
	}
	p, ok := records[userID]
	if !ok {
		return model.Progress{}, nil
	}
	return p, nil
}

func (r *jsonProgressRepository) SetSkill(ctx context.Context, userID, track, skill string, done bool) error {
	return r.table.Mutate(func(records map[string]model.Progress) error {
		p := records[userID]
		if p == nil {
			p = model.Progress{}
		}
		if p[track] == nil {
			p[track] = model.TrackProgress{}
		}
		p[track][skill] = done
		records[userID] = p
		return nil
	})
}
