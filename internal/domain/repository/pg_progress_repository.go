package repository

import (
	"context"
	"database/sql"
	"fmt"

	"career_path/internal/domain/model"
)

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) Get(ctx context.Context, userID string) (model.Progress, error) {
	query := `SELECT track, skill, done FROM progress WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Get: %w", err)
	}
	defer rows.Close()

	progress := model.Progress{}
	for rows.Next() {
		var track, skill string
		var done bool
		if err := rows.Scan(&track, &skill, &done); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.Get: %w", err)
		}
		if progress[track] == nil {
			progress[track] = model.TrackProgress{}
		}
		progress[track][skill] = done
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Get: %w", err)
	}
	return progress, nil
}

func (r *pgProgressRepository) SetSkill(ctx context.Context, userID, track, skill string, done bool) error {
	query := `INSERT INTO progress (user_id, track, skill, done)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, track, skill) DO UPDATE SET done = EXCLUDED.done`
	if _, err := r.db.ExecContext(ctx, query, userID, track, skill, done); err != nil {
		return fmt.Errorf("pgProgressRepository.SetSkill: %w", err)
	}
	return nil
}
