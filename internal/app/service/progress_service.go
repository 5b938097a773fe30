package service

import (
	"context"
	"fmt"
	"slices"

	"career_path/internal/common"
	"career_path/internal/domain/repository"
)

type ProgressService struct {
	progressRepo repository.ProgressRepository
	roadmaps     *RoadmapService
}

func NewProgressService(progressRepo repository.ProgressRepository, roadmaps *RoadmapService) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, roadmaps: roadmaps}
}

type SkillStatus struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

type TrackStatus struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Skills []SkillStatus `json:"skills"`
}

// Dashboard joins the static roadmap tables with the user's progress
// record. A user with no record yet sees every skill unchecked.
func (s *ProgressService) Dashboard(ctx context.Context, userID string) ([]TrackStatus, error) {
	progress, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	tracks := s.roadmaps.Tracks()
	out := make([]TrackStatus, 0, len(tracks))
	for _, track := range tracks {
		status := TrackStatus{Key: track.Key, Title: track.Title}
		for _, skill := range track.Skills {
			status.Skills = append(status.Skills, SkillStatus{
				Name: skill,
				Done: progress[track.Key][skill],
			})
		}
		out = append(out, status)
	}
	return out, nil
}

// SetSkill records completion state for one skill. Track and skill must
// both exist in the roadmap tables.
func (s *ProgressService) SetSkill(ctx context.Context, userID, trackKey, skill string, done bool) error {
	track, ok := s.roadmaps.Track(trackKey)
	if !ok {
		return fmt.Errorf("unknown track %q: %w", trackKey, common.ErrNotFound)
	}
	if !slices.Contains(track.Skills, skill) {
		return fmt.Errorf("unknown skill %q in track %q: %w", skill, trackKey, common.ErrNotFound)
	}
	if err := s.progressRepo.SetSkill(ctx, userID, trackKey, skill, done); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
