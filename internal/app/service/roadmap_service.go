package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"career_path/internal/domain/model"

	"github.com/gosimple/slug"
)

// RoadmapService holds the static career roadmap tables. They are fixed
// for the process lifetime: either the built-in defaults or, when
// ROADMAPS_FILE is set, a JSON file loaded once at startup.
type RoadmapService struct {
	tracks map[string]model.Roadmap
	order  []string
}

func NewRoadmapService() *RoadmapService {
	s := &RoadmapService{tracks: make(map[string]model.Roadmap)}
	s.add(model.Roadmap{
		Key:    "web_dev",
		Title:  "Web Developer",
		Skills: []string{"HTML", "CSS", "JavaScript", "React", "Flask"},
	})
	s.add(model.Roadmap{
		Key:    "data_science",
		Title:  "Data Scientist",
		Skills: []string{"Python", "Statistics", "Machine Learning", "Pandas"},
	})
	return s
}

// LoadFile replaces the built-in roadmaps with the tracks in a JSON
// file. A track without an explicit key gets one derived from its
// title, e.g. "Cloud Engineer" -> "cloud_engineer".
func (s *RoadmapService) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("roadmaps: read %s: %w", path, err)
	}

	var tracks []model.Roadmap
	if err := json.Unmarshal(data, &tracks); err != nil {
		return fmt.Errorf("roadmaps: parse %s: %w", path, err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("roadmaps: %s defines no tracks", path)
	}

	loaded := &RoadmapService{tracks: make(map[string]model.Roadmap)}
	for _, track := range tracks {
		if track.Title == "" || len(track.Skills) == 0 {
			return fmt.Errorf("roadmaps: track %q needs a title and at least one skill", track.Key)
		}
		if track.Key == "" {
			track.Key = TrackKey(track.Title)
		}
		if _, exists := loaded.tracks[track.Key]; exists {
			return fmt.Errorf("roadmaps: duplicate track key %q", track.Key)
		}
		loaded.add(track)
	}

	s.tracks = loaded.tracks
	s.order = loaded.order
	return nil
}

// TrackKey derives a stable key from a track title.
func TrackKey(title string) string {
	return strings.ReplaceAll(slug.Make(title), "-", "_")
}

func (s *RoadmapService) add(track model.Roadmap) {
	s.tracks[track.Key] = track
	s.order = append(s.order, track.Key)
}

func (s *RoadmapService) Track(key string) (model.Roadmap, bool) {
	track, ok := s.tracks[key]
	return track, ok
}

// Tracks returns all roadmaps in their configured order.
func (s *RoadmapService) Tracks() []model.Roadmap {
	out := make([]model.Roadmap, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.tracks[key])
	}
	return out
}
