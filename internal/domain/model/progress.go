package model

// TrackProgress maps a skill name to its completion state.
type TrackProgress map[string]bool

// Progress is one user's record: career track key -> per-skill state.
type Progress map[string]TrackProgress
