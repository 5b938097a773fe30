package model

// Roadmap describes one career track: a stable key, a display title and
// an ordered list of skills. Roadmaps are static configuration, never
// persisted alongside user data.
type Roadmap struct {
	Key    string   `json:"key"`
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}
