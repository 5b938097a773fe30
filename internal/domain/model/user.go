package model

import (
	"time"
)

// User is the stored account record. The same shape is persisted in the
// users table and returned by the API; services clear HashedPassword
// before a record leaves the service layer, and omitempty keeps the
// cleared field out of responses.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"password,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Identity is the minimal view of a user the session layer carries
// through a request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
