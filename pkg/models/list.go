package models

import "time"

// List is a named set of term/definition entries a user can study
type List struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	EntryCount int       `json:"entry_count" db:"entry_count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
