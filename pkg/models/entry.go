package models

// Entry is one term and its definition inside a list
type Entry struct {
	ID         int64  `json:"id" db:"id"`
	ListID     int64  `json:"list_id" db:"list_id"`
	Position   int    `json:"position" db:"position"` // order within the list, from 0
	Term       string `json:"term" db:"term"`
	Definition string `json:"definition" db:"definition"`
}
