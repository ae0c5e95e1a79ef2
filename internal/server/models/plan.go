// Package models defines server-side records persisted in the database.
package models

import "time"

// Plan status values with query meaning. Any other text is stored as given.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Plan is a dated, status-tracked item. Todos and goals share this shape
// and live in separate tables.
type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	Deleted     bool      `json:"deleted"`
}
