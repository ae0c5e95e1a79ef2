package models

// Note is a free-form note with a user-chosen importance label.
type Note struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Details    string `json:"details"`
	Importance string `json:"importance"`
	Deleted    bool   `json:"deleted"`
}
