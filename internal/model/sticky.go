package model

import "time"

// Sticky is a sticky-note task. It may reference goals, habits and tags by id;
// the references are display hints, not foreign keys into the progress core.
type Sticky struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	GoalIDs   []string  `json:"goalIds,omitempty"`
	HabitIDs  []string  `json:"habitIds,omitempty"`
	TagIDs    []string  `json:"tagIds,omitempty"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
