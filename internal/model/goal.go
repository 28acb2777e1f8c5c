package model

import "time"

// Goal is a node in the user's goal hierarchy. ParentID is empty for roots.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	ParentID    string    `json:"parentId,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AchievedOn reports whether the goal counts as achieved on the calendar day
// containing now, judged by its last update (creation when never updated).
func (g Goal) AchievedOn(now time.Time, loc *time.Location) bool {
	if !g.IsCompleted {
		return false
	}
	at := g.UpdatedAt
	if at.IsZero() {
		at = g.CreatedAt
	}
	y1, m1, d1 := at.In(loc).Date()
	y2, m2, d2 := now.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
