package model

import (
	"strings"
	"time"
)

const (
	ActivityStart    = "start"
	ActivityComplete = "complete"
	ActivitySkip     = "skip"
	ActivityPause    = "pause"
)

const (
	ActivityPending   = "pending"
	ActivityConfirmed = "confirmed"
	ActivityFailed    = "failed"
)

// LocalIDPrefix marks client-generated ids for records that have not been
// persisted yet. The server replaces them with uuids on create.
const LocalIDPrefix = "local-"

// Activity is one append-only log entry of a user action against a Habit.
// PrevCount and NewCount are derived fields: they are recomputed whenever an
// earlier activity for the same habit is edited or deleted.
type Activity struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Kind            string    `json:"kind"`
	HabitID         string    `json:"habitId"`
	HabitName       string    `json:"habitName"`
	Timestamp       time.Time `json:"timestamp"`
	Amount          float64   `json:"amount"`
	PrevCount       float64   `json:"prevCount"`
	NewCount        float64   `json:"newCount"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	Status          string    `json:"status"`
	Seq             int64     `json:"-"`
}

func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

func IsValidActivityKind(kind string) bool {
	switch kind {
	case ActivityStart, ActivityComplete, ActivitySkip, ActivityPause:
		return true
	}
	return false
}
