package model

import (
	"strings"
	"time"
)

const (
	TimingDate    = "Date"
	TimingDaily   = "Daily"
	TimingWeekly  = "Weekly"
	TimingMonthly = "Monthly"
)

const (
	RecurrenceRecurring = "recurring"
	RecurrenceNone      = "none"
)

// WeekdayCronPrefix marks a Weekly timing's explicit weekday allow-list,
// e.g. "WEEKDAYS:0,2,4" (0 = Sunday).
const WeekdayCronPrefix = "WEEKDAYS:"

const DefaultWorkloadUnit = "work"

// Timing is one recurrence pattern within a Habit. It is owned by its Habit
// and never persisted on its own.
type Timing struct {
	Type  string `json:"type"`
	Date  string `json:"date,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Cron  string `json:"cron,omitempty"`
}

type Habit struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Name             string     `json:"name"`
	WorkloadTotal    float64    `json:"workloadTotal,omitempty"`
	Must             float64    `json:"must,omitempty"`
	WorkloadUnit     string     `json:"workloadUnit,omitempty"`
	WorkloadPerCount float64    `json:"workloadPerCount,omitempty"`
	Recurrence       string     `json:"recurrence"`
	Repeat           string     `json:"repeat,omitempty"`
	Time             string     `json:"time,omitempty"`
	EndTime          string     `json:"endTime,omitempty"`
	Timings          []Timing   `json:"timings,omitempty"`
	Count            float64    `json:"count"`
	PausedLoad       float64    `json:"pausedLoad,omitempty"`
	Completed        bool       `json:"completed"`
	LastCompletedAt  *time.Time `json:"lastCompletedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// DailyTarget resolves the habit's per-day workload target, preferring the
// current field over the legacy one. Zero means "no measurable target".
func (h Habit) DailyTarget() float64 {
	if h.WorkloadTotal > 0 {
		return h.WorkloadTotal
	}
	if h.Must > 0 {
		return h.Must
	}
	return 0
}

func (h Habit) Unit() string {
	if h.WorkloadUnit != "" {
		return h.WorkloadUnit
	}
	return DefaultWorkloadUnit
}

func (h Habit) PerCount() float64 {
	if h.WorkloadPerCount > 0 {
		return h.WorkloadPerCount
	}
	return 1
}

// IsRecurring prefers the explicit recurrence enum and falls back to the
// legacy repeat-string shim for imported records.
func (h Habit) IsRecurring() bool {
	switch h.Recurrence {
	case RecurrenceRecurring:
		return true
	case RecurrenceNone:
		return false
	}
	return RecurrenceFromRepeat(h.Repeat) == RecurrenceRecurring
}

// RecurrenceFromRepeat maps free-text repeat values onto the recurrence enum.
// Unrecognized values count as recurring; only the known "off" sentinels do not.
func RecurrenceFromRepeat(repeat string) string {
	switch strings.ToLower(strings.TrimSpace(repeat)) {
	case "", "none", "no", "false", "0", "does not repeat":
		return RecurrenceNone
	}
	return RecurrenceRecurring
}
