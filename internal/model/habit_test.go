package model

import "testing"

func TestRecurrenceFromRepeat(t *testing.T) {
	cases := []struct {
		repeat string
		want   string
	}{
		{"", RecurrenceNone},
		{"none", RecurrenceNone},
		{"No", RecurrenceNone},
		{"false", RecurrenceNone},
		{"0", RecurrenceNone},
		{"Does Not Repeat", RecurrenceNone},
		{"daily", RecurrenceRecurring},
		{"every weekday", RecurrenceRecurring},
	}
	for _, tc := range cases {
		if got := RecurrenceFromRepeat(tc.repeat); got != tc.want {
			t.Errorf("RecurrenceFromRepeat(%q) = %q, want %q", tc.repeat, got, tc.want)
		}
	}
}

func TestHabitIsRecurring(t *testing.T) {
	cases := []struct {
		name  string
		habit Habit
		want  bool
	}{
		{"explicit recurring", Habit{Recurrence: RecurrenceRecurring}, true},
		{"explicit none", Habit{Recurrence: RecurrenceNone, Repeat: "daily"}, false},
		{"shim from repeat", Habit{Repeat: "weekly"}, true},
		{"shim off sentinel", Habit{Repeat: "does not repeat"}, false},
		{"empty everything", Habit{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.habit.IsRecurring(); got != tc.want {
				t.Fatalf("IsRecurring = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHabitDefaults(t *testing.T) {
	h := Habit{}
	if h.DailyTarget() != 0 {
		t.Fatalf("empty habit target %v, want 0", h.DailyTarget())
	}
	if h.Unit() != DefaultWorkloadUnit {
		t.Fatalf("empty habit unit %q", h.Unit())
	}
	if h.PerCount() != 1 {
		t.Fatalf("empty habit perCount %v, want 1", h.PerCount())
	}

	legacy := Habit{Must: 4}
	if legacy.DailyTarget() != 4 {
		t.Fatalf("legacy target %v, want 4", legacy.DailyTarget())
	}
	both := Habit{WorkloadTotal: 9, Must: 4}
	if both.DailyTarget() != 9 {
		t.Fatalf("workloadTotal must win, got %v", both.DailyTarget())
	}
}

func TestIsLocalID(t *testing.T) {
	if !IsLocalID("local-abc") {
		t.Fatal("local- prefix must be recognized")
	}
	if IsLocalID("5f0c2d1e") {
		t.Fatal("server id misclassified as local")
	}
}
