// Package schedule decides when a habit's timings fire and how a daily
// workload target is split across them. All functions are pure and fail soft:
// malformed clock strings, dates and cron fragments resolve to defaults
// instead of errors, so one corrupt habit cannot break a whole window.
package schedule

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

// MinutesPerDay is the timestamp offset used for timings with no end clock:
// their load is credited at the end of the day.
const MinutesPerDay = 24 * 60

// ParseClock parses an "HH:mm" string into minutes from midnight.
// ok is false for empty or malformed input.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// DurationMinutes is end minus start when both clocks parse and the span is
// positive, else 0.
func DurationMinutes(t model.Timing) int {
	start, okStart := ParseClock(t.Start)
	end, okEnd := ParseClock(t.End)
	if !okStart || !okEnd {
		return 0
	}
	if end <= start {
		return 0
	}
	return end - start
}

// EndMinutes is the minute-of-day at which the timing's planned load counts as
// delivered. Timings without a parseable end clock deliver at end of day.
func EndMinutes(t model.Timing) int {
	if end, ok := ParseClock(t.End); ok {
		return end
	}
	return MinutesPerDay
}

// AppliesOn reports whether the timing fires on the calendar day containing
// day, in day's location.
func AppliesOn(t model.Timing, day time.Time) bool {
	switch t.Type {
	case model.TimingDaily:
		return true
	case model.TimingDate:
		d, ok := parseDate(t.Date, day.Location())
		if !ok {
			return false
		}
		return sameDay(d, day)
	case model.TimingWeekly:
		weekdays, ok := parseWeekdayCron(t.Cron)
		if !ok {
			// Unparseable or absent allow-list fires every day. Logged so
			// misconfigured habits are observable rather than silent.
			log.Printf("schedule: weekly timing without weekday list, applying every day (cron=%q)", t.Cron)
			return true
		}
		_, match := weekdays[int(day.Weekday())]
		return match
	case model.TimingMonthly:
		d, ok := parseDate(t.Date, day.Location())
		if !ok {
			log.Printf("schedule: monthly timing without date, applying every day (date=%q)", t.Date)
			return true
		}
		return d.Day() == day.Day()
	}
	return false
}

// Allocate splits dailyTotal across the timings in order, proportional to each
// timing's duration. Timings without usable durations fall back to an equal
// split. The result always sums to dailyTotal when at least one timing exists.
func Allocate(dailyTotal float64, timings []model.Timing) []float64 {
	if len(timings) == 0 {
		return nil
	}

	durations := make([]int, len(timings))
	total := 0
	for i, t := range timings {
		durations[i] = DurationMinutes(t)
		total += durations[i]
	}

	allocs := make([]float64, len(timings))
	if total > 0 {
		for i, d := range durations {
			allocs[i] = dailyTotal * float64(d) / float64(total)
		}
		return allocs
	}

	// Equal split: no timing carries a duration, so none can claim a larger
	// share than another.
	each := dailyTotal / float64(len(timings))
	for i := range allocs {
		allocs[i] = each
	}
	return allocs
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func parseWeekdayCron(cron string) (map[int]struct{}, bool) {
	cron = strings.TrimSpace(cron)
	if !strings.HasPrefix(cron, model.WeekdayCronPrefix) {
		return nil, false
	}
	// An explicit list that parses to nothing matches no day at all.
	weekdays := make(map[int]struct{})
	for _, part := range strings.Split(strings.TrimPrefix(cron, model.WeekdayCronPrefix), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		weekdays[n] = struct{}{}
	}
	return weekdays, true
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
