// Package stats computes aggregates over the session collection. All
// functions are pure and recomputed on demand; nothing is cached or
// incrementally maintained.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/grappleflow/grappleflow/internal/model"
)

// WeeklyCount returns the number of sessions dated strictly after
// now − 7×24h.
func WeeklyCount(sessions []model.Session, now time.Time) int {
	cutoff := now.Add(-7 * 24 * time.Hour)
	n := 0
	for _, s := range sessions {
		if s.Date.After(cutoff) {
			n++
		}
	}
	return n
}

// AverageIntensity returns the mean intensity rounded to one decimal
// place. ok is false when there are no sessions; callers report "no data"
// instead of a number.
func AverageIntensity(sessions []model.Session) (avg float64, ok bool) {
	if len(sessions) == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range sessions {
		sum += s.Intensity
	}
	avg = math.Round(float64(sum)/float64(len(sessions))*10) / 10
	return avg, true
}

// TotalMatTime sums session durations, split into hours and remainder
// minutes.
func TotalMatTime(sessions []model.Session) (hours, minutes int) {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total / 60, total % 60
}

// TypeCount is one bucket of the session type histogram.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TypeHistogram counts sessions per type, in fixed enum order, skipping
// empty buckets.
func TypeHistogram(sessions []model.Session) []TypeCount {
	counts := make(map[string]int)
	for _, s := range sessions {
		counts[s.Type]++
	}
	var out []TypeCount
	for _, t := range model.SessionTypes {
		if counts[t] > 0 {
			out = append(out, TypeCount{Type: t, Count: counts[t]})
		}
	}
	return out
}

// DayCount is one day of the recent-activity series.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// RecentActivity groups sessions by calendar day and returns the most
// recent limit days that have sessions, oldest first. Days are real dates,
// year included, so activity a year apart never shares a bucket.
func RecentActivity(sessions []model.Session, limit int) []DayCount {
	counts := make(map[time.Time]int)
	for _, s := range sessions {
		day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, time.UTC)
		counts[day]++
	}

	days := make([]time.Time, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	if limit > 0 && len(days) > limit {
		days = days[len(days)-limit:]
	}

	out := make([]DayCount, 0, len(days))
	for _, d := range days {
		out = append(out, DayCount{Day: d, Count: counts[d]})
	}
	return out
}

// LastSession returns the most recent session by date, or nil when the
// collection is empty.
func LastSession(sessions []model.Session) *model.Session {
	var last *model.Session
	for i := range sessions {
		if last == nil || sessions[i].Date.After(last.Date) {
			last = &sessions[i]
		}
	}
	if last == nil {
		return nil
	}
	s := *last
	return &s
}
