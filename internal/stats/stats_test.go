package stats

import (
	"testing"
	"time"

	"github.com/grappleflow/grappleflow/internal/model"
)

func sessionOn(date time.Time, minutes, intensity int, typ string) model.Session {
	return model.Session{
		ID:              "s-" + date.Format("20060102150405"),
		Date:            date,
		DurationMinutes: minutes,
		Type:            typ,
		Mood:            "Good",
		Intensity:       intensity,
	}
}

func TestWeeklyCount(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	sessions := []model.Session{
		sessionOn(now.AddDate(0, 0, -8), 60, 5, model.TypeGi),
		sessionOn(now.AddDate(0, 0, -2), 60, 5, model.TypeGi),
	}
	if got := WeeklyCount(sessions, now); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}

	// Exactly on the cutoff is not strictly after it.
	onCutoff := []model.Session{sessionOn(now.Add(-7*24*time.Hour), 60, 5, model.TypeGi)}
	if got := WeeklyCount(onCutoff, now); got != 0 {
		t.Errorf("cutoff instant counted, expected 0 got %d", got)
	}
}

func TestAverageIntensity(t *testing.T) {
	now := time.Now()
	sessions := []model.Session{
		sessionOn(now, 60, 7, model.TypeGi),
		sessionOn(now, 60, 9, model.TypeGi),
		sessionOn(now, 60, 5, model.TypeGi),
	}
	avg, ok := AverageIntensity(sessions)
	if !ok || avg != 7.0 {
		t.Errorf("expected 7.0, got %v (ok=%v)", avg, ok)
	}

	if _, ok := AverageIntensity(nil); ok {
		t.Error("empty collection must report no data")
	}

	// Rounding to one decimal.
	avg, _ = AverageIntensity([]model.Session{
		sessionOn(now, 60, 7, model.TypeGi),
		sessionOn(now, 60, 8, model.TypeGi),
		sessionOn(now, 60, 8, model.TypeGi),
	})
	if avg != 7.7 {
		t.Errorf("expected 7.7, got %v", avg)
	}
}

func TestTotalMatTime(t *testing.T) {
	now := time.Now()
	h, m := TotalMatTime([]model.Session{
		sessionOn(now, 90, 5, model.TypeGi),
		sessionOn(now, 45, 5, model.TypeGi),
	})
	if h != 2 || m != 15 {
		t.Errorf("expected 2h 15m, got %dh %dm", h, m)
	}

	h, m = TotalMatTime(nil)
	if h != 0 || m != 0 {
		t.Errorf("expected 0h 0m for empty, got %dh %dm", h, m)
	}
}

func TestTypeHistogram(t *testing.T) {
	now := time.Now()
	sessions := []model.Session{
		sessionOn(now, 60, 5, model.TypeNoGi),
		sessionOn(now, 60, 5, model.TypeGi),
		sessionOn(now, 60, 5, model.TypeGi),
	}
	got := TypeHistogram(sessions)
	want := []TypeCount{{Type: model.TypeGi, Count: 2}, {Type: model.TypeNoGi, Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestRecentActivity(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var sessions []model.Session
	// Ten distinct days, two sessions on the last day.
	for i := 0; i < 10; i++ {
		sessions = append(sessions, sessionOn(base.AddDate(0, 0, i), 60, 5, model.TypeGi))
	}
	sessions = append(sessions, sessionOn(base.AddDate(0, 0, 9).Add(8*time.Hour), 60, 5, model.TypeGi))

	got := RecentActivity(sessions, 7)
	if len(got) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got))
	}
	// Oldest first, ending on the most recent day.
	firstDay := time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)
	if !got[0].Day.Equal(firstDay) {
		t.Errorf("expected first day %v, got %v", firstDay, got[0].Day)
	}
	lastDay := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	if !got[6].Day.Equal(lastDay) || got[6].Count != 2 {
		t.Errorf("expected %v count 2, got %v count %d", lastDay, got[6].Day, got[6].Count)
	}
}

func TestRecentActivitySeparatesYears(t *testing.T) {
	// Same month/day a year apart must not share a bucket.
	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	got := RecentActivity([]model.Session{
		sessionOn(d1, 60, 5, model.TypeGi),
		sessionOn(d2, 60, 5, model.TypeGi),
	}, 7)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Count != 1 || got[1].Count != 1 {
		t.Errorf("years merged into one bucket: %+v", got)
	}
}

func TestLastSession(t *testing.T) {
	if LastSession(nil) != nil {
		t.Error("expected nil for empty collection")
	}

	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	sessions := []model.Session{
		sessionOn(now.AddDate(0, 0, -1), 60, 5, model.TypeGi),
		sessionOn(now, 60, 5, model.TypeNoGi),
		sessionOn(now.AddDate(0, 0, -3), 60, 5, model.TypeGi),
	}
	last := LastSession(sessions)
	if last == nil || !last.Date.Equal(now) {
		t.Errorf("expected most recent session, got %+v", last)
	}
}
