package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/stats"
)

// Report is the full stats output.
type Report struct {
	AvgIntensity   *float64          `json:"avg_intensity,omitempty"`
	TotalHours     int               `json:"total_hours"`
	TotalMinutes   int               `json:"total_minutes"`
	TypeHistogram  []stats.TypeCount `json:"type_histogram"`
	RecentActivity []stats.DayCount  `json:"recent_activity"`
	WeekCount      int               `json:"week_count"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show training statistics",
		Run:   runStats,
	}
	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	sessions := s.Sessions()

	r := Report{
		TypeHistogram:  stats.TypeHistogram(sessions),
		RecentActivity: stats.RecentActivity(sessions, 7),
		WeekCount:      stats.WeeklyCount(sessions, time.Now()),
	}
	r.TotalHours, r.TotalMinutes = stats.TotalMatTime(sessions)
	if avg, ok := stats.AverageIntensity(sessions); ok {
		r.AvgIntensity = &avg
	}

	if jsonOut() {
		printJSON(r)
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No data yet. Log your first session to see your stats!")
		return
	}

	fmt.Println(titleStyle.Render("Training Stats"))
	fmt.Printf("%s %s\n", labelStyle.Render("Total mat time:"), valueStyle.Render(fmt.Sprintf("%dh %dm", r.TotalHours, r.TotalMinutes)))
	if r.AvgIntensity != nil {
		fmt.Printf("%s %s\n", labelStyle.Render("Avg intensity:"), valueStyle.Render(fmt.Sprintf("%.1f/10", *r.AvgIntensity)))
	} else {
		fmt.Printf("%s no data\n", labelStyle.Render("Avg intensity:"))
	}
	fmt.Printf("%s %s\n", labelStyle.Render("This week:"), valueStyle.Render(fmt.Sprintf("%d sessions", r.WeekCount)))

	if len(r.TypeHistogram) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("Training type"))
		max := 0
		for _, tc := range r.TypeHistogram {
			if tc.Count > max {
				max = tc.Count
			}
		}
		for _, tc := range r.TypeHistogram {
			fmt.Printf("  %-12s %s %d\n", tc.Type, barStyle.Render(bar(tc.Count, max, 24)), tc.Count)
		}
	}

	if len(r.RecentActivity) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("Recent activity"))
		max := 0
		for _, dc := range r.RecentActivity {
			if dc.Count > max {
				max = dc.Count
			}
		}
		for _, dc := range r.RecentActivity {
			fmt.Printf("  %s %s %d\n", dc.Day.Format("Jan 02"), barStyle.Render(bar(dc.Count, max, 24)), dc.Count)
		}
	}
}

// bar renders a proportional block bar of at most width cells.
func bar(count, max, width int) string {
	if max <= 0 {
		return ""
	}
	n := count * width / max
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
