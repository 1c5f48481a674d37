package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/model"
	"github.com/grappleflow/grappleflow/internal/stats"
)

// weeklyTarget is the sessions-per-week goal shown on the dashboard.
const weeklyTarget = 4

// Dashboard is the at-a-glance summary of the journal.
type Dashboard struct {
	TotalSessions  int            `json:"total_sessions"`
	WeekCount      int            `json:"week_count"`
	WeeklyTarget   int            `json:"weekly_target"`
	LastSession    *model.Session `json:"last_session,omitempty"`
	OpenChallenges int            `json:"open_challenges"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the training overview",
		Run:   runDashboard,
	}
	RootCmd.AddCommand(cmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	sessions := s.Sessions()

	open := 0
	for _, c := range s.Challenges() {
		if c.Status == model.StatusActive {
			open++
		}
	}

	d := Dashboard{
		TotalSessions:  len(sessions),
		WeekCount:      stats.WeeklyCount(sessions, time.Now()),
		WeeklyTarget:   weeklyTarget,
		LastSession:    stats.LastSession(sessions),
		OpenChallenges: open,
	}

	if jsonOut() {
		printJSON(d)
		return
	}

	fmt.Println(titleStyle.Render("GrappleFlow"))
	fmt.Printf("%s %s\n", labelStyle.Render("Total sessions:"), valueStyle.Render(fmt.Sprintf("%d", d.TotalSessions)))
	fmt.Printf("%s %s\n", labelStyle.Render("This week:"), valueStyle.Render(fmt.Sprintf("%d / %d target", d.WeekCount, d.WeeklyTarget)))
	fmt.Printf("%s %s\n", labelStyle.Render("Open challenges:"), valueStyle.Render(fmt.Sprintf("%d", d.OpenChallenges)))

	if d.LastSession == nil {
		fmt.Println("\nNo training logged yet. Start with: grappleflow log add")
		return
	}
	last := d.LastSession
	fmt.Printf("\n%s\n", labelStyle.Render("Last session"))
	fmt.Printf("  %s  %s  %dm  %s\n", last.Date.Format("Monday, Jan 2"), last.Type, last.DurationMinutes, last.Mood)
	if last.Notes != "" {
		fmt.Printf("  %s\n", labelStyle.Render(last.Notes))
	}
}
