package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/model"
	"github.com/grappleflow/grappleflow/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage training sessions",
}

func init() {
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a training session",
		Run:   runLogAdd,
	}
	add.Flags().String("date", "", "Session date YYYY-MM-DD (default: today)")
	add.Flags().IntP("duration", "m", 90, "Duration in minutes")
	add.Flags().StringP("type", "t", model.TypeGi, "Type: Gi, No-Gi, Open Mat, Seminar, Competition")
	add.Flags().IntP("rounds", "r", 5, "Rolling rounds")
	add.Flags().String("techniques", "", "Comma-separated technique names")
	add.Flags().StringP("notes", "n", "", "Free-text notes")
	add.Flags().String("mood", "Good", "Mood: Great, Good, Neutral, Hard, Injured")
	add.Flags().IntP("intensity", "i", 7, "Intensity 1-10")

	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		Run:   runLogList,
	}
	list.Flags().StringP("search", "s", "", "Filter by notes or technique name")
	list.Flags().IntP("limit", "l", 20, "Max results")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		Run:   runLogRm,
	}

	logCmd.AddCommand(add, list, rm)
	RootCmd.AddCommand(logCmd)
}

func runLogAdd(cmd *cobra.Command, args []string) {
	dateStr, _ := cmd.Flags().GetString("date")
	duration, _ := cmd.Flags().GetInt("duration")
	typ, _ := cmd.Flags().GetString("type")
	rounds, _ := cmd.Flags().GetInt("rounds")
	techniquesStr, _ := cmd.Flags().GetString("techniques")
	notes, _ := cmd.Flags().GetString("notes")
	mood, _ := cmd.Flags().GetString("mood")
	intensity, _ := cmd.Flags().GetInt("intensity")

	var date time.Time
	if dateStr != "" {
		var err error
		date, err = time.Parse(time.DateOnly, dateStr)
		if err != nil {
			exitErr("log add", fmt.Errorf("invalid date %q (use YYYY-MM-DD)", dateStr))
		}
	}

	var techniques []model.Technique
	for _, name := range strings.Split(techniquesStr, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			techniques = append(techniques, model.Technique{Name: name})
		}
	}

	s, _ := openStore()
	sess, err := s.AddSession(store.AddSessionParams{
		Date:            date,
		DurationMinutes: duration,
		Type:            typ,
		Rounds:          rounds,
		Techniques:      techniques,
		Notes:           notes,
		Mood:            mood,
		Intensity:       intensity,
	})
	if err != nil {
		exitErr("log add", err)
	}

	if jsonOut() {
		printJSON(sess)
		return
	}
	fmt.Printf("Logged %s session on %s (%dm, intensity %d/10)  %s\n",
		sess.Type, sess.Date.Format(time.DateOnly), sess.DurationMinutes, sess.Intensity, idStyle.Render(sess.ID))
}

func runLogList(cmd *cobra.Command, args []string) {
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	s, _ := openStore()
	var sessions []model.Session
	if search != "" {
		sessions = s.FindSessions(search)
	} else {
		sessions = s.Sessions()
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	if jsonOut() {
		printJSON(sessions)
		return
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions logged yet.")
		return
	}
	for _, sess := range sessions {
		line := fmt.Sprintf("%s  %-11s %4dm  %d rounds  %2d/10  %-7s",
			sess.Date.Format(time.DateOnly), sess.Type, sess.DurationMinutes, sess.Rounds, sess.Intensity, sess.Mood)
		fmt.Printf("%s  %s\n", line, idStyle.Render(sess.ID))
		if sess.Notes != "" {
			fmt.Printf("    %s\n", labelStyle.Render(sess.Notes))
		}
	}
}

func runLogRm(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	if err := s.DeleteSession(args[0]); err != nil {
		exitErr("log rm", err)
	}
	if jsonOut() {
		fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
		return
	}
	fmt.Printf("Deleted session %s\n", args[0])
}
