package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/coach"
	"github.com/grappleflow/grappleflow/internal/model"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Chat with Coach G",
}

func init() {
	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a technical question",
		Long:  "Ask Coach G a question. Recent session notes are included as context; questions about your training or progress trigger a full pattern analysis.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCoachAsk,
	}
	ask.Flags().Bool("no-context", false, "Do not include recent session notes")

	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze recent training patterns",
		Run:   runCoachAnalyze,
	}

	drills := &cobra.Command{
		Use:   "drills <position>",
		Short: "Get three drill suggestions for a position",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCoachDrills,
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation so far",
		Run:   runCoachHistory,
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Forget the conversation history",
		Run:   runCoachClear,
	}

	coachCmd.AddCommand(ask, analyze, drills, history, clear)
	RootCmd.AddCommand(coachCmd)
}

// wantsAnalysis routes training-review questions to pattern analysis
// instead of free-form Q&A.
func wantsAnalysis(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(q, "analyze") || strings.Contains(q, "my training") || strings.Contains(q, "progress")
}

func runCoachAsk(cmd *cobra.Command, args []string) {
	noContext, _ := cmd.Flags().GetBool("no-context")
	query := strings.Join(args, " ")

	s, cfg := openStore()
	c := newCoach(cfg)
	sessions := s.Sessions()

	if _, err := s.AddMessage(model.RoleUser, query); err != nil {
		exitErr("coach ask", err)
	}

	fmt.Fprintln(os.Stderr, "Coach G is thinking...")
	var reply string
	if wantsAnalysis(query) {
		reply, _ = c.AnalyzePatterns(cmd.Context(), sessions)
	} else {
		notes := ""
		if !noContext {
			notes = coach.RecentNotes(sessions, 3)
		}
		reply, _ = c.TechnicalAdvice(cmd.Context(), query, notes)
	}

	if _, err := s.AddMessage(model.RoleModel, reply); err != nil {
		exitErr("coach ask", err)
	}

	if jsonOut() {
		printJSON(map[string]string{"question": query, "answer": reply})
		return
	}
	fmt.Println(coachStyle.Render(reply))
}

func runCoachAnalyze(cmd *cobra.Command, args []string) {
	s, cfg := openStore()

	fmt.Fprintln(os.Stderr, "Coach G is thinking...")
	reply, _ := newCoach(cfg).AnalyzePatterns(cmd.Context(), s.Sessions())

	if jsonOut() {
		printJSON(map[string]string{"analysis": reply})
		return
	}
	fmt.Println(coachStyle.Render(reply))
}

func runCoachDrills(cmd *cobra.Command, args []string) {
	position := strings.Join(args, " ")
	_, cfg := openStore()

	fmt.Fprintln(os.Stderr, "Coach G is thinking...")
	drills, _ := newCoach(cfg).SuggestDrills(cmd.Context(), position)

	if jsonOut() {
		printJSON(drills)
		return
	}
	fmt.Printf("Drills for %s:\n", valueStyle.Render(position))
	for i, d := range drills {
		fmt.Printf("  %d. %s\n", i+1, d)
	}
}

func runCoachHistory(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	messages := s.Messages()

	if jsonOut() {
		printJSON(messages)
		return
	}
	if len(messages) == 0 {
		fmt.Println("No conversation yet. Ask something with: grappleflow coach ask")
		return
	}
	for _, m := range messages {
		who := "you"
		text := m.Text
		if m.Role == model.RoleModel {
			who = "coach"
			text = coachStyle.Render(text)
		}
		fmt.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("[%s %s]", m.Timestamp.Format("Jan 02 15:04"), who)), text)
	}
}

func runCoachClear(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	if err := s.ClearMessages(); err != nil {
		exitErr("coach clear", err)
	}
	fmt.Println("Conversation cleared.")
}
