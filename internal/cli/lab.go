package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grappleflow/grappleflow/internal/model"
	"github.com/grappleflow/grappleflow/internal/store"
)

var labCmd = &cobra.Command{
	Use:   "lab",
	Short: "Scientific lab notebook for technical challenges",
}

func init() {
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Open a new challenge",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLabAdd,
	}
	add.Flags().StringP("category", "c", "Guard", "Category: "+strings.Join(model.DefaultCategories, ", ")+" (or your own)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List challenges, most recently updated first",
		Run:   runLabList,
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a challenge and its notebook entries",
		Args:  cobra.ExactArgs(1),
		Run:   runLabShow,
	}

	note := &cobra.Command{
		Use:   "note <id> [content]",
		Short: "Append a notebook entry",
		Long:  "Append an Observation, Hypothesis or Experiment entry. Content can be a positional arg or piped via stdin.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLabNote,
	}
	note.Flags().StringP("type", "t", model.EntryObservation, "Entry type: Observation, Hypothesis, Experiment")
	note.Flags().StringP("result", "r", "", "Experiment result: Success, Failure, Inconclusive (default Inconclusive)")

	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a challenge's status (Active, Solved, Shelved)",
		Args:  cobra.ExactArgs(2),
		Run:   runLabStatus,
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a challenge and all of its entries",
		Args:  cobra.ExactArgs(1),
		Run:   runLabRm,
	}

	insight := &cobra.Command{
		Use:   "insight <id>",
		Short: "Ask Coach G for the next step on a challenge",
		Long:  "Sends the challenge's notebook history to the coach and appends the reply as an Analysis entry.",
		Args:  cobra.ExactArgs(1),
		Run:   runLabInsight,
	}

	labCmd.AddCommand(add, list, show, note, status, rm, insight)
	RootCmd.AddCommand(labCmd)
}

func runLabAdd(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		exitErr("lab add", fmt.Errorf("title is required"))
	}

	s, _ := openStore()
	c, err := s.AddChallenge(store.AddChallengeParams{Title: title, Category: category})
	if err != nil {
		exitErr("lab add", err)
	}

	if jsonOut() {
		printJSON(c)
		return
	}
	fmt.Printf("Opened challenge %q [%s]  %s\n", c.Title, c.Category, idStyle.Render(c.ID))
}

// challengeSummary is a challenge with its derived counters.
type challengeSummary struct {
	model.Challenge
	EntryCount      int  `json:"entry_count"`
	ExperimentCount int  `json:"experiment_count"`
	UntestedIdea    bool `json:"untested_idea"`
}

func summarize(s *store.Store, c model.Challenge) challengeSummary {
	entries := s.EntriesFor(c.ID)
	experiments := 0
	for _, e := range entries {
		if e.Type == model.EntryExperiment {
			experiments++
		}
	}
	return challengeSummary{
		Challenge:       c,
		EntryCount:      len(entries),
		ExperimentCount: experiments,
		UntestedIdea:    s.HasUntestedIdea(c.ID),
	}
}

func runLabList(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	challenges := s.Challenges()

	summaries := make([]challengeSummary, 0, len(challenges))
	for _, c := range challenges {
		summaries = append(summaries, summarize(s, c))
	}

	if jsonOut() {
		printJSON(summaries)
		return
	}
	if len(summaries) == 0 {
		fmt.Println("No challenges yet. Open one with: grappleflow lab add")
		return
	}
	for _, c := range summaries {
		flag := ""
		if c.UntestedIdea {
			flag = "  " + flagStyle.Render("● untested idea")
		}
		fmt.Printf("%s  %-10s %-8s %d notes, %d tests%s\n",
			idStyle.Render(c.ID), c.Category, c.Status, c.EntryCount, c.ExperimentCount, flag)
		fmt.Printf("    %s  %s\n", valueStyle.Render(c.Title),
			labelStyle.Render("updated "+c.LastUpdated.Format(time.DateOnly)))
	}
}

func runLabShow(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	c, err := s.Challenge(args[0])
	if err != nil {
		exitErr("lab show", err)
	}
	entries := s.EntriesFor(c.ID)

	if jsonOut() {
		printJSON(struct {
			challengeSummary
			Entries []model.LabEntry `json:"entries"`
		}{summarize(s, *c), emptyEntries(entries)})
		return
	}

	fmt.Printf("%s [%s, %s]\n", titleStyle.Render(c.Title), c.Category, c.Status)
	if s.HasUntestedIdea(c.ID) {
		fmt.Println(flagStyle.Render("● untested idea: a hypothesis is waiting for an experiment"))
	}
	if len(entries) == 0 {
		fmt.Println("\nLab notebook is empty. Log an observation to start.")
		return
	}
	fmt.Println()
	for _, e := range entries {
		header := fmt.Sprintf("[%s] %s", e.Date.Format(time.DateOnly), strings.ToUpper(e.Type))
		if e.Result != "" {
			header += fmt.Sprintf(" (%s)", e.Result)
		}
		fmt.Println(labelStyle.Render(header))
		fmt.Printf("  %s\n", e.Content)
	}
}

func emptyEntries(in []model.LabEntry) []model.LabEntry {
	if in == nil {
		return []model.LabEntry{}
	}
	return in
}

func runLabNote(cmd *cobra.Command, args []string) {
	entryType, _ := cmd.Flags().GetString("type")
	result, _ := cmd.Flags().GetString("result")

	var content string
	if len(args) > 1 {
		content = strings.Join(args[1:], " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}
	if strings.TrimSpace(content) == "" {
		exitErr("lab note", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	s, _ := openStore()
	e, err := s.AppendEntry(store.AppendEntryParams{
		ChallengeID: args[0],
		Type:        entryType,
		Content:     strings.TrimSpace(content),
		Result:      result,
	})
	if err != nil {
		exitErr("lab note", err)
	}

	if jsonOut() {
		printJSON(e)
		return
	}
	fmt.Printf("Appended %s entry  %s\n", e.Type, idStyle.Render(e.ID))
}

func runLabStatus(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	c, err := s.SetChallengeStatus(args[0], args[1])
	if err != nil {
		exitErr("lab status", err)
	}
	if jsonOut() {
		printJSON(c)
		return
	}
	fmt.Printf("Challenge %q is now %s\n", c.Title, c.Status)
}

func runLabRm(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	if err := s.DeleteChallenge(args[0]); err != nil {
		exitErr("lab rm", err)
	}
	if jsonOut() {
		fmt.Printf(`{"ok":true,"id":%q}`+"\n", args[0])
		return
	}
	fmt.Printf("Deleted challenge %s and its entries\n", args[0])
}

func runLabInsight(cmd *cobra.Command, args []string) {
	s, cfg := openStore()
	c, err := s.Challenge(args[0])
	if err != nil {
		exitErr("lab insight", err)
	}
	entries := s.EntriesFor(c.ID)

	fmt.Fprintln(os.Stderr, "Coach G is thinking...")
	text, insightErr := newCoach(cfg).ChallengeInsight(cmd.Context(), *c, entries)

	// A failed request still prints its apology but is never recorded in
	// the notebook.
	if insightErr == nil {
		if _, err := s.AppendEntry(store.AppendEntryParams{
			ChallengeID: c.ID,
			Type:        model.EntryAnalysis,
			Content:     text,
		}); err != nil {
			exitErr("lab insight", err)
		}
	}

	if jsonOut() {
		printJSON(map[string]interface{}{"insight": text, "recorded": insightErr == nil})
		return
	}
	fmt.Println(coachStyle.Render(text))
}
