package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grappleflow/grappleflow/internal/model"
)

// fakeProvider returns a canned response or a canned error.
type fakeProvider struct {
	response string
	err      error
	lastReq  GenerateRequest
}

func (f *fakeProvider) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testSessions(n int) []model.Session {
	out := make([]model.Session, 0, n)
	base := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, model.Session{
			ID:              fmt.Sprintf("s%d", i),
			Date:            base.AddDate(0, 0, -i),
			DurationMinutes: 60,
			Type:            model.TypeGi,
			Mood:            "Good",
			Intensity:       6,
			Notes:           fmt.Sprintf("note %d", i),
		})
	}
	return out
}

func TestAnalyzePatternsFallbacks(t *testing.T) {
	broken := New(&fakeProvider{err: errors.New("boom")}, nil)

	text, err := broken.AnalyzePatterns(context.Background(), testSessions(3))
	require.Error(t, err)
	assert.Equal(t, FallbackAnalyze, text)

	// Empty collection short-circuits without touching the provider.
	text, err = broken.AnalyzePatterns(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, NoTrainingData, text)
}

func TestAnalyzePatternsLimitsSummary(t *testing.T) {
	p := &fakeProvider{response: "solid guard work"}
	c := New(p, nil)

	text, err := c.AnalyzePatterns(context.Background(), testSessions(15))
	require.NoError(t, err)
	assert.Equal(t, "solid guard work", text)

	// Only the 10 most recent sessions go into the prompt.
	assert.Contains(t, p.lastReq.Prompt, "note 9")
	assert.NotContains(t, p.lastReq.Prompt, "note 10")
	assert.Equal(t, SystemInstruction, p.lastReq.System)
}

func TestTechnicalAdvice(t *testing.T) {
	p := &fakeProvider{response: "frame, shrimp, recover guard"}
	c := New(p, nil)

	text, err := c.TechnicalAdvice(context.Background(), "how do I escape side control?", "got flattened in side control")
	require.NoError(t, err)
	assert.Equal(t, "frame, shrimp, recover guard", text)
	assert.Contains(t, p.lastReq.Prompt, "Context from user's recent training")
	assert.Contains(t, p.lastReq.Prompt, "User Question: how do I escape side control?")

	text, err = New(&fakeProvider{err: errors.New("timeout")}, nil).TechnicalAdvice(context.Background(), "q", "")
	require.Error(t, err)
	assert.Equal(t, FallbackAdvice, text)
}

func TestSuggestDrills(t *testing.T) {
	c := New(&fakeProvider{response: `["Drill A","Drill B","Drill C"]`}, nil)
	drills, err := c.SuggestDrills(context.Background(), "half guard")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drill A", "Drill B", "Drill C"}, drills)

	// Transport failure and parse failure both yield the defaults.
	drills, err = New(&fakeProvider{err: errors.New("down")}, nil).SuggestDrills(context.Background(), "mount")
	require.Error(t, err)
	assert.Equal(t, DefaultDrills, drills)

	drills, err = New(&fakeProvider{response: "not json"}, nil).SuggestDrills(context.Background(), "mount")
	require.Error(t, err)
	assert.Equal(t, DefaultDrills, drills)
}

func TestSuggestDrillsRequestsJSONArray(t *testing.T) {
	p := &fakeProvider{response: `["a"]`}
	_, err := New(p, nil).SuggestDrills(context.Background(), "closed guard")
	require.NoError(t, err)
	assert.True(t, p.lastReq.JSONArray)
}

func TestChallengeInsight(t *testing.T) {
	challenge := model.Challenge{
		ID:          "c1",
		Title:       "Breaking Closed Guard",
		Category:    "Passing",
		Status:      model.StatusActive,
		CreatedAt:   time.Now(),
		LastUpdated: time.Now(),
	}
	entries := []model.LabEntry{
		{
			ID: "e1", ChallengeID: "c1",
			Date: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Type: model.EntryExperiment, Content: "stood up to break", Result: model.ResultFailure,
		},
	}

	p := &fakeProvider{response: "try the knee-in-tailbone posture"}
	text, err := New(p, nil).ChallengeInsight(context.Background(), challenge, entries)
	require.NoError(t, err)
	assert.Equal(t, "try the knee-in-tailbone posture", text)

	assert.Contains(t, p.lastReq.Prompt, "Challenge: Breaking Closed Guard")
	assert.Contains(t, p.lastReq.Prompt, "EXPERIMENT: stood up to break (Result: Failure)")
	assert.Contains(t, p.lastReq.Prompt, "Scientific Method")

	text, err = New(&fakeProvider{err: errors.New("down")}, nil).ChallengeInsight(context.Background(), challenge, entries)
	require.Error(t, err)
	assert.Equal(t, FallbackInsight, text)
}

func TestNilProviderAlwaysFallsBack(t *testing.T) {
	c := New(nil, nil)

	text, err := c.TechnicalAdvice(context.Background(), "q", "")
	require.Error(t, err)
	assert.Equal(t, FallbackAdvice, text)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ProviderConfig{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiProvider{}, p)

	p, err = NewProvider(ProviderConfig{Provider: "ollama"})
	require.NoError(t, err)
	assert.IsType(t, &OllamaProvider{}, p)

	p, err = NewProvider(ProviderConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewProvider(ProviderConfig{Provider: "skynet"})
	require.Error(t, err)
}

func TestRecentNotes(t *testing.T) {
	sessions := testSessions(5)
	sessions[1].Notes = "   " // blank notes are skipped

	notes := RecentNotes(sessions, 3)
	parts := strings.Split(notes, "; ")
	assert.Equal(t, []string{"note 0", "note 2", "note 3"}, parts)

	assert.Equal(t, "", RecentNotes(nil, 3))
}
