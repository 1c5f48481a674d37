// Package coach wraps an external generative-text API behind a pluggable
// provider interface. Every request is single-shot; failures return fixed
// fallback text alongside the error, so callers always have something to
// print and can still skip side effects.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grappleflow/grappleflow/internal/model"
)

// SystemInstruction is the fixed persona sent with every request.
const SystemInstruction = `You are a world-class Brazilian Jiu-Jitsu coach and analyst named "Coach G".
Your goal is to help students improve by analyzing their training logs, suggesting technical fixes, and providing strategic advice.
You are encouraging but realistic. You use standard BJJ terminology (IBJJF standards).
Keep responses concise and actionable.`

// Fallback strings surfaced when a request fails.
const (
	FallbackAnalyze = "Error connecting to Coach G. Please try again later."
	FallbackAdvice  = "Network error. Coach G is offline."
	FallbackInsight = "Coach G is currently analyzing other matches. Try again later."

	NoTrainingData = "No training data available yet. Log some sessions to get insights!"
)

// DefaultDrills are returned when drill suggestion fails in transport or
// parsing.
var DefaultDrills = []string{"Shrimping", "Technical Standup", "Bridge and Roll"}

// GenerateRequest is a single prompt to the model.
type GenerateRequest struct {
	System string
	Prompt string
	// JSONArray asks for a strictly-typed JSON array-of-strings response.
	JSONArray bool
}

// Provider generates text from a prompt.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ProviderConfig selects and configures a provider.
type ProviderConfig struct {
	Provider string // "gemini", "ollama" or "none"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewProvider builds a provider from config. Provider "none" (or empty)
// returns nil: coach commands then answer with their fallbacks only.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "", "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown coach provider %q", cfg.Provider)
}

// Coach issues advice requests and maps every failure to fixed fallback
// text. A nil provider behaves like a provider that always fails.
type Coach struct {
	provider Provider
	log      *logrus.Logger
}

// New creates a coach on top of a provider.
func New(p Provider, log *logrus.Logger) *Coach {
	if log == nil {
		log = logrus.New()
	}
	return &Coach{provider: p, log: log}
}

func (c *Coach) generate(ctx context.Context, req GenerateRequest) (string, error) {
	if c.provider == nil {
		return "", fmt.Errorf("no coach provider configured")
	}
	return c.provider.Generate(ctx, req)
}

// AnalyzePatterns reviews up to the 10 most recent sessions and returns
// free-text analysis. On failure the returned text is the fixed fallback
// and the error reports why; the text is always printable.
func (c *Coach) AnalyzePatterns(ctx context.Context, sessions []model.Session) (string, error) {
	if len(sessions) == 0 {
		return NoTrainingData, nil
	}

	text, err := c.generate(ctx, GenerateRequest{
		System: SystemInstruction,
		Prompt: analyzePrompt(sessions),
	})
	if err != nil {
		c.log.WithError(err).Warn("pattern analysis failed")
		return FallbackAnalyze, err
	}
	if strings.TrimSpace(text) == "" {
		return "Could not generate analysis.", nil
	}
	return text, nil
}

// TechnicalAdvice answers a free-form question, optionally seeded with
// recent session notes as context.
func (c *Coach) TechnicalAdvice(ctx context.Context, query, contextNotes string) (string, error) {
	prompt := query
	if contextNotes != "" {
		prompt = fmt.Sprintf("Context from user's recent training: %s\n\nUser Question: %s", contextNotes, query)
	}

	text, err := c.generate(ctx, GenerateRequest{System: SystemInstruction, Prompt: prompt})
	if err != nil {
		c.log.WithError(err).Warn("technical advice failed")
		return FallbackAdvice, err
	}
	if strings.TrimSpace(text) == "" {
		return "I couldn't come up with an answer right now.", nil
	}
	return text, nil
}

// SuggestDrills returns three drills for a position. Any transport or
// parse failure yields the hardcoded defaults.
func (c *Coach) SuggestDrills(ctx context.Context, position string) ([]string, error) {
	text, err := c.generate(ctx, GenerateRequest{
		System:    SystemInstruction,
		Prompt:    fmt.Sprintf("Suggest 3 specific solo or partner drills to improve the '%s' position in BJJ. Return JSON.", position),
		JSONArray: true,
	})
	if err != nil {
		c.log.WithError(err).Warn("drill suggestion failed")
		return DefaultDrills, err
	}

	var drills []string
	if err := json.Unmarshal([]byte(text), &drills); err != nil || len(drills) == 0 {
		c.log.WithField("response", text).Warn("drill suggestion returned unparseable output")
		return DefaultDrills, fmt.Errorf("unparseable drill response")
	}
	return drills, nil
}

// ChallengeInsight synthesizes the next step for a challenge from its
// chronological entry history.
func (c *Coach) ChallengeInsight(ctx context.Context, challenge model.Challenge, entries []model.LabEntry) (string, error) {
	text, err := c.generate(ctx, GenerateRequest{
		System: SystemInstruction,
		Prompt: insightPrompt(challenge, entries),
	})
	if err != nil {
		c.log.WithError(err).Warn("challenge insight failed")
		return FallbackInsight, err
	}
	if strings.TrimSpace(text) == "" {
		return "Unable to generate insight.", nil
	}
	return text, nil
}
