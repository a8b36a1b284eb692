// Package assistant answers rent questions and turns free-text room searches
// into structured filters using a hosted generative model.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rohit6800/UniStay/internal/models"
)

const (
	// FallbackAdvice is returned whenever the model cannot answer
	FallbackAdvice = "Unable to get AI advice at the moment. Market average for students is usually 5000-8000 INR."

	// DefaultBudget is used for chat questions that do not state a budget
	DefaultBudget = 7000
)

// FieldType is the JSON type of a structured reply field
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
)

// Request is one prompt to the model. A non-nil Schema asks for a JSON
// object reply with those fields.
type Request struct {
	Prompt string
	Schema map[string]FieldType
}

// Generator produces a text reply for a prompt
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Outcome of a call, reported to Observer
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeFallback Outcome = "fallback"
)

// Observer is told how each call ended
type Observer func(kind string, outcome Outcome)

// Assistant wraps a Generator with the prompts and failure handling
type Assistant struct {
	gen     Generator
	observe Observer
}

// New creates an Assistant. gen may be nil, in which case every call falls back.
func New(gen Generator, observe Observer) *Assistant {
	if observe == nil {
		observe = func(string, Outcome) {}
	}
	return &Assistant{gen: gen, observe: observe}
}

var intentSchema = map[string]FieldType{
	"budget":     FieldNumber,
	"roomType":   FieldString,
	"genderPref": FieldString,
	"location":   FieldString,
}

// RentAdvice asks for the market rent and negotiation tips for question at
// budget INR per month. It never fails: any error yields FallbackAdvice.
func (a *Assistant) RentAdvice(ctx context.Context, budget int, question string) string {
	if a.gen == nil {
		a.observe("advice", OutcomeFallback)
		return FallbackAdvice
	}

	prompt := fmt.Sprintf(`I am looking for a student room in %s with a budget of %d INR per month.
What is the average market rent there? Give me 3 tips for negotiating with landlords in this area.
Keep it brief and helpful for a student.`, question, budget)

	reply, err := a.gen.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		slog.ErrorContext(ctx, "rent advice request failed", "error", err)
		a.observe("advice", OutcomeFallback)
		return FallbackAdvice
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		a.observe("advice", OutcomeFallback)
		return FallbackAdvice
	}

	a.observe("advice", OutcomeOK)
	return reply
}

// ParseSearchIntent extracts search parameters from a student's query.
// The result is advisory; ok is false when the call or the parse failed.
func (a *Assistant) ParseSearchIntent(ctx context.Context, query string) (*models.SearchIntent, bool) {
	if a.gen == nil {
		a.observe("intent", OutcomeFallback)
		return nil, false
	}

	prompt := fmt.Sprintf(`Extract search parameters from this student query: %q.
Return JSON with budget (number), roomType (Single/Sharing/PG), genderPref (Girls/Boys/Co-ed), and location (string).`, query)

	reply, err := a.gen.Generate(ctx, Request{Prompt: prompt, Schema: intentSchema})
	if err != nil {
		slog.ErrorContext(ctx, "search intent request failed", "error", err)
		a.observe("intent", OutcomeFallback)
		return nil, false
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "{}"
	}

	var intent models.SearchIntent
	if err := json.Unmarshal([]byte(reply), &intent); err != nil {
		slog.ErrorContext(ctx, "search intent reply is not valid JSON", "error", err)
		a.observe("intent", OutcomeFallback)
		return nil, false
	}

	a.observe("intent", OutcomeOK)
	return &intent, true
}
