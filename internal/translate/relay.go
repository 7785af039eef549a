package translate

import (
	"context"

	"github.com/charmbracelet/log"
)

// EmptyMessageNotice is returned when there is nothing to translate. It is a
// deliberate distinct outcome from both providers failing.
const EmptyMessageNotice = "The message to translate is empty."

// Outcome tags a relay result.
type Outcome int

const (
	// Translated means a provider returned a non-empty translation.
	Translated Outcome = iota
	// Notice means the input was not translatable and Text holds a fixed
	// human-readable notice instead of a translation.
	Notice
	// Absent means every provider failed or returned an empty result.
	Absent
)

// Result is the outcome of a relay translation.
type Result struct {
	Outcome Outcome
	Text    string
}

// Relay tries the primary provider and falls back to the secondary one.
// Each request makes at most two provider attempts: no retries, no backoff.
type Relay struct {
	primary  Provider
	fallback Provider
	logger   *log.Logger
}

// NewRelay creates a relay over a primary and a fallback provider.
func NewRelay(primary, fallback Provider, logger *log.Logger) *Relay {
	return &Relay{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Translate translates text to the target language, trying the primary
// provider first and the fallback second. A provider error or empty result
// moves straight on to the next provider.
func (r *Relay) Translate(ctx context.Context, text, targetLang string) Result {
	if text == "" {
		return Result{Outcome: Notice, Text: EmptyMessageNotice}
	}

	for _, p := range []Provider{r.primary, r.fallback} {
		r.logger.Infof("Attempting translation with %s to %s...", p.Name(), targetLang)

		translated, err := p.Translate(ctx, text, targetLang)
		if err != nil {
			r.logger.Warnf("%s failed: %v", p.Name(), err)
			continue
		}
		if translated == "" {
			r.logger.Warnf("%s returned an empty result", p.Name())
			continue
		}

		return Result{Outcome: Translated, Text: translated}
	}

	r.logger.Warn("All translation services failed or returned no result")
	return Result{Outcome: Absent}
}
