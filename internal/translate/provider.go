// Package translate relays text to external translation services, trying a
// primary provider and falling back to a secondary one.
package translate

import "context"

// Provider is a single external translation service. The source language is
// always auto-detected; targetLang is a 2-letter ISO 639-1 code.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, targetLang string) (string, error)
}
