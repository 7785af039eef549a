package translate

import (
	"context"
	"fmt"

	gtranslate "github.com/Conight/go-googletrans"
)

// googleProvider translates through the free Google Translate web endpoint.
type googleProvider struct {
	t *gtranslate.Translator
}

// NewGoogleProvider creates the primary translation provider.
func NewGoogleProvider() Provider {
	return &googleProvider{t: gtranslate.New(gtranslate.Config{})}
}

func (p *googleProvider) Name() string { return "GoogleTranslator" }

func (p *googleProvider) Translate(_ context.Context, text, targetLang string) (string, error) {
	result, err := p.t.Translate(text, "auto", targetLang)
	if err != nil {
		return "", fmt.Errorf("google translate: %w", err)
	}
	return result.Text, nil
}
