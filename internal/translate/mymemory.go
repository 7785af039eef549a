package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const myMemoryBaseURL = "https://api.mymemory.translated.net"

// myMemoryProvider translates through the MyMemory REST API.
type myMemoryProvider struct {
	baseURL string
	client  *http.Client
}

// NewMyMemoryProvider creates the fallback translation provider.
func NewMyMemoryProvider() Provider {
	return &myMemoryProvider{
		baseURL: myMemoryBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *myMemoryProvider) Name() string { return "MyMemoryTranslator" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseDetails string `json:"responseDetails"`
}

func (p *myMemoryProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", "Autodetect|"+targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: unexpected status %d", resp.StatusCode)
	}

	var body myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("mymemory: decoding response: %w", err)
	}

	if body.ResponseData.TranslatedText == "" {
		if body.ResponseDetails != "" {
			return "", fmt.Errorf("mymemory: %s", body.ResponseDetails)
		}
		return "", fmt.Errorf("mymemory: empty translation")
	}

	return body.ResponseData.TranslatedText, nil
}
