package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vbonduro/shoplist/internal/nlp"
)

type OllamaBackend struct {
	host   string
	model  string
	client *http.Client
}

func NewOllamaBackend(host, model string) *OllamaBackend {
	return &OllamaBackend{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

func (b *OllamaBackend) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	out, err := b.generate(ctx, nlp.TranslatePrompt(text, sourceLang))
	if err != nil {
		return "", err
	}
	return nlp.CleanTranslation(out), nil
}

func (b *OllamaBackend) Extract(ctx context.Context, text string) (nlp.Intent, error) {
	out, err := b.generate(ctx, nlp.ExtractPrompt+text)
	if err != nil {
		return nlp.Unknown, err
	}
	return nlp.ParseIntentLine(out), nil
}

func (b *OllamaBackend) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":  b.model,
		"prompt": prompt,
		"stream": false,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var respBody struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return respBody.Response, nil
}
