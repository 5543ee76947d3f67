// Package claude backs the nlp interfaces with the Anthropic Messages API.
package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/shoplist/internal/nlp"
)

// Commands are a handful of words; replies are one short line.
const maxTokens = 256

const systemPrompt = "You help maintain a grocery shopping list. Answer tersely."

type ClaudeBackend struct {
	client *anthropic.Client
	model  string
}

func NewClaudeBackend(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeBackend {
	return &ClaudeBackend{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (b *ClaudeBackend) Translate(ctx context.Context, text, sourceLang string) (string, error) {
	out, err := b.complete(ctx, nlp.TranslatePrompt(text, sourceLang))
	if err != nil {
		return "", err
	}
	return nlp.CleanTranslation(out), nil
}

func (b *ClaudeBackend) Extract(ctx context.Context, text string) (nlp.Intent, error) {
	out, err := b.complete(ctx, nlp.ExtractPrompt+text)
	if err != nil {
		return nlp.Unknown, err
	}
	return nlp.ParseIntentLine(out), nil
}

func (b *ClaudeBackend) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(b.model),
		System:    systemPrompt,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	for _, c := range resp.Content {
		if text := strings.TrimSpace(c.GetText()); text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("claude returned no text content")
}
