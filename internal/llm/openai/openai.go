package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/llm"
	"llm-stock-analyst/internal/store"
	"llm-stock-analyst/internal/trace"
	"llm-stock-analyst/internal/types"
)

type OpenAINarrator struct {
	cfg *store.Config
}

var _ interfaces.Narrator = (*OpenAINarrator)(nil)

func NewOpenAINarrator(cfg *store.Config) *OpenAINarrator {
	return &OpenAINarrator{cfg: cfg}
}

func (n *OpenAINarrator) Narrate(ctx context.Context, summary *types.Summary, headlines []types.Headline) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	system := n.cfg.LLM.System
	if system == "" {
		system = llm.DefaultSystem
	}
	prompt := llm.BuildPrompt(summary, headlines)

	body := map[string]any{
		"model":       n.cfg.LLM.Model,
		"messages":    []map[string]string{{"role": "system", "content": system}, {"role": "user", "content": prompt}},
		"temperature": n.cfg.LLM.Temperature,
		"max_tokens":  n.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("empty completion")
	}
	return out, nil
}
