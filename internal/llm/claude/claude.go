package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/llm"
	"llm-stock-analyst/internal/store"
	"llm-stock-analyst/internal/trace"
	"llm-stock-analyst/internal/types"
)

// ClaudeNarrator implements the Narrator interface using the Anthropic
// messages API.
type ClaudeNarrator struct {
	cfg      *store.Config
	endpoint string
}

var _ interfaces.Narrator = (*ClaudeNarrator)(nil)

func NewClaudeNarrator(cfg *store.Config) *ClaudeNarrator {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// If you use a proxy/bedrock/vertex, set endpoint via CLAUDE_API_ENDPOINT env var
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &ClaudeNarrator{cfg: cfg, endpoint: endpoint}
}

func (n *ClaudeNarrator) Narrate(ctx context.Context, summary *types.Summary, headlines []types.Headline) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	system := n.cfg.LLM.System
	if system == "" {
		system = llm.DefaultSystem
	}
	prompt := llm.BuildPrompt(summary, headlines)

	reqBody := map[string]any{
		"model":  n.cfg.LLM.Model,
		"system": system,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  n.cfg.LLM.MaxTokens,
		"temperature": n.cfg.LLM.Temperature,
	}

	bb, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, "POST", n.endpoint, bytes.NewReader(bb))
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(body))
	}

	respBytes, _ := io.ReadAll(resp.Body)
	return extractText(respBytes)
}

// extractText drills the messages response for assistant text, tolerating
// proxies that flatten the content array into a plain string field.
func extractText(respBytes []byte) (string, error) {
	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBytes, &r); err == nil {
		var parts []string
		for _, c := range r.Content {
			if c.Type == "text" && strings.TrimSpace(c.Text) != "" {
				parts = append(parts, c.Text)
			}
		}
		if len(parts) > 0 {
			return strings.TrimSpace(strings.Join(parts, "\n")), nil
		}
	}

	var anyResp map[string]any
	if err := json.Unmarshal(respBytes, &anyResp); err == nil {
		for _, k := range []string{"completion", "output", "output_text", "completion_text", "result"} {
			if v, exists := anyResp[k]; exists {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s), nil
				}
			}
		}
	}

	return "", errors.New("no text content in claude response")
}
