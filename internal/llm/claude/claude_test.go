package claude

import (
	"strings"
	"testing"
)

func TestExtractTextMessagesAPI(t *testing.T) {
	body := []byte(`{"content":[{"type":"text","text":"Section 1: Indicator Status"},{"type":"text","text":"Section 2: Market Sentiment"}]}`)

	got, err := extractText(body)
	if err != nil {
		t.Fatalf("extractText: %v", err)
	}
	if !strings.Contains(got, "Indicator Status") || !strings.Contains(got, "Market Sentiment") {
		t.Errorf("got %q, want both sections joined", got)
	}
}

func TestExtractTextFlattenedProxy(t *testing.T) {
	body := []byte(`{"completion":"  report body  "}`)

	got, err := extractText(body)
	if err != nil {
		t.Fatalf("extractText: %v", err)
	}
	if got != "report body" {
		t.Errorf("got %q, want trimmed completion", got)
	}
}

func TestExtractTextNoContent(t *testing.T) {
	if _, err := extractText([]byte(`{"id":"msg_1"}`)); err == nil {
		t.Fatal("want error for response without text")
	}
}

func TestExtractTextSkipsNonText(t *testing.T) {
	body := []byte(`{"content":[{"type":"tool_use","text":""},{"type":"text","text":"only this"}]}`)

	got, err := extractText(body)
	if err != nil {
		t.Fatalf("extractText: %v", err)
	}
	if got != "only this" {
		t.Errorf("got %q, want %q", got, "only this")
	}
}
