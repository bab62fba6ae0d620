package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.Nop(), Config{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
		Model:   "gpt-4o",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func chatReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 5, "total_tokens": 8},
	})
	return string(b)
}

func TestGenerateJSONSendsStrictSchema(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("path: want=/v1/chat/completions got=%s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("auth: got=%q", auth)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatReply(`{"ok":true}`))
	})

	schema := map[string]any{"type": "object", "properties": map[string]any{"ok": map[string]any{"type": "boolean"}}}
	out, err := c.GenerateJSON(context.Background(), "sys", "usr", "probe", schema)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if string(out) != `{"ok":true}` {
		t.Fatalf("out: got=%s", out)
	}

	rf, _ := got["response_format"].(map[string]any)
	if rf["type"] != "json_schema" {
		t.Fatalf("response_format.type: got=%v", rf["type"])
	}
	js, _ := rf["json_schema"].(map[string]any)
	if js["name"] != "probe" || js["strict"] != true {
		t.Fatalf("json_schema: got=%v", js)
	}
	if temp, ok := got["temperature"].(float64); !ok || temp <= 0 || temp > 1e-6 {
		t.Fatalf("temperature: want near-zero got=%v", got["temperature"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages: want=2 got=%d", len(msgs))
	}
	sys, _ := msgs[0].(map[string]any)
	if !strings.HasSuffix(sys["content"].(string), "sys") {
		t.Fatalf("system prompt not preserved: %v", sys["content"])
	}
}

func TestGenerateJSONRefusal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"","refusal":"no"}}]}`)
	})
	_, err := c.GenerateJSON(context.Background(), "s", "u", "x", map[string]any{"type": "object"})
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("want refusal error got=%v", err)
	}
}

func TestGenerateTextAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
	})
	_, err := c.GenerateText(context.Background(), "s", "u")
	if err == nil {
		t.Fatalf("want error")
	}
	if got := statusOf(err); got != http.StatusTooManyRequests {
		t.Fatalf("status: want=429 got=%d", got)
	}
}

func TestEmbedOrdersByIndex(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Fatalf("path: got=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"object":"list","data":[{"object":"embedding","index":1,"embedding":[0.5]},{"object":"embedding","index":0,"embedding":[0.25]}],"model":"text-embedding-3-small"}`)
	})
	vecs, err := c.Embed(context.Background(), []string{"a", ""})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 || vecs[0][0] != 0.25 || vecs[1][0] != 0.5 {
		t.Fatalf("vecs: got=%v", vecs)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); err == nil {
		t.Fatalf("want error for missing key")
	}
}
