package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecretsAndHashesTranscripts(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"api_key", "sk-live-123",
		"Authorization", "Bearer abc",
		"transcript", "Water boils at 100 degrees.",
		"paragraphs", 3,
	})
	if len(out) != 8 {
		t.Fatalf("len: want=8 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api_key: want=[REDACTED] got=%v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("authorization: want=[REDACTED] got=%v", out[3])
	}
	hashed, ok := out[5].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("transcript: want hash:* got=%v", out[5])
	}
	if out[7] != 3 {
		t.Fatalf("paragraphs: want=3 got=%v", out[7])
	}
}

func TestSanitizeKVsOddLengthKeepsTrailingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"language", "Arabic", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestSanitizeValueNestedMap(t *testing.T) {
	got := sanitizeValue("payload", map[string]interface{}{"token": "x", "name": "Science"})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("type: got=%T", got)
	}
	if m["token"] != "[REDACTED]" {
		t.Fatalf("token: want=[REDACTED] got=%v", m["token"])
	}
	if m["name"] != "Science" {
		t.Fatalf("name: want=Science got=%v", m["name"])
	}
}
