package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecretKeys(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"author_email", "jane@example.com",
		"db_password", "hunter2",
		"name", "Jane Doe",
	})
	if len(out) != 6 {
		t.Fatalf("len: want=6 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("email: want=[REDACTED] got=%v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("password: want=[REDACTED] got=%v", out[3])
	}
	if out[5] != "Jane Doe" {
		t.Fatalf("name: want=Jane Doe got=%v", out[5])
	}
}

func TestSanitizeKVsHashesClientIP(t *testing.T) {
	out := sanitizeKVs([]interface{}{"client_ip", "10.0.0.1"})
	got, ok := out[1].(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("client_ip: want hash prefix got=%v", out[1])
	}
	if strings.Contains(got, "10.0.0.1") {
		t.Fatalf("client_ip leaked: %s", got)
	}
}

func TestSanitizeKVsNestedMap(t *testing.T) {
	out := sanitizeKVs([]interface{}{"payload", map[string]interface{}{"token": "abc", "id": 1}})
	m, ok := out[1].(map[string]interface{})
	if !ok {
		t.Fatalf("payload: want map got=%T", out[1])
	}
	if m["token"] != "[REDACTED]" || m["id"] != 1 {
		t.Fatalf("payload: unexpected %+v", m)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected %+v", out)
	}
}
