package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newRedactingLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := NewRedactingHandler(slog.NewTextHandler(&buf, nil))
	return NewSlogLogger(slog.New(h)), &buf
}

func TestRedactingHandler_MasksCredentialKeys(t *testing.T) {
	log, buf := newRedactingLogger(t)
	ctx := context.Background()

	log.Info(ctx, "creating client", "api_key", "sk_live_secret", "base_url", "https://api.example.com")

	out := buf.String()
	if strings.Contains(out, "sk_live_secret") {
		t.Fatalf("raw credential leaked into log output:\n%s", out)
	}
	if !strings.Contains(out, "api_key="+redactedValue) {
		t.Fatalf("expected masked api_key attribute in output:\n%s", out)
	}
	if !strings.Contains(out, "base_url=https://api.example.com") {
		t.Fatalf("expected non-sensitive attribute untouched:\n%s", out)
	}
}

func TestRedactingHandler_MasksWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewRedactingHandler(slog.NewTextHandler(&buf, nil))
	log := NewSlogLogger(slog.New(h)).With("token", "tok_secret")

	log.Error(context.Background(), "request failed")

	out := buf.String()
	if strings.Contains(out, "tok_secret") {
		t.Fatalf("raw token leaked into log output:\n%s", out)
	}
	if !strings.Contains(out, "token="+redactedValue) {
		t.Fatalf("expected masked token attribute in output:\n%s", out)
	}
}

func TestRedactingHandler_MasksInsideGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewRedactingHandler(slog.NewTextHandler(&buf, nil))
	l := slog.New(h)

	l.Info("connecting", slog.Group("remote", slog.String("credential", "s3cret"), slog.String("host", "api")))

	out := buf.String()
	if strings.Contains(out, "s3cret") {
		t.Fatalf("raw credential leaked inside group:\n%s", out)
	}
	if !strings.Contains(out, "remote.host=api") {
		t.Fatalf("expected group sibling attribute untouched:\n%s", out)
	}
}
