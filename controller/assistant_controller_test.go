package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mckart-backend/dao"
	"mckart-backend/model"
	"mckart-backend/usecase"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Converse(_ context.Context, _ string, _ []model.Turn) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestAssistantTurnSuccess(t *testing.T) {
	provider := &stubProvider{reply: "The library closes at 10pm."}
	srv := httptest.NewServer(newTestMux(dao.NewMemoryStore(), provider))
	defer srv.Close()

	body := `{"message":"when does the library close?","history":[{"sender":"user","text":"hi"},{"sender":"ai","text":"hello!"}]}`
	resp, err := http.Post(srv.URL+"/assistant/turn", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Reply != provider.reply {
		t.Fatalf("reply %q, want %q", out.Reply, provider.reply)
	}
}

func TestAssistantTurnMissingMessageIs400(t *testing.T) {
	provider := &stubProvider{reply: "hi"}
	srv := httptest.NewServer(newTestMux(dao.NewMemoryStore(), provider))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/assistant/turn", "application/json", strings.NewReader(`{"history":[]}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called for invalid request")
	}
}

func TestAssistantTurnUnconfiguredIs500WithKind(t *testing.T) {
	srv := httptest.NewServer(newTestMux(dao.NewMemoryStore(), nil))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/assistant/turn", "application/json", strings.NewReader(`{"message":"hello"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != "configuration_error" {
		t.Fatalf("kind %q, want configuration_error", out.Kind)
	}
	if strings.Contains(out.Error, "GEMINI") || strings.Contains(out.Error, "key") {
		t.Fatalf("error leaks credential detail: %q", out.Error)
	}
	if out.Reply != usecase.FallbackReply {
		t.Fatalf("missing canned fallback reply, got %q", out.Reply)
	}
}

func TestAssistantTurnUpstreamFailureIsGeneric(t *testing.T) {
	provider := &stubProvider{err: errUpstream{}}
	srv := httptest.NewServer(newTestMux(dao.NewMemoryStore(), provider))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/assistant/turn", "application/json", strings.NewReader(`{"message":"hello"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != "upstream_error" {
		t.Fatalf("kind %q, want upstream_error", out.Kind)
	}
	if strings.Contains(out.Error, "quota") {
		t.Fatalf("raw provider text reached the client: %q", out.Error)
	}
}

type errUpstream struct{}

func (errUpstream) Error() string { return "googleapi: Error 429: quota exceeded" }
