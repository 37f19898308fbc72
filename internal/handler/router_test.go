package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	avatarModel "github.com/zhouzirui/avatar-smoke/internal/model/avatar"
	avatarService "github.com/zhouzirui/avatar-smoke/internal/service/avatar"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := avatarService.NewService(avatarService.Config{CacheTTL: time.Minute, HasAPIKey: true})
	srv := httptest.NewServer(NewRouter(avatarModel.NewMemoryVoiceStore(avatarModel.SeedVoices()), svc))
	t.Cleanup(srv.Close)
	return srv
}

func TestRootHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "Avatar Backend is running" {
		t.Fatalf("unexpected response: %d %q", resp.StatusCode, body)
	}
}

func TestRoutesRegistered(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/voices")
	if err != nil {
		t.Fatalf("GET /voices failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /voices, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/tts", "application/json", bytes.NewReader([]byte(`{"message":"hi"}`)))
	if err != nil {
		t.Fatalf("POST /tts failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /tts, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS header on /tts")
	}
}

func TestUnknownMethodRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/tts")
	if err != nil {
		t.Fatalf("GET /tts failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
