package vision_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/perceptai/perceptai/internal/app/features/vision"
	"github.com/perceptai/perceptai/internal/app/system/runner"
	"go.uber.org/zap"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := runner.New(t.TempDir(), "", zap.NewNop())
	t.Cleanup(reg.StopAll)
	h := vision.NewHandler(reg, zap.NewNop())
	srv := httptest.NewServer(vision.Routes(h))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunUnknownScript(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/run/nonexistent", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/stop/idle", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRunningStartsEmpty(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/running")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out struct {
		Running []string `json:"running"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out.Running) != 0 {
		t.Errorf("running: got %v, want empty", out.Running)
	}
}
