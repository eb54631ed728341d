package visualization

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nvandessel/cooccur/internal/cooccur"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	opts := DefaultOptions()
	opts.Width, opts.Height = 320, 240
	srv := NewServer(testGraph(), cooccur.Criteria{Zoom: 1}, opts, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestServer_ServesHTML(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/html; charset=utf-8", ct)
	}
	if !strings.Contains(body, "<form") || !strings.Contains(body, `value="1"`) {
		t.Error("index should carry the selection form with the default zoom")
	}
}

func TestServer_GraphAPI(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query     string
		wantNodes int
	}{
		{"", 2},
		{"?zoom=0", 0},
		{"?zoom=100", 4},
		{"?names=bond,kerim,dog", 2},
		{"?zoom=2&names=", 3},
	}
	for _, tt := range tests {
		resp, body := get(t, ts.URL+"/api/graph"+tt.query)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d", tt.query, resp.StatusCode)
			continue
		}
		var v View
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			t.Fatalf("%s: decode: %v", tt.query, err)
		}
		if v.NodeCount != tt.wantNodes {
			t.Errorf("%s: NodeCount = %d, want %d", tt.query, v.NodeCount, tt.wantNodes)
		}
	}
}

func TestServer_BadZoom(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/api/graph?zoom=-1")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_GraphFiles(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		ctype  string
	}{
		{"/graph.dot", http.StatusOK, "text/vnd.graphviz; charset=utf-8"},
		{"/graph.png", http.StatusOK, "image/png"},
		{"/graph.adjlist", http.StatusOK, "text/plain; charset=utf-8"},
		{"/graph.svg", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		resp, _ := get(t, ts.URL+tt.path)
		if resp.StatusCode != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.path, resp.StatusCode, tt.status)
			continue
		}
		if tt.ctype != "" && resp.Header.Get("Content-Type") != tt.ctype {
			t.Errorf("%s: Content-Type = %q, want %q", tt.path, resp.Header.Get("Content-Type"), tt.ctype)
		}
	}
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts.URL+"/health")
	if body != `{"status":"ok"}` {
		t.Errorf("health = %q", body)
	}
}

func TestServer_CleanShutdown(t *testing.T) {
	srv := NewServer(testGraph(), cooccur.Criteria{Zoom: 1}, DefaultOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(ctx, "") }()

	waitForServer(t, srv, 2*time.Second)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("unexpected error on shutdown: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down within 3 seconds")
	}
}

// waitForServer polls the server until it's ready or the timeout is reached.
func waitForServer(t *testing.T, srv *Server, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		addr := srv.Addr()
		if addr == "" {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not start within timeout")
}

func TestSplitNames(t *testing.T) {
	got := SplitNames(" bond, ,tatiana,,kerim ")
	if strings.Join(got, "|") != "bond|tatiana|kerim" {
		t.Errorf("SplitNames = %q", got)
	}
	if SplitNames("") != nil {
		t.Error("SplitNames(\"\") should be nil")
	}
}
