package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quantum-harvest/internal/config"
	"quantum-harvest/internal/game"
)

// testRouter builds a router around a live engine with logging off and
// a permissive rate limit.
func testRouter(t *testing.T, reset bool) http.Handler {
	t.Helper()

	eng := game.NewEngine(config.DefaultGame())
	if reset {
		if _, _, err := eng.Reset(123); err != nil {
			t.Fatalf("reset: %v", err)
		}
	}

	return NewRouter(RouterConfig{
		Engine:         eng,
		DisableLogging: true,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
		},
	})
}

// TestHealthEndpoint verifies the liveness probe.
func TestHealthEndpoint(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, true))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

// TestStateEndpoint verifies the full state payload carries observation
// and info.
func TestStateEndpoint(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, true))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Observation *game.Observation `json:"observation"`
		Info        *game.Info        `json:"info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Observation == nil || len(body.Observation.Map) != 12 {
		t.Error("state payload missing the board")
	}
	if body.Info == nil || len(body.Info.Units) != 2 {
		t.Error("state payload missing units")
	}
}

// TestStateBeforeReset verifies the API degrades cleanly with no match.
func TestStateBeforeReset(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, false))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

// TestPlayerStateEndpoint verifies fogged per-player views and id
// validation.
func TestPlayerStateEndpoint(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, true))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state/player/0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var obs game.Observation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(obs.FogMaps) != 1 {
		t.Errorf("player view should carry one fog map, got %d", len(obs.FogMaps))
	}
	// At reset the enemy scout is hidden by fog.
	for _, row := range obs.Units {
		if row[1] == 1 {
			t.Errorf("enemy unit leaked: %v", row)
		}
	}

	for _, bad := range []string{"2", "-1", "x"} {
		resp, err := http.Get(ts.URL + "/api/state/player/" + bad)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", bad, resp.StatusCode)
		}
	}
}

// TestMatchSummaryEndpoint verifies the match header fields.
func TestMatchSummaryEndpoint(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, true))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/match")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["seed"].(float64) != 123 {
		t.Errorf("expected seed 123, got %v", body["seed"])
	}
	if body["terminated"].(bool) {
		t.Error("fresh match should not be terminated")
	}
	if _, ok := body["winner"]; ok {
		t.Error("winner should be absent while running")
	}
}

// TestMetricsEndpoint verifies the Prometheus scrape surface responds.
func TestMetricsEndpoint(t *testing.T) {
	ts := httptest.NewServer(testRouter(t, true))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

// TestRateLimitRejects verifies the limiter returns 429 once the burst
// is spent.
func TestRateLimitRejects(t *testing.T) {
	eng := game.NewEngine(config.DefaultGame())
	router := NewRouter(RouterConfig{
		Engine:         eng,
		DisableLogging: true,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
			CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
		},
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	saw429 := false
	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			saw429 = true
		}
	}
	if !saw429 {
		t.Error("expected at least one 429 past the burst")
	}
}
