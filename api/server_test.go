package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdelay-sim/airdelay-sim/sim"
)

type testEnv struct {
	driver *sim.Driver
	sched  *sim.ManualScheduler
	hub    *Hub
	srv    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	sched := sim.NewManualScheduler()
	d := sim.NewDriver(sim.DriverConfig{Scheduler: sched, Seed: 1})
	hub := NewHub()
	d.Subscribe(hub.Publish)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(New(d, hub))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		d.Close()
	})
	return &testEnv{driver: d, sched: sched, hub: hub, srv: srv}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, err := http.Get(env.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	req, _ := http.NewRequest(http.MethodOptions, env.srv.URL+"/sim/run", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.srv.URL + "/airports")
	require.NoError(t, err)
	var airports []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&airports))
	resp.Body.Close()
	assert.Len(t, airports, env.driver.Catalog().Len())

	resp, err = http.Get(env.srv.URL + "/presets")
	require.NoError(t, err)
	var presets []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&presets))
	resp.Body.Close()
	require.Len(t, presets, 4)
	assert.Equal(t, "weather-hub", presets[0]["id"])
}

func TestRun_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed body", `{`, http.StatusBadRequest},
		{"custom without airports", `{"type":"custom","airports":[],"severity":50,"duration":120}`, http.StatusBadRequest},
		{"unknown preset", `{"type":"preset","scenarioId":"volcano"}`, http.StatusBadRequest},
		{"unknown airport", `{"type":"custom","airports":["XYZ"],"severity":50}`, http.StatusBadRequest},
		{"unknown type", `{"type":"replay","airports":["JFK"]}`, http.StatusBadRequest},
		{"preset", `{"type":"preset","scenarioId":"multi-airport"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			code, body := env.do(t, http.MethodPost, "/sim/run", tt.body)
			assert.Equal(t, tt.want, code, "body: %v", body)
			if tt.want != http.StatusOK {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// GIVEN a custom run
	code, run := env.do(t, http.MethodPost, "/sim/run",
		`{"type":"custom","disruptionType":"weather","airports":["jfk"],"severity":80,"duration":180}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", run["status"])
	assert.Equal(t, []interface{}{"JFK"}, run["disrupted_airports"])

	// WHEN a second run is submitted
	code, _ = env.do(t, http.MethodPost, "/sim/run", `{"type":"preset","scenarioId":"weather-hub"}`)
	assert.Equal(t, http.StatusConflict, code)

	// WHEN time passes and the run is paused
	env.sched.Advance(10 * time.Second)
	code, snap := env.do(t, http.MethodPost, "/sim/pause", "")
	require.Equal(t, http.StatusOK, code)
	runView := snap["run"].(map[string]interface{})
	assert.Equal(t, "paused", runView["status"])
	assert.Equal(t, 10.0, runView["elapsed"])
	metrics := snap["metrics"].(map[string]interface{})
	assert.Equal(t, 57.0, metrics["flights_affected"])

	// AND paused again
	code, _ = env.do(t, http.MethodPost, "/sim/pause", "")
	assert.Equal(t, http.StatusConflict, code)

	// WHEN resumed and stopped
	code, _ = env.do(t, http.MethodPost, "/sim/start", "")
	assert.Equal(t, http.StatusOK, code)
	code, snap = env.do(t, http.MethodPost, "/sim/stop", "")
	require.Equal(t, http.StatusOK, code)
	runView = snap["run"].(map[string]interface{})
	assert.Equal(t, "ready", runView["status"])
	assert.Equal(t, 0.0, runView["elapsed"])
}

func TestStart_FromCompletedConflicts(t *testing.T) {
	env := newTestEnv(t)
	code, _ := env.do(t, http.MethodPost, "/sim/run", `{"type":"preset","scenarioId":"weather-hub"}`)
	require.Equal(t, http.StatusOK, code)
	env.sched.Advance(time.Minute)

	code, state := env.do(t, http.MethodGet, "/sim/state", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", state["run"].(map[string]interface{})["status"])
	require.NotNil(t, state["summary"])

	code, _ = env.do(t, http.MethodPost, "/sim/start", "")
	assert.Equal(t, http.StatusConflict, code)
}

func TestSpeed(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, http.MethodPost, "/sim/speed", `{"speed":3}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = env.do(t, http.MethodPost, "/sim/speed", `nope`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, snap := env.do(t, http.MethodPost, "/sim/speed", `{"speed":0.5}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.5, snap["run"].(map[string]interface{})["speed"])
}

func TestIntensity(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.do(t, http.MethodPost, "/sim/run", `{"type":"preset","scenarioId":"weather-hub"}`)
	env.sched.Advance(time.Second)

	code, body := env.do(t, http.MethodGet, "/sim/intensity", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", body["status"])

	levels := map[string]string{}
	for _, raw := range body["airports"].([]interface{}) {
		a := raw.(map[string]interface{})
		levels[a["code"].(string)] = a["level"].(string)
	}
	assert.Equal(t, "high", levels["JFK"])
	assert.Equal(t, "medium", levels["LGA"])
	assert.Equal(t, "none", levels["LAX"])
}

func TestWebsocketFeed(t *testing.T) {
	env := newTestEnv(t)
	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws"

	// GIVEN a connected websocket client
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	// THEN the first message is the current snapshot
	var first map[string]interface{}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first["type"])

	// WHEN a run starts and ticks once
	_, err = env.driver.RunScenario(sim.Scenario{Type: sim.ScenarioPreset, ScenarioID: "weather-hub"})
	require.NoError(t, err)
	env.sched.Advance(time.Second)

	// THEN the client sees the status change followed by the tick
	var types []string
	for len(types) < 2 {
		var ev map[string]interface{}
		require.NoError(t, conn.ReadJSON(&ev))
		types = append(types, ev["type"].(string))
	}
	assert.Equal(t, []string{"status", "tick"}, types)
}

func TestHub_ShutdownDisconnectsClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	require.True(t, c.Register())
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	cancel()
	<-done

	_, open := <-c.send
	assert.False(t, open, "send channel closed on shutdown")
	assert.Equal(t, 0, hub.ClientCount())
	assert.False(t, c.Register(), "register after shutdown is refused")
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	// GIVEN a hub whose loop is not running
	hub := NewHub()

	// WHEN far more events than the buffer are published
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 2*broadcastBuffer; i++ {
			hub.Publish(sim.Event{Type: sim.EventTick})
		}
		close(finished)
	}()

	// THEN Publish returns anyway
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
