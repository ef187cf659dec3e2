// Package api exposes a simulation driver over HTTP: JSON control endpoints
// and a websocket feed of driver events.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/airdelay-sim/airdelay-sim/sim"
	"github.com/airdelay-sim/airdelay-sim/sim/airport"
)

// Server wires HTTP handlers to a driver and its event hub.
type Server struct {
	driver   *sim.Driver
	hub      *Hub
	upgrader websocket.Upgrader
}

// New constructs the HTTP router. The caller owns hub: it must subscribe
// hub.Publish to the driver and run it.
func New(driver *sim.Driver, hub *Hub) http.Handler {
	s := &Server{
		driver: driver,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/airports", s.handleAirports)
	r.Get("/presets", s.handlePresets)
	r.Get("/ws", s.handleWS)

	r.Route("/sim", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/intensity", s.handleIntensity)
		r.Post("/run", s.handleRun)
		r.Post("/start", s.handleStart)
		r.Post("/pause", s.handlePause)
		r.Post("/stop", s.handleStop)
		r.Post("/speed", s.handleSpeed)
	})

	return r
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Catalog().Airports())
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Presets().List())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Snapshot())
}

// airportDelay is one entry of the delay-spread view.
type airportDelay struct {
	Code      string             `json:"code"`
	Lat       float64            `json:"lat"`
	Lng       float64            `json:"lng"`
	Intensity float64            `json:"intensity"`
	Level     airport.DelayLevel `json:"level"`
}

// handleIntensity lists every catalog airport with its current spread
// intensity. All entries are zero unless a run is in progress.
func (s *Server) handleIntensity(w http.ResponseWriter, r *http.Request) {
	snap := s.driver.Snapshot()
	airports := s.driver.Catalog().Airports()
	out := make([]airportDelay, 0, len(airports))
	for _, a := range airports {
		out = append(out, airportDelay{
			Code:      a.Code,
			Lat:       a.Lat,
			Lng:       a.Lng,
			Intensity: snap.Intensity.Of(a.Code),
			Level:     snap.Intensity.Level(a.Code),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   snap.Run.Status,
		"airports": out,
	})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var sc sim.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	run, err := s.driver.RunScenario(sc)
	if err != nil {
		writeDriverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if err := s.driver.Start(); err != nil {
		writeDriverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.driver.Snapshot())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if err := s.driver.Pause(); err != nil {
		writeDriverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.driver.Snapshot())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.driver.Stop()
	writeJSON(w, http.StatusOK, s.driver.Snapshot())
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := s.driver.SetSpeed(sim.Speed(req.Speed)); err != nil {
		writeDriverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.driver.Snapshot())
}

// snapshotMessage is the first message a websocket client receives.
type snapshotMessage struct {
	Type     string       `json:"type"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		logrus.Warnf("Websocket upgrade failed: %v", err)
		return
	}
	client := NewClient(s.hub, conn)
	payload, err := json.Marshal(snapshotMessage{Type: "snapshot", Snapshot: s.driver.Snapshot()})
	if err == nil {
		client.send <- payload
	}
	if !client.Register() {
		_ = conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}

// writeDriverError maps driver errors to status codes: invalid input is a
// 400, a request the current run state forbids is a 409.
func writeDriverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sim.ErrNoAirports),
		errors.Is(err, sim.ErrUnknownPreset),
		errors.Is(err, sim.ErrUnknownAirport),
		errors.Is(err, sim.ErrUnknownScenarioType),
		errors.Is(err, sim.ErrInvalidSpeed):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sim.ErrRunInProgress),
		errors.Is(err, sim.ErrNotRunning),
		errors.Is(err, sim.ErrRunCompleted):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		logrus.Errorf("Unhandled driver error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
