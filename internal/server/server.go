// Package server exposes a running settlement session over a local HTTP API
// for inspection and scripted input.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Yuminaga-Ten/Ease/pkg/config"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/render"
	"github.com/Yuminaga-Ten/Ease/pkg/script"
	"github.com/Yuminaga-Ten/Ease/pkg/session"
	"github.com/Yuminaga-Ten/Ease/pkg/validation"
)

// maxBody bounds POST bodies.
const maxBody = 1 << 20

// Server is the local inspector for one settlement session.
type Server struct {
	cfg  *config.Config
	port int

	mu     sync.Mutex
	sess   *session.Session
	canvas *render.Canvas
}

// New creates a server with a fresh session built from cfg.
func New(cfg *config.Config, port int) (*Server, error) {
	s := &Server{cfg: cfg, port: port}
	if err := s.reset(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// reset replaces the session with one built from cfg. Callers hold mu,
// except New.
func (s *Server) reset(cfg *config.Config) error {
	canvas := render.NewCanvas(grid.New(cfg.GridConfig()), render.DefaultOptions())
	sess, err := session.New(cfg, canvas)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	s.sess, s.canvas = sess, canvas
	return nil
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/map.png", s.handleMap)
	mux.HandleFunc("POST /api/input", s.handleInput)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("ease server starting", "url", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Ease</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;text-align:center">
<h1>Ease</h1>
<p><img src="/api/map.png" alt="settlement map"></p>
<p>POST a script to <code>/api/input</code> to drive the session.</p>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	g := s.sess.Scene()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	regions := s.sess.Grid.Regions()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, regions)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	r := validation.ValidateConfig(s.sess.Config())
	r.Merge(s.sess.Audit())
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, r)
}

// State is the controller summary returned by /api/state and /api/input.
type State struct {
	Ticks       int                 `json:"ticks"`
	Building    string              `json:"building"`
	RoadMode    string              `json:"road_mode,omitempty"`
	Roads       int                 `json:"roads"`
	Provisional int                 `json:"provisional"`
	Active      int                 `json:"active"`
	Visuals     int                 `json:"visuals"`
	Camera      session.CameraState `json:"camera"`
	Menu        session.MenuState   `json:"menu"`
	Replay      *script.Result      `json:"replay,omitempty"`
}

func (s *Server) state() State {
	st := State{
		Ticks:       s.sess.Ticks(),
		Building:    s.sess.Building.State().String(),
		Roads:       len(s.sess.Roads.Built()),
		Provisional: len(s.sess.Roads.Provisional()),
		Active:      s.sess.Connectivity.Len(),
		Visuals:     s.canvas.Len(),
		Camera:      *s.sess.Camera,
		Menu:        *s.sess.Menu,
	}
	if s.sess.Roads.InMode() {
		st.RoadMode = s.sess.Roads.Mode().String()
	}
	return st
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	st := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "image/png")
	if err := s.canvas.WritePNG(w); err != nil {
		slog.Warn("writing map", "err", err)
	}
}

// handleInput replays a script body (YAML or JSON) against the session. A
// script that sets explored regions starts from a fresh session, as replay
// does.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	sc, err := script.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	if len(sc.Explored) > 0 {
		cfg := sc.Configure(s.cfg)
		if report := validation.ValidateConfig(cfg); !report.Valid {
			s.mu.Unlock()
			writeJSON(w, http.StatusBadRequest, report)
			return
		}
		if err := s.reset(cfg); err != nil {
			s.mu.Unlock()
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	res := sc.Run(s.sess)
	st := s.state()
	s.mu.Unlock()

	st.Replay = &res
	slog.Info("input replayed", "steps", res.Steps, "ticks", res.Ticks)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reset(s.cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	slog.Info("session reset")
	writeJSON(w, http.StatusOK, s.state())
}
