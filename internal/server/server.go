package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/grid"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/inspect"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/placement"
	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/planner"
)

// Server is the local inspection server for a tour project.
type Server struct {
	projectPath string
	port        int
	router      *mux.Router

	mu   sync.Mutex
	plan *planner.Plan
}

// New creates a server for the given project directory.
func New(projectPath string, port int) *Server {
	s := &Server{
		projectPath: projectPath,
		port:        port,
		router:      mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/api/spec", s.handleSpec).Methods("GET")
	s.router.HandleFunc("/api/plan", s.handlePlan).Methods("POST")
	s.router.HandleFunc("/api/hotspots", s.handleHotspots).Methods("GET")
	s.router.HandleFunc("/api/coverage", s.handleCoverage).Methods("GET")
	s.router.HandleFunc("/api/grid", s.handleGrid).Methods("GET")
	s.router.HandleFunc("/api/grid/view", s.handleGridView).Methods("GET")
	s.router.HandleFunc("/api/candidates/{x}/{z}", s.handleCandidate).Methods("GET")
}

// Start serves until ctx is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("tourplanner server starting on http://localhost%s", srv.Addr)
		log.Printf("Project: %s", s.projectPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		return srv.Close()
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// current returns the cached plan, or writes 404 and returns nil.
func (s *Server) current(w http.ResponseWriter) *planner.Plan {
	s.mu.Lock()
	p := s.plan
	s.mu.Unlock()
	if p == nil || p.Result == nil {
		writeJSONError(w, http.StatusNotFound, "no plan yet: POST /api/plan first")
		return nil
	}
	return p
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Tour Planner</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Tour Planner</h1>
<p><code>POST /api/plan</code> runs the camera placement, then open
<a style="color:#8cf" href="/api/grid/view">the grid view</a>.</p>
</div>
</body></html>`)
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	p, err := planner.Load(s.projectPath, planner.Options{})
	if p == nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"spec":       p.Spec,
		"validation": p.Report,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var opts planner.Options
	if v := r.URL.Query().Get("max_cameras"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("max_cameras: %v", err))
			return
		}
		opts.MaxCameras = &n
	}
	if v := r.URL.Query().Get("precision"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("precision: %v", err))
			return
		}
		opts.Precision = f
	}

	p, err := planner.Run(r.Context(), s.projectPath, opts)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, planner.ErrInvalidProject), errors.Is(err, placement.ErrNoValidPlacement),
			errors.Is(err, grid.ErrDegenerateGrid), errors.Is(err, grid.ErrGridTooLarge):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		resp := map[string]any{"error": err.Error()}
		if p != nil {
			resp["validation"] = p.Report
		}
		writeJSON(w, status, resp)
		return
	}

	if r.URL.Query().Get("write") == "true" {
		if err := p.Write(); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.mu.Lock()
	s.plan = p
	s.mu.Unlock()
	log.Printf("plan %s: %d cameras, score %.4f in %v", p.Result.RunID, p.Result.Best.Cameras, p.Result.Score, p.Result.Elapsed)

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":     p.Result.RunID,
		"score":      p.Result.Score,
		"cameras":    p.Result.Best.Placed,
		"start":      p.Result.Best.Start,
		"coverage":   p.Coverage,
		"hotspots":   p.Hotspots,
		"validation": p.Report,
	})
}

func (s *Server) handleHotspots(w http.ResponseWriter, _ *http.Request) {
	if p := s.current(w); p != nil {
		writeJSON(w, http.StatusOK, p.Hotspots)
	}
}

func (s *Server) handleCoverage(w http.ResponseWriter, _ *http.Request) {
	if p := s.current(w); p != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"run_id":     p.Result.RunID,
			"coverage":   p.Coverage,
			"candidates": p.Result.Summaries,
			"validation": p.Report,
		})
	}
}

// gridView is the JSON form of a grid: one string of cell symbols per x row.
type gridView struct {
	XSize int      `json:"x_size"`
	ZSize int      `json:"z_size"`
	Rows  []string `json:"rows"`
}

func newGridView(g *grid.Grid) gridView {
	return gridView{
		XSize: g.XSize(),
		ZSize: g.ZSize(),
		Rows:  strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n"),
	}
}

// selectGrid picks the grid named by the "base" and "step" query parameters.
func selectGrid(p *planner.Plan, r *http.Request) (*grid.Grid, error) {
	q := r.URL.Query()
	if q.Get("base") == "true" {
		return p.Grid, nil
	}
	if v := q.Get("step"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n >= len(p.Result.Trace) {
			return nil, fmt.Errorf("step %q out of range [0, %d)", v, len(p.Result.Trace))
		}
		return p.Result.Trace[n].Grid, nil
	}
	return p.Result.Best.Grid, nil
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	p := s.current(w)
	if p == nil {
		return
	}
	g, err := selectGrid(p, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newGridView(g))
}

func (s *Server) handleGridView(w http.ResponseWriter, r *http.Request) {
	p := s.current(w)
	if p == nil {
		return
	}
	g, err := selectGrid(p, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	title := fmt.Sprintf("Run %s", p.Result.RunID)
	if r.URL.Query().Get("format") == "png" {
		w.Header().Set("Content-Type", "image/png")
		if err := inspect.WritePNG(w, g, title); err != nil {
			log.Printf("rendering png: %v", err)
		}
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := inspect.RenderHTML(w, g, title); err != nil {
		log.Printf("rendering chart: %v", err)
	}
}

func (s *Server) handleCandidate(w http.ResponseWriter, r *http.Request) {
	p := s.current(w)
	if p == nil {
		return
	}
	vars := mux.Vars(r)
	x, errX := strconv.Atoi(vars["x"])
	z, errZ := strconv.Atoi(vars["z"])
	if errX != nil || errZ != nil {
		writeJSONError(w, http.StatusBadRequest, "x and z must be integers")
		return
	}

	cand, trace, err := placement.Replay(p.Grid, grid.Pt(x, z), p.Config())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	gains := make([]int, len(trace))
	for i, snap := range trace {
		gains[i] = snap.Gained
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"start":   cand.Start,
		"visited": cand.Visited,
		"cameras": cand.Placed,
		"gains":   gains,
		"score":   cand.Score(p.Result.FreeCells),
		"grid":    newGridView(cand.Grid),
	})
}
