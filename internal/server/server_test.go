package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Picsou993/Projet-Immersion-Bien-Ici/pkg/hotspot"
)

const roomScene = `{
	"boundingBox": {"min": {"x": -2, "y": 0, "z": -2}, "max": {"x": 2, "y": 3, "z": 2}},
	"object": {
		"name": "Room",
		"children": [
			{"uuid": "wall", "name": "Wall", "userData": {"blocking": true},
			 "boundingBox": {"min": {"x": -2, "y": 0, "z": 0}, "max": {"x": 2, "y": 3, "z": 1}}}
		]
	}
}`

func newTestServer(t *testing.T, tour string) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tour.yaml"), []byte(tour), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.json"), []byte(roomScene), 0o644))
	return New(dir, 0), dir
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tour Planner")
}

func TestSpec(t *testing.T) {
	s, _ := newTestServer(t, "planner:\n  max_cameras: 2\n")
	rec := do(t, s, http.MethodGet, "/api/spec")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Spec struct {
			Scene   string `json:"scene"`
			Planner struct {
				MaxCameras int `json:"max_cameras"`
			} `json:"planner"`
		} `json:"spec"`
		Validation struct {
			Valid bool `json:"valid"`
		} `json:"validation"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "scene.json", body.Spec.Scene)
	assert.Equal(t, 2, body.Spec.Planner.MaxCameras)
	assert.True(t, body.Validation.Valid)
}

func TestEndpointsNeedPlan(t *testing.T) {
	s, _ := newTestServer(t, "")
	for _, target := range []string{"/api/hotspots", "/api/coverage", "/api/grid", "/api/grid/view", "/api/candidates/0/0"} {
		rec := do(t, s, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestPlanMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/plan")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPlanThenInspect(t *testing.T) {
	s, dir := newTestServer(t, "planner:\n  max_cameras: 1\n")

	rec := do(t, s, http.MethodPost, "/api/plan?write=true")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var plan struct {
		RunID    string           `json:"run_id"`
		Hotspots []hotspot.Record `json:"hotspots"`
	}
	decode(t, rec, &plan)
	assert.NotEmpty(t, plan.RunID)
	require.Len(t, plan.Hotspots, 1)

	written, err := hotspot.ReadFile(filepath.Join(dir, "hotspots.json"))
	require.NoError(t, err)
	assert.Equal(t, plan.Hotspots, written)

	rec = do(t, s, http.MethodGet, "/api/hotspots")
	require.Equal(t, http.StatusOK, rec.Code)
	var hs []hotspot.Record
	decode(t, rec, &hs)
	assert.Equal(t, plan.Hotspots, hs)

	rec = do(t, s, http.MethodGet, "/api/grid?base=true")
	require.Equal(t, http.StatusOK, rec.Code)
	var g gridView
	decode(t, rec, &g)
	assert.Equal(t, gridView{XSize: 4, ZSize: 4, Rows: []string{"..#.", "..#.", "..#.", "..#."}}, g)

	rec = do(t, s, http.MethodGet, "/api/grid")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &g)
	assert.Equal(t, 1, strings.Count(strings.Join(g.Rows, ""), "C"))

	rec = do(t, s, http.MethodGet, "/api/grid?step=3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/coverage")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"coverage_ratio"`)

	rec = do(t, s, http.MethodGet, "/api/grid/view")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = do(t, s, http.MethodGet, "/api/grid/view?format=png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestCandidate(t *testing.T) {
	s, _ := newTestServer(t, "planner:\n  max_cameras: 1\n")
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/plan").Code)

	rec := do(t, s, http.MethodGet, "/api/candidates/0/3")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Visited int   `json:"visited"`
		Gains   []int `json:"gains"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 3, body.Visited)
	assert.Equal(t, []int{3}, body.Gains)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/candidates/0/2").Code, "blocked cell")
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/candidates/9/9").Code, "out of bounds")
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/candidates/a/b").Code)
}

func TestPlanBadQuery(t *testing.T) {
	s, _ := newTestServer(t, "")
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/plan?max_cameras=x").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/api/plan?precision=x").Code)
}

func TestPlanGridTooLarge(t *testing.T) {
	s, _ := newTestServer(t, "planner:\n  max_cells: 100\n")
	rec := do(t, s, http.MethodPost, "/api/plan?precision=0.01")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "grid too large")
}

func TestPlanInvalidProject(t *testing.T) {
	s, _ := newTestServer(t, "planner:\n  precision: -2\n")
	rec := do(t, s, http.MethodPost, "/api/plan")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validation"`)
}
