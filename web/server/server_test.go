package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
)

func doRequest(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	New().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("Expected health body to report ok, got %q", rec.Body.String())
	}
}

func TestHandleIndex(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected an html content type, got %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "/api/render", "/api/scenes", "EventSource"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected index page to contain %q", want)
		}
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var infos []scene.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("Failed to decode scene list: %v", err)
	}
	if len(infos) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(infos))
	}
	found := false
	for _, info := range infos {
		if info.Name == "cornell" {
			found = true
		}
		if info.DisplayName == "" {
			t.Errorf("Expected a display name for scene %q", info.Name)
		}
	}
	if !found {
		t.Error("Expected the scene list to include cornell")
	}
}

func TestHandleSystem(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/system")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var info SystemInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to decode system info: %v", err)
	}
	if info.Cores <= 0 {
		t.Errorf("Expected a positive core count, got %d", info.Cores)
	}
	if info.Goroutines <= 0 {
		t.Errorf("Expected a positive goroutine count, got %d", info.Goroutines)
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(t, http.MethodOptions, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected preflight status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected allow origin *, got %q", got)
	}
}

func TestCORSOnGet(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/health")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected allow origin * on GET, got %q", got)
	}
}

func TestParseRenderRequest_Defaults(t *testing.T) {
	req, err := parseRenderRequest(url.Values{})
	if err != nil {
		t.Fatalf("Failed to parse empty request: %v", err)
	}
	if req.Scene != "cornell" {
		t.Errorf("Expected default scene cornell, got %q", req.Scene)
	}
	if req.Resolution != 360 {
		t.Errorf("Expected default resolution 360, got %d", req.Resolution)
	}
	if req.Samples != 32 {
		t.Errorf("Expected default samples 32, got %d", req.Samples)
	}
	if req.Shader != "raytrace" {
		t.Errorf("Expected default shader raytrace, got %q", req.Shader)
	}
}

func TestParseRenderRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"resolution too large", url.Values{"resolution": {"99999"}}},
		{"resolution not a number", url.Values{"resolution": {"wide"}}},
		{"samples zero", url.Values{"samples": {"0"}}},
		{"bounces too deep", url.Values{"bounces": {"50"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRenderRequest(tt.values); err == nil {
				t.Error("Expected a validation error, got nil")
			}
		})
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown scene", "/api/render?scene=no-such-scene"},
		{"invalid resolution", "/api/render?resolution=99999"},
		{"unknown shader", "/api/render?scene=cornell&shader=sketch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, http.MethodGet, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestHandleInspect_CenterRay(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/inspect?scene=cornell&u=0.5&v=0.5")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var hit InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hit); err != nil {
		t.Fatalf("Failed to decode inspect response: %v", err)
	}
	if !hit.Hit {
		t.Fatal("Expected the center ray to hit the cornell box")
	}
	if hit.Distance <= 0 {
		t.Errorf("Expected a positive hit distance, got %g", hit.Distance)
	}
	if hit.Instance < 0 || hit.Element < 0 {
		t.Errorf("Expected valid hit indices, got instance %d element %d", hit.Instance, hit.Element)
	}
	if hit.Normal == [3]float64{} {
		t.Error("Expected a nonzero hit normal")
	}
}

func TestHandleInspect_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown scene", "/api/inspect?scene=no-such-scene"},
		{"u out of range", "/api/inspect?u=2"},
		{"v not a number", "/api/inspect?v=middle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, http.MethodGet, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}
