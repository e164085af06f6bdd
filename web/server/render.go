package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// RenderRequest holds the validated query parameters of a render call.
type RenderRequest struct {
	Scene      string
	Resolution int
	Samples    int
	Bounces    int
	Shader     string
	Seed       int
}

// PassUpdate is one SSE progress event: a completed sample pass over
// the whole image, encoded for an <img> tag.
type PassUpdate struct {
	Pass      int    `json:"pass"`
	Total     int    `json:"total"`
	ElapsedMs int64  `json:"elapsedMs"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"`
}

// handleRender validates the request, then streams one SSE event per
// completed pass until the render finishes or the client goes away.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sc, err := scene.Build(req.Scene)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	params := trace.DefaultParams()
	params.Resolution = req.Resolution
	params.Samples = req.Samples
	params.Bounces = req.Bounces
	params.Shader = trace.Shader(req.Shader)
	params.Seed = uint64(req.Seed)

	sc.InitBVH(nil)
	r, err := trace.NewRenderer(sc, params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	logger.Infof("render request: scene=%q shader=%q resolution=%d samples=%d",
		req.Scene, req.Shader, req.Resolution, req.Samples)

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	start := time.Now()
	passes, errs := r.RenderProgressive(ctx)

	for pass := range passes {
		imageData, err := imageToBase64PNG(pass.Image)
		if err != nil {
			writeSSE(w, "error", err.Error())
			return nil
		}
		update := PassUpdate{
			Pass:      pass.Index,
			Total:     pass.Total,
			ElapsedMs: time.Since(start).Milliseconds(),
			Width:     pass.Image.Width,
			Height:    pass.Image.Height,
			ImageData: imageData,
		}
		if err := writeSSEJSON(w, "pass", update); err != nil {
			// client went away mid stream
			return nil
		}
	}
	if err := <-errs; err != nil {
		writeSSE(w, "error", err.Error())
		return nil
	}

	logger.Infof("render finished in %s", time.Since(start).Round(time.Millisecond))
	return writeSSE(w, "complete", "render completed")
}

func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	defaults := trace.DefaultParams()

	req := &RenderRequest{
		Scene:  "cornell",
		Shader: string(defaults.Shader),
	}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	if shader := values.Get("shader"); shader != "" {
		req.Shader = shader
	}

	var err error
	if req.Resolution, err = parseIntParam(values, "resolution", 360, 16, 1280); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 32, 1, 1024); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(values, "bounces", defaults.Bounces, 1, 16); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(values, "seed", int(defaults.Seed), 1, 1<<31); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam reads an integer query parameter with a default and an
// inclusive validity range.
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, parsed)
	}
	return parsed, nil
}

// parseFloatParam reads a float query parameter with a default and an
// inclusive validity range.
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %g and %g, got %g", key, min, max, parsed)
	}
	return parsed, nil
}

// imageToBase64PNG encodes a linear image as a base64 PNG in display
// space.
func imageToBase64PNG(img *color.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.RGBA()); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeSSE(w *echo.Response, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func writeSSEJSON(w *echo.Response, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeSSE(w, event, string(data))
}
