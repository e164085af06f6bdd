package trace

import (
	"context"
	"fmt"

	"github.com/ChiaraGiaca/cg-projects/log"
	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

var logger = log.New("trace")

// Params configures a render.
type Params struct {
	Camera     int
	Resolution int
	Shader     Shader
	Samples    int
	Bounces    int
	Clamp      float32
	Seed       uint64
	NoParallel bool
}

// DefaultParams returns the renderer defaults.
func DefaultParams() Params {
	return Params{
		Camera:     0,
		Resolution: 720,
		Shader:     ShaderRaytrace,
		Samples:    512,
		Bounces:    4,
		Clamp:      100,
		Seed:       961748941,
	}
}

// Renderer runs a shader over one scene camera, a sample per pixel per
// pass. It is safe to share across goroutines as long as the scene is
// not mutated while rendering.
type Renderer struct {
	scene  *Scene
	camera *Camera
	shader shaderFunc
	params Params
}

// NewRenderer validates the parameters against the scene and resolves
// the shader once up front.
func NewRenderer(scene *Scene, params Params) (*Renderer, error) {
	if params.Camera < 0 || params.Camera >= len(scene.Cameras) {
		return nil, fmt.Errorf("%w %d with %d cameras", ErrInvalidCamera, params.Camera, len(scene.Cameras))
	}
	shader, err := shaderByName(params.Shader)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		scene:  scene,
		camera: scene.Cameras[params.Camera],
		shader: shader,
		params: params,
	}, nil
}

// Params returns the parameters the renderer was built with.
func (r *Renderer) Params() Params {
	return r.params
}

// NewState allocates render buffers sized for this renderer's camera.
func (r *Renderer) NewState() *State {
	return NewState(r.camera, r.params)
}

// RenderSample advances pixel (i, j) by one sample, jittering the ray
// inside the pixel and folding the result into the running average.
// Non-finite shader output is dropped before accumulation, and bright
// outliers are scaled down to the luminance clamp.
func (r *Renderer) RenderSample(st *State, i, j int) {
	idx := j*st.Width + i
	rng := &st.RNGs[idx]

	puv := rng.Float2()
	uv := geom.Vec2{
		(float32(i) + puv[0]) / float32(st.Width),
		(float32(j) + puv[1]) / float32(st.Height),
	}
	shaded := r.shader(r.scene, EvalCamera(r.camera, uv), 0, rng, r.params)

	if !geom.IsFinite(shaded[0]) || !geom.IsFinite(shaded[1]) || !geom.IsFinite(shaded[2]) {
		for c := 0; c < 3; c++ {
			if !geom.IsFinite(shaded[c]) {
				shaded[c] = 0
			}
		}
		shaded[3] = 1
	}
	if m := shaded.Vec3().MaxComp(); m > r.params.Clamp {
		scale := r.params.Clamp / m
		shaded[0] *= scale
		shaded[1] *= scale
		shaded[2] *= scale
	}

	acc := st.Accumulation.At(i, j).Add(shaded)
	st.Accumulation.Set(i, j, acc)
	st.Samples[idx]++
	st.Render.Set(i, j, acc.Mul(1/float32(st.Samples[idx])))
}

// RenderSamples advances the whole image by one sample, row-parallel
// unless NoParallel is set. Samples per pixel depend only on the pixel
// stream, so both modes produce identical images.
func (r *Renderer) RenderSamples(st *State) {
	renderRow := func(j int) {
		for i := 0; i < st.Width; i++ {
			r.RenderSample(st, i, j)
		}
	}
	if r.params.NoParallel {
		for j := 0; j < st.Height; j++ {
			renderRow(j)
		}
	} else {
		parallelFor(st.Height, renderRow)
	}
}

// Render runs all passes and returns the final image. The optional
// progress callback fires before every pass and once at the end.
func (r *Renderer) Render(ctx context.Context, progress ProgressFunc) (*color.Image, error) {
	logger.Debugf("rendering %q shader, %d samples, %d bounces", r.params.Shader, r.params.Samples, r.params.Bounces)
	st := r.NewState()
	for s := 0; s < r.params.Samples; s++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress("render sample", s, r.params.Samples)
		}
		r.RenderSamples(st)
	}
	if progress != nil {
		progress("render sample", r.params.Samples, r.params.Samples)
	}
	return st.Render.Clone(), nil
}

// Pass is one completed sample pass over the whole image.
type Pass struct {
	Index int
	Total int
	Image *color.Image
}

// RenderProgressive renders on a background goroutine and streams a
// snapshot after every pass. The pass channel closes when rendering
// completes; the error channel reports cancellation.
func (r *Renderer) RenderProgressive(ctx context.Context) (<-chan Pass, <-chan error) {
	passes := make(chan Pass, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(passes)
		defer close(errs)

		st := r.NewState()
		for s := 0; s < r.params.Samples; s++ {
			if err := ctx.Err(); err != nil {
				errs <- err
				return
			}
			r.RenderSamples(st)
			select {
			case passes <- Pass{Index: s + 1, Total: r.params.Samples, Image: st.Render.Clone()}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()
	return passes, errs
}
