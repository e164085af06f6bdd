package trace

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/sampling"
)

// State carries the per-pixel accumulation of a progressive render.
// Render always holds the average of the samples taken so far, so it
// can be displayed or saved after any pass.
type State struct {
	Width  int
	Height int

	Render       *color.Image
	Accumulation *color.Image
	Samples      []int
	RNGs         []sampling.RNG
}

// NewState sizes the buffers so the longer image side matches the
// resolution and the other follows the camera film aspect, and seeds
// one generator per pixel on its own stream.
func NewState(camera *Camera, params Params) *State {
	var width, height int
	if camera.Film[0] > camera.Film[1] {
		width = params.Resolution
		height = int(math32.Round(float32(params.Resolution) * camera.Film[1] / camera.Film[0]))
	} else {
		width = int(math32.Round(float32(params.Resolution) * camera.Film[0] / camera.Film[1]))
		height = params.Resolution
	}

	st := &State{
		Width:        width,
		Height:       height,
		Render:       color.NewImage(width, height),
		Accumulation: color.NewImage(width, height),
		Samples:      make([]int, width*height),
		RNGs:         make([]sampling.RNG, width*height),
	}
	streams := sampling.NewRNG(1301081, 1)
	for i := range st.RNGs {
		st.RNGs[i] = sampling.NewRNG(params.Seed, uint64(streams.Uint32()%(1<<31))/2+1)
	}
	return st
}
