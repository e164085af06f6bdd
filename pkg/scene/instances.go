package scene

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// oklchToRGB converts OKLCH color values to linear RGB.
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) geom.Vec3 {
	hRad := h * math32.Pi / 180

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS; the conversion is a simplified approximation but
	// good enough for picking pleasing sphere colors
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	rgb := geom.Vec3{
		+4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_,
		-1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_,
		-0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_,
	}
	return rgb.Clamp(0, 1)
}

// NewInstancesScene builds a grid of one hundred instances that all
// share a single sphere shape, alternating metal and matte materials
// through a rainbow of hues.
func NewInstancesScene() *trace.Scene {
	const gridSize = 10
	const spacing = 0.6

	sc := trace.NewScene()

	cam := sc.Cameras[sc.AddCamera()]
	eye, at := geom.Vec3{0, 3.6, 8.4}, geom.Vec3{0, 0.2, 0}
	cam.Frame = geom.LookAt(eye, at, geom.Vec3{0, 1, 0})
	cam.Focus = eye.Sub(at).Len()

	floorMat := sc.AddMaterial()
	sc.Materials[floorMat].Color = geom.Vec3{0.6, 0.6, 0.6}
	addInstance(sc, addFloor(sc, 30, 1), floorMat, geom.IdentityFrame())

	// the one shape every grid cell instances
	sphere := addUVSphere(sc, geom.Vec3{}, 0.25, 32)

	for j := 0; j < gridSize; j++ {
		for i := 0; i < gridSize; i++ {
			hue := 360 * float32(j*gridSize+i) / float32(gridSize*gridSize)
			mat := sc.AddMaterial()
			sc.Materials[mat].Color = oklchToRGB(0.7, 0.3, hue)
			if (i+j)%2 == 0 {
				sc.Materials[mat].Metallic = 1
				sc.Materials[mat].Roughness = 0.15
			}

			center := geom.Vec3{
				spacing * (float32(i) - float32(gridSize-1)/2),
				0.25,
				spacing * (float32(j) - float32(gridSize-1)/2),
			}
			addInstance(sc, sphere, mat, geom.Translation(center))
		}
	}

	lightMat := sc.AddMaterial()
	sc.Materials[lightMat].Emission = geom.Vec3{8, 8, 8}
	lamp := addQuad(sc, geom.Vec3{-2, 5, -2}, geom.Vec3{4, 0, 0}, geom.Vec3{0, 0, 4})
	addInstance(sc, lamp, lightMat, geom.IdentityFrame())

	env := sc.Environments[sc.AddEnvironment()]
	env.Emission = geom.Vec3{0.3, 0.3, 0.3}

	return sc
}
