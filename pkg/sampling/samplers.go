package sampling

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// SampleHemisphere draws a uniform direction on the hemisphere around
// the given normal. The matching pdf is 1/(2 pi), folded into caller
// weights.
func SampleHemisphere(ruv geom.Vec2, normal geom.Vec3) geom.Vec3 {
	z := ruv[1]
	r := math32.Sqrt(geom.Clamp(1-z*z, 0, 1))
	phi := 2 * math32.Pi * ruv[0]
	local := geom.Vec3{r * math32.Cos(phi), r * math32.Sin(phi), z}
	return geom.BasisFromZ(normal).TransformDirection(local)
}

// SampleSphere draws a uniform direction on the unit sphere.
func SampleSphere(ruv geom.Vec2) geom.Vec3 {
	z := 2*ruv[1] - 1
	r := math32.Sqrt(geom.Clamp(1-z*z, 0, 1))
	phi := 2 * math32.Pi * ruv[0]
	return geom.Vec3{r * math32.Cos(phi), r * math32.Sin(phi), z}
}
