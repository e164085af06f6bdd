package scene

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// srgbBytes packs a linear color into sRGB-encoded bytes with full alpha.
func srgbBytes(c geom.Vec3) [4]uint8 {
	return color.FloatToByteVec(geom.Vec4{
		color.RGBToSRGB(c[0]),
		color.RGBToSRGB(c[1]),
		color.RGBToSRGB(c[2]),
		1,
	})
}

// addCheckerTexture appends a square LDR checkerboard texture with
// checkSize pixel checks, alternating between two linear colors.
func addCheckerTexture(sc *trace.Scene, size, checkSize int, c0, c1 geom.Vec3) int {
	idx := sc.AddTexture()
	img := color.NewImageB(size, size)
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			c := c0
			if ((i/checkSize)+(j/checkSize))%2 == 1 {
				c = c1
			}
			img.Set(i, j, srgbBytes(c))
		}
	}
	sc.Textures[idx].LDR = img
	return idx
}

// addSkyTexture appends an HDR environment texture that blends from
// top at the zenith to bottom at the nadir through the elevation of
// the equirectangular mapping.
func addSkyTexture(sc *trace.Scene, width, height int, top, bottom geom.Vec3) int {
	idx := sc.AddTexture()
	img := color.NewImage(width, height)
	for j := 0; j < height; j++ {
		v := (float32(j) + 0.5) / float32(height)
		y := math32.Cos(math32.Pi * v)
		t := 0.5 * (y + 1)
		c := bottom.Mul(1 - t).Add(top.Mul(t))
		for i := 0; i < width; i++ {
			img.Set(i, j, c.Vec4(1))
		}
	}
	sc.Textures[idx].HDR = img
	return idx
}
