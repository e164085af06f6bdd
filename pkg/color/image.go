// Package color provides the float and byte image containers shared by
// the renderer, the grading filter and the output path, together with
// transfer-curve and tonal helpers.
package color

import (
	"image"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// Image is a linear RGBA image with float32 channels.
type Image struct {
	Width  int
	Height int
	Pixels []geom.Vec4
}

// NewImage allocates a zeroed image.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]geom.Vec4, width*height)}
}

// At returns the pixel at column i, row j.
func (im *Image) At(i, j int) geom.Vec4 {
	return im.Pixels[j*im.Width+i]
}

// Set writes the pixel at column i, row j.
func (im *Image) Set(i, j int, c geom.Vec4) {
	im.Pixels[j*im.Width+i] = c
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := NewImage(im.Width, im.Height)
	copy(out.Pixels, im.Pixels)
	return out
}

// RGBA converts to a byte image for encoding, applying the sRGB transfer
// curve to the color channels. Alpha stays linear.
func (im *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for j := 0; j < im.Height; j++ {
		for i := 0; i < im.Width; i++ {
			c := im.At(i, j)
			o := out.PixOffset(i, j)
			out.Pix[o+0] = FloatToByte(RGBToSRGB(c[0]))
			out.Pix[o+1] = FloatToByte(RGBToSRGB(c[1]))
			out.Pix[o+2] = FloatToByte(RGBToSRGB(c[2]))
			out.Pix[o+3] = FloatToByte(c[3])
		}
	}
	return out
}

// RGBABytes converts without a transfer curve, for images that already
// hold display-ready values.
func (im *Image) RGBABytes() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.Width, im.Height))
	for j := 0; j < im.Height; j++ {
		for i := 0; i < im.Width; i++ {
			c := im.At(i, j)
			o := out.PixOffset(i, j)
			out.Pix[o+0] = FloatToByte(c[0])
			out.Pix[o+1] = FloatToByte(c[1])
			out.Pix[o+2] = FloatToByte(c[2])
			out.Pix[o+3] = FloatToByte(c[3])
		}
	}
	return out
}

// FromImage decodes a standard library image into linear float pixels,
// inverting the sRGB transfer curve.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	out := NewImage(b.Dx(), b.Dy())
	for j := 0; j < out.Height; j++ {
		for i := 0; i < out.Width; i++ {
			r, g, bl, a := src.At(b.Min.X+i, b.Min.Y+j).RGBA()
			out.Set(i, j, geom.Vec4{
				SRGBToRGB(float32(r) / 65535),
				SRGBToRGB(float32(g) / 65535),
				SRGBToRGB(float32(bl) / 65535),
				float32(a) / 65535,
			})
		}
	}
	return out
}

// ImageB is an RGBA image with 8 bit channels, sRGB encoded as textures
// are on disk.
type ImageB struct {
	Width  int
	Height int
	Pixels [][4]uint8
}

// NewImageB allocates a zeroed byte image.
func NewImageB(width, height int) *ImageB {
	return &ImageB{Width: width, Height: height, Pixels: make([][4]uint8, width*height)}
}

// At returns the pixel at column i, row j.
func (im *ImageB) At(i, j int) [4]uint8 {
	return im.Pixels[j*im.Width+i]
}

// Set writes the pixel at column i, row j.
func (im *ImageB) Set(i, j int, c [4]uint8) {
	im.Pixels[j*im.Width+i] = c
}
