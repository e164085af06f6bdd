package color

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// SRGBToRGB inverts the sRGB transfer curve for one channel.
func SRGBToRGB(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return math32.Pow((srgb+0.055)/1.055, 2.4)
}

// RGBToSRGB applies the sRGB transfer curve to one channel.
func RGBToSRGB(rgb float32) float32 {
	if rgb <= 0.0031308 {
		return rgb * 12.92
	}
	return 1.055*math32.Pow(rgb, 1/2.4) - 0.055
}

// SRGBToRGBVec converts the color channels, leaving alpha linear.
func SRGBToRGBVec(c geom.Vec4) geom.Vec4 {
	return geom.Vec4{SRGBToRGB(c[0]), SRGBToRGB(c[1]), SRGBToRGB(c[2]), c[3]}
}

// ByteToFloat maps a byte channel to [0, 1].
func ByteToFloat(b uint8) float32 {
	return float32(b) / 255
}

// FloatToByte maps a [0, 1] channel to a byte, clamping out-of-range
// values.
func FloatToByte(f float32) uint8 {
	v := int(f * 256)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// ByteToFloatVec converts a byte pixel to float channels.
func ByteToFloatVec(c [4]uint8) geom.Vec4 {
	return geom.Vec4{ByteToFloat(c[0]), ByteToFloat(c[1]), ByteToFloat(c[2]), ByteToFloat(c[3])}
}

// FloatToByteVec converts float channels to a byte pixel.
func FloatToByteVec(c geom.Vec4) [4]uint8 {
	return [4]uint8{FloatToByte(c[0]), FloatToByte(c[1]), FloatToByte(c[2]), FloatToByte(c[3])}
}

// Bias remaps [0, 1] keeping the endpoints fixed.
func Bias(a, bias float32) float32 {
	return a / ((1/bias-2)*(1-a) + 1)
}

// Gain applies a symmetric contrast curve around 0.5.
func Gain(a, gain float32) float32 {
	if a < 0.5 {
		return Bias(a*2, gain) / 2
	}
	return Bias(a*2-1, 1-gain)/2 + 0.5
}

// GainVec applies Gain per channel.
func GainVec(c geom.Vec3, gain float32) geom.Vec3 {
	return geom.Vec3{Gain(c[0], gain), Gain(c[1], gain), Gain(c[2], gain)}
}

// Smoothstep is the cubic hermite ramp between a and b.
func Smoothstep(a, b, u float32) float32 {
	t := geom.Clamp((u-a)/(b-a), 0, 1)
	return t * t * (3 - 2*t)
}

// Saturate scales the distance of each channel from the weighted grey
// value. 0.5 is the identity, 0 yields greyscale.
func Saturate(rgb geom.Vec3, saturation float32, weights geom.Vec3) geom.Vec3 {
	grey := weights.Dot(rgb)
	out := geom.Vec3{grey, grey, grey}.Add(rgb.Sub(geom.Vec3{grey, grey, grey}).Mul(saturation * 2))
	return MaxZero(out)
}

// MaxZero clamps negative channels to zero.
func MaxZero(c geom.Vec3) geom.Vec3 {
	return geom.MaxVec3(c, geom.Vec3{})
}
