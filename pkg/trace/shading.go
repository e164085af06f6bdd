package trace

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// FresnelSchlick approximates the Fresnel term for a surface with the
// given reflectivity at normal incidence. A zero reflectivity stays
// zero at every angle.
func FresnelSchlick(specular, normal, outgoing geom.Vec3) geom.Vec3 {
	if specular == (geom.Vec3{}) {
		return geom.Vec3{}
	}
	cosine := normal.Dot(outgoing)
	fall := math32.Pow(geom.Clamp(1-math32.Abs(cosine), 0, 1), 5)
	one := geom.Vec3{1, 1, 1}
	return specular.Add(one.Sub(specular).Mul(fall))
}

// ReflectivityToEta converts reflectivity at normal incidence to a
// relative index of refraction, per channel.
func ReflectivityToEta(reflectivity geom.Vec3) geom.Vec3 {
	r := reflectivity.Clamp(0, 0.99).Sqrt()
	return geom.Vec3{
		(1 + r[0]) / (1 - r[0]),
		(1 + r[1]) / (1 - r[1]),
		(1 + r[2]) / (1 - r[2]),
	}
}

// MicrofacetDistribution is the GGX normal distribution for a halfway
// vector. Roughness is the alpha parameter of the distribution.
func MicrofacetDistribution(roughness float32, normal, halfway geom.Vec3) float32 {
	cosine := normal.Dot(halfway)
	if cosine <= 0 {
		return 0
	}
	r2 := roughness * roughness
	c2 := cosine * cosine
	d := c2*r2 + 1 - c2
	return r2 / (math32.Pi * d * d)
}

// MicrofacetShadowing is the Smith shadowing-masking term matching the
// GGX distribution, split over the outgoing and incoming directions.
func MicrofacetShadowing(roughness float32, normal, halfway, outgoing, incoming geom.Vec3) float32 {
	return microfacetShadowing1(roughness, normal, halfway, outgoing) *
		microfacetShadowing1(roughness, normal, halfway, incoming)
}

func microfacetShadowing1(roughness float32, normal, halfway, direction geom.Vec3) float32 {
	cosine := normal.Dot(direction)
	cosineh := halfway.Dot(direction)
	if cosine*cosineh <= 0 {
		return 0
	}
	r2 := roughness * roughness
	c2 := cosine * cosine
	return 2 * math32.Abs(cosine) / (math32.Abs(cosine) + math32.Sqrt(c2-r2*c2+r2))
}
