package trace

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/sampling"
)

// Shader selects the routine run for each camera ray.
type Shader string

// Selectable shaders. Raytrace is the full path tracer, toon and snow
// are stylized looks, the rest are debug views of surface attributes.
const (
	ShaderRaytrace Shader = "raytrace"
	ShaderEyelight Shader = "eyelight"
	ShaderNormal   Shader = "normal"
	ShaderTexcoord Shader = "texcoord"
	ShaderColor    Shader = "color"
	ShaderToon     Shader = "toon"
	ShaderSnow     Shader = "snow"
)

type shaderFunc func(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4

func shaderByName(shader Shader) (shaderFunc, error) {
	switch shader {
	case ShaderRaytrace:
		return shadeRaytrace, nil
	case ShaderEyelight:
		return shadeEyelight, nil
	case ShaderNormal:
		return shadeNormal, nil
	case ShaderTexcoord:
		return shadeTexcoord, nil
	case ShaderColor:
		return shadeColor, nil
	case ShaderToon:
		return shadeToon, nil
	case ShaderSnow:
		return shadeSnow, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownShader, string(shader))
	}
}

// ShaderNames lists the selectable shader names for CLIs and services.
func ShaderNames() []string {
	return []string{
		string(ShaderRaytrace),
		string(ShaderEyelight),
		string(ShaderNormal),
		string(ShaderTexcoord),
		string(ShaderColor),
		string(ShaderToon),
		string(ShaderSnow),
	}
}

// shadeRaytrace recursively traces a path, picking one continuation per
// bounce from the material: refraction or thin transmission, sharp or
// rough metal reflection, glossy plastic, or matte scattering. Rough
// lobes sample the hemisphere uniformly and weight by 2 pi.
func shadeRaytrace(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return sc.EvalEnvironment(ray.D).Vec4(1)
	}

	object := sc.Instances[isec.Instance]
	shape := sc.Shapes[object.Shape]
	material := sc.Materials[object.Material]

	position := sc.EvalPosition(object, isec.Element, isec.UV)
	normal := sc.EvalNormal(object, isec.Element, isec.UV)
	texcoord := sc.EvalTexcoord(object, isec.Element, isec.UV)
	outgoing := ray.D.Neg()

	// points and lines have no oriented surface, so align their normal
	// with the ray; backfacing triangle normals get flipped
	switch {
	case len(shape.Points) > 0:
		normal = outgoing
	case len(shape.Lines) > 0:
		normal = geom.Orthonormalize(outgoing, normal)
	case len(shape.Triangles) > 0:
		if outgoing.Dot(normal) < 0 {
			normal = normal.Neg()
		}
	}

	opacity := material.Opacity * sc.EvalTexture(material.OpacityTex, texcoord)[0]
	if rng.Float() > opacity {
		// pass through without consuming a bounce
		return shadeRaytrace(sc, geom.NewRay(position, ray.D), bounce, rng, params)
	}

	radiance := material.Emission
	if bounce >= params.Bounces {
		return radiance.Vec4(1)
	}

	col := material.Color.MulVec(sc.EvalTexture(material.ColorTex, texcoord).Vec3())
	transmission := material.Transmission * sc.EvalTexture(material.TransmissionTex, texcoord)[0]
	roughness := material.Roughness * sc.EvalTexture(material.RoughnessTex, texcoord)[0]
	metallic := material.Metallic * sc.EvalTexture(material.MetallicTex, texcoord)[0]
	specular := material.Specular * sc.EvalTexture(material.SpecularTex, texcoord)[0]

	dielectric := geom.Vec3{0.04, 0.04, 0.04}

	switch {
	case transmission != 0 && !material.Thin:
		// refractive dielectric: split between reflection and refraction
		if rng.Float() < FresnelSchlick(dielectric, normal, outgoing)[0] {
			incoming := geom.Reflect(outgoing, normal)
			radiance = radiance.Add(
				shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3())
		} else {
			incoming := geom.Refract(outgoing, normal, 1/ReflectivityToEta(col)[0])
			radiance = radiance.Add(col.MulVec(
				shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3()))
		}

	case transmission != 0:
		// thin dielectric: reflect or pass straight through
		if rng.Float() < FresnelSchlick(dielectric, normal, outgoing)[0] {
			incoming := geom.Reflect(outgoing, normal)
			radiance = radiance.Add(
				shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3())
		} else {
			radiance = radiance.Add(col.MulVec(
				shadeRaytrace(sc, geom.NewRay(position, ray.D), bounce+1, rng, params).Vec3()))
		}

	case metallic != 0 && roughness == 0:
		// polished metal: mirror reflection tinted by fresnel
		incoming := geom.Reflect(outgoing, normal)
		radiance = radiance.Add(FresnelSchlick(col, normal, outgoing).MulVec(
			shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3()))

	case metallic != 0:
		// rough metal: microfacet lobe around a sampled halfway vector
		roughness *= roughness
		incoming := sampling.SampleHemisphere(rng.Float2(), normal)
		halfway := outgoing.Add(incoming).Normalize()
		weight := FresnelSchlick(col, halfway, outgoing).Mul(
			MicrofacetDistribution(roughness, normal, halfway) *
				MicrofacetShadowing(roughness, normal, halfway, outgoing, incoming) /
				(4 * normal.Dot(outgoing) * normal.Dot(incoming)))
		sample := shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3().
			Mul(normal.Dot(incoming))
		radiance = radiance.Add(weight.Mul(2 * math32.Pi).MulVec(sample))

	case specular != 0:
		// plastic: matte base under a thin dielectric coat
		roughness *= roughness
		incoming := sampling.SampleHemisphere(rng.Float2(), normal)
		halfway := outgoing.Add(incoming).Normalize()
		fh := FresnelSchlick(dielectric, halfway, outgoing)[0]
		coat := fh * MicrofacetDistribution(roughness, normal, halfway) *
			MicrofacetShadowing(roughness, normal, halfway, outgoing, incoming) /
			(4 * normal.Dot(outgoing) * normal.Dot(incoming))
		brdf := col.Mul((1 - fh) / math32.Pi).Add(geom.Vec3{coat, coat, coat})
		sample := shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3()
		radiance = radiance.Add(brdf.Mul(2 * math32.Pi).MulVec(sample).Mul(normal.Dot(incoming)))

	default:
		// matte
		incoming := sampling.SampleHemisphere(rng.Float2(), normal)
		sample := shadeRaytrace(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3().
			Mul(normal.Dot(incoming))
		radiance = radiance.Add(col.Mul(1 / math32.Pi).Mul(2 * math32.Pi).MulVec(sample))
	}

	return radiance.Vec4(1)
}

// shadeEyelight lights surfaces as if the camera carried the light.
func shadeEyelight(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return geom.Vec4{}
	}
	object := sc.Instances[isec.Instance]
	material := sc.Materials[object.Material]
	normal := sc.EvalNormal(object, isec.Element, isec.UV)
	return material.Color.Mul(normal.Dot(ray.D.Neg())).Vec4(1)
}

// shadeNormal maps the shading normal to a color.
func shadeNormal(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return geom.Vec4{}
	}
	object := sc.Instances[isec.Instance]
	normal := sc.EvalNormal(object, isec.Element, isec.UV)
	return normal.Mul(0.5).Add(geom.Vec3{0.5, 0.5, 0.5}).Vec4(1)
}

// shadeTexcoord maps texture coordinates to the red and green channels,
// wrapped into [0,1).
func shadeTexcoord(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return geom.Vec4{}
	}
	object := sc.Instances[isec.Instance]
	texcoord := sc.EvalTexcoord(object, isec.Element, isec.UV)
	return geom.Vec4{math32.Mod(texcoord[0], 1), math32.Mod(texcoord[1], 1), 0, 1}
}

// shadeColor returns the flat material color.
func shadeColor(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return geom.Vec4{}
	}
	object := sc.Instances[isec.Instance]
	return sc.Materials[object.Material].Color.Vec4(1)
}

// shadeSnow covers upward-facing surfaces in a snow texture and shades
// the result as matte. Thin shapes get covered whole, which turns
// spheres marked thin into snowballs.
func shadeSnow(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return sc.EvalEnvironment(ray.D).Vec4(1)
	}

	object := sc.Instances[isec.Instance]
	material := sc.Materials[object.Material]
	texcoord := sc.EvalTexcoord(object, isec.Element, isec.UV)
	position := sc.EvalPosition(object, isec.Element, isec.UV)
	normal := sc.EvalNormal(object, isec.Element, isec.UV)

	radiance := material.Emission
	if bounce >= params.Bounces {
		return radiance.Vec4(1)
	}

	col := material.Color

	// snow amount from how much the surface faces up, remapped so
	// anything below the threshold stays bare
	const (
		bottom = 0.2
		top    = 1.0
		scale  = (bottom + 1 - top) + 1
	)
	spread := geom.Vec3{normal[1] - bottom, normal[1] - bottom, normal[1] - bottom}
	snow := color.Saturate(spread, 0, geom.Vec3{scale, scale, scale})[0]

	if snow <= 1 && snow >= 0.30 && !material.Thin {
		col = sc.EvalTexture(material.ColorTex, texcoord).Vec3()
	} else if material.Thin {
		col = sc.EvalTexture(material.ColorTex, texcoord).Vec3()
	}

	incoming := sampling.SampleHemisphere(rng.Float2(), normal)
	sample := shadeSnow(sc, geom.NewRay(position, incoming), bounce+1, rng, params).Vec3().
		Mul(normal.Dot(incoming))
	radiance = radiance.Add(col.Mul(1 / math32.Pi).Mul(2 * math32.Pi).MulVec(sample))
	return radiance.Vec4(1)
}

// shadeToon bands the facing ratio into discrete tones and pushes
// saturation and contrast for a cartoon look.
func shadeToon(sc *Scene, ray geom.Ray, bounce int, rng *sampling.RNG, params Params) geom.Vec4 {
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return geom.Vec4{}
	}

	object := sc.Instances[isec.Instance]
	material := sc.Materials[object.Material]
	normal := sc.EvalNormal(object, isec.Element, isec.UV)
	texcoord := sc.EvalTexcoord(object, isec.Element, isec.UV)
	col := material.Color.MulVec(sc.EvalTexture(material.ColorTex, texcoord).Vec3())

	intensity := math32.Max(0, ray.D.Neg().Dot(normal))
	switch {
	case intensity > 0.98:
		col = col.MulVec(geom.Vec3{0.8, 0.8, 0.8})
	case intensity > 0.75:
		col = col.MulVec(geom.Vec3{0.7, 0.7, 0.7})
	case intensity > 0.5:
		col = col.MulVec(geom.Vec3{0.6, 0.5, 0.5})
	}

	grey := (col[0] + col[1] + col[2]) / 3
	greys := geom.Vec3{grey, grey, grey}
	col = greys.Add(col.Sub(greys).Mul(0.75 * 2))
	col = col.MulVec(color.GainVec(col, 1-0.6))

	return col.Vec4(1)
}
