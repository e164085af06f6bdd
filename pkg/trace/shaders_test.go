package trace

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/sampling"
)

func TestShaderByName(t *testing.T) {
	for _, name := range ShaderNames() {
		if _, err := shaderByName(Shader(name)); err != nil {
			t.Errorf("Expected shader %q to resolve, got %v", name, err)
		}
	}

	_, err := shaderByName("glow")
	if !errors.Is(err, ErrUnknownShader) {
		t.Errorf("Expected ErrUnknownShader, got %v", err)
	}
}

func TestShadeNormal(t *testing.T) {
	sc := newTestScene()
	addTestQuad(sc, -2)
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeNormal(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0.5, 0.5, 1, 1}
	if !vec4Near(got, expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	miss := shadeNormal(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, 1}), 0, &rng, DefaultParams())
	if miss != (geom.Vec4{}) {
		t.Errorf("Expected zero on miss, got %v", miss)
	}
}

func TestShadeColor(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Color = geom.Vec3{0.2, 0.4, 0.6}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeColor(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0.2, 0.4, 0.6, 1}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestShadeTexcoordWraps(t *testing.T) {
	sc := newTestScene()
	addTestQuad(sc, -2)
	shape := sc.Shapes[0]
	shape.Texcoords = []geom.Vec2{{1.25, -0.5}, {1.25, -0.5}, {1.25, -0.5}, {1.25, -0.5}}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeTexcoord(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0.25, -0.5, 0, 1}
	if !vec4Near(got, expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestShadeEyelight(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Color = geom.Vec3{0.25, 0.5, 0.75}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeEyelight(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0.25, 0.5, 0.75, 1}
	if !vec4Near(got, expected, tolerance) {
		t.Errorf("Expected the full color head-on, got %v", got)
	}
}

func TestShadeRaytraceEnvironmentOnMiss(t *testing.T) {
	sc := newTestScene()
	ei := sc.AddEnvironment()
	sc.Environments[ei].Emission = geom.Vec3{1, 2, 3}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{1, 2, 3, 1}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestShadeRaytraceEmptySceneIsBlack(t *testing.T) {
	sc := newTestScene()
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0, 0, 0, 1}
	if got != expected {
		t.Errorf("Expected opaque black, got %v", got)
	}
}

func TestShadeRaytraceEmission(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Emission = geom.Vec3{3, 4, 5}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{3, 4, 5, 1}
	if got != expected {
		t.Errorf("Expected the emission, got %v", got)
	}
}

func TestShadeRaytraceBounceLimit(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Emission = geom.Vec3{3, 4, 5}
	mat.Color = geom.Vec3{1, 1, 1}
	ei := sc.AddEnvironment()
	sc.Environments[ei].Emission = geom.Vec3{1, 1, 1}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	params := DefaultParams()
	params.Bounces = 0
	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, params)
	expected := geom.Vec4{3, 4, 5, 1}
	if got != expected {
		t.Errorf("Expected emission only at the bounce limit, got %v", got)
	}
}

func TestShadeRaytraceMirror(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Color = geom.Vec3{1, 1, 1}
	mat.Metallic = 1
	ei := sc.AddEnvironment()
	sc.Environments[ei].Emission = geom.Vec3{2, 3, 4}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{2, 3, 4, 1}
	if !vec4Near(got, expected, tolerance) {
		t.Errorf("Expected the mirrored environment, got %v", got)
	}
}

func TestShadeRaytraceOpacityCutout(t *testing.T) {
	sc := newTestScene()
	front := addTestQuad(sc, -2)
	front.Opacity = 0
	back := addTestQuad(sc, -4)
	back.Emission = geom.Vec3{1, 2, 3}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	// cutouts pass through without consuming a bounce, so the emitter
	// behind stays visible even with no bounces at all
	params := DefaultParams()
	params.Bounces = 0
	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, params)
	expected := geom.Vec4{1, 2, 3, 1}
	if got != expected {
		t.Errorf("Expected to see through the cutout, got %v", got)
	}
}

func TestShadeRaytraceThinTransmission(t *testing.T) {
	sc := newTestScene()
	front := addTestQuad(sc, -2)
	front.Transmission = 1
	front.Color = geom.Vec3{1, 1, 1}
	back := addTestQuad(sc, -4)
	back.Emission = geom.Vec3{1, 2, 3}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{1, 2, 3, 1}
	if !vec4Near(got, expected, tolerance) {
		t.Errorf("Expected the emitter through the thin surface, got %v", got)
	}
}

func TestShadeRaytraceRefraction(t *testing.T) {
	sc := newTestScene()
	front := addTestQuad(sc, -2)
	front.Transmission = 1
	front.Thin = false
	front.Color = geom.Vec3{0.04, 0.04, 0.04}
	back := addTestQuad(sc, -4)
	back.Emission = geom.Vec3{1, 2, 3}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	// head-on refraction at eta 1.5 continues straight through,
	// tinted by the transmission color
	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0.04, 0.08, 0.12, 1}
	if !vec4Near(got, expected, 1e-4) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestShadeRaytraceMatteEstimator(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Color = geom.Vec3{0.5, 0.25, 0.125}
	ei := sc.AddEnvironment()
	sc.Environments[ei].Emission = geom.Vec3{1, 1, 1}
	sc.InitBVH(nil)

	params := DefaultParams()
	params.Bounces = 1
	rng := sampling.NewRNG(42, 54)
	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, params)

	// mirror the draws: one opacity coin, then the hemisphere sample
	mirror := sampling.NewRNG(42, 54)
	mirror.Float()
	normal := geom.Vec3{0, 0, 1}
	incoming := sampling.SampleHemisphere(mirror.Float2(), normal)
	sample := geom.Vec3{1, 1, 1}.Mul(normal.Dot(incoming))
	expected := mat.Color.Mul(1 / math32.Pi).Mul(2 * math32.Pi).MulVec(sample).Vec4(1)

	if !vec4Near(got, expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestShadeRaytraceMatteKeepsZeroChannels(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Color = geom.Vec3{0.5, 0, 0.5}
	ei := sc.AddEnvironment()
	sc.Environments[ei].Emission = geom.Vec3{1, 1, 1}
	sc.InitBVH(nil)

	params := DefaultParams()
	params.Bounces = 1
	rng := sampling.NewRNG(42, 54)
	got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, params)

	if got[1] != 0 {
		t.Errorf("Expected zero green from a magenta surface, got %v", got)
	}
	if got[0] <= 0 || got[2] <= 0 {
		t.Errorf("Expected positive red and blue, got %v", got)
	}
}

func TestShadeRaytraceRoughLobesStayFinite(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mat *Material)
	}{
		{"rough metal", func(mat *Material) {
			mat.Color = geom.Vec3{1, 0.8, 0.6}
			mat.Metallic = 1
			mat.Roughness = 0.3
		}},
		{"plastic", func(mat *Material) {
			mat.Color = geom.Vec3{0.5, 0.5, 0.5}
			mat.Specular = 1
			mat.Roughness = 0.5
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newTestScene()
			mat := addTestQuad(sc, -2)
			tt.setup(mat)
			ei := sc.AddEnvironment()
			sc.Environments[ei].Emission = geom.Vec3{1, 1, 1}
			sc.InitBVH(nil)

			params := DefaultParams()
			params.Bounces = 2
			rng := sampling.NewRNG(42, 54)
			got := shadeRaytrace(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, params)

			for c := 0; c < 3; c++ {
				if !geom.IsFinite(got[c]) || got[c] < 0 {
					t.Fatalf("Expected finite non-negative radiance, got %v", got)
				}
			}
			if got[3] != 1 {
				t.Errorf("Expected alpha 1, got %v", got[3])
			}
		})
	}
}

func TestShadeToonFaceOn(t *testing.T) {
	sc := newTestScene()
	mat := addTestQuad(sc, -2)
	mat.Color = geom.Vec3{1, 1, 1}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeToon(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{0.6769231, 0.6769231, 0.6769231, 1}
	if !vec4Near(got, expected, 1e-4) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestShadeToonBands(t *testing.T) {
	shadeWithNormal := func(n geom.Vec3) geom.Vec4 {
		sc := newTestScene()
		mat := addTestQuad(sc, -2)
		mat.Color = geom.Vec3{1, 1, 1}
		shape := sc.Shapes[0]
		shape.Normals = []geom.Vec3{n, n, n, n}
		sc.InitBVH(nil)
		rng := sampling.NewRNG(42, 54)
		return shadeToon(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	}

	// the middle band scales red and green differently
	banded := shadeWithNormal(geom.Vec3{0, 0.8, 0.6})
	if banded[0] <= banded[1] || banded[1] != banded[2] {
		t.Errorf("Expected the {0.6 0.5 0.5} band shape, got %v", banded)
	}

	// below every band a white material passes through unchanged
	flat := shadeWithNormal(geom.Vec3{0, 0.9539392, 0.3})
	expected := geom.Vec4{1, 1, 1, 1}
	if !vec4Near(flat, expected, tolerance) {
		t.Errorf("Expected %v below the bands, got %v", expected, flat)
	}
}

func TestShadeToonMiss(t *testing.T) {
	sc := newTestScene()
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeToon(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	if got != (geom.Vec4{}) {
		t.Errorf("Expected zero on miss, got %v", got)
	}
}

func TestShadeSnowCoverage(t *testing.T) {
	shadeWithSlope := func(n geom.Vec3, thin bool) geom.Vec4 {
		sc := newTestScene()
		mat := addTestQuad(sc, -2)
		mat.Color = geom.Vec3{0.5, 0, 0}
		mat.Thin = thin
		shape := sc.Shapes[0]
		shape.Normals = []geom.Vec3{n, n, n, n}
		ei := sc.AddEnvironment()
		sc.Environments[ei].Emission = geom.Vec3{1, 1, 1}
		sc.InitBVH(nil)

		params := DefaultParams()
		params.Bounces = 1
		rng := sampling.NewRNG(42, 54)
		return shadeSnow(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, params)
	}

	// facing the camera the surface stays bare, so the red material
	// reflects no green at all
	bare := shadeWithSlope(geom.Vec3{0, 0, 1}, false)
	if bare[1] != 0 {
		t.Errorf("Expected no snow on a camera-facing surface, got %v", bare)
	}
	if bare[0] <= 0 {
		t.Errorf("Expected the bare material to reflect red, got %v", bare)
	}

	// a mild upward slope falls in the coverage window and turns white
	dusted := shadeWithSlope(geom.Vec3{0, 0.4, 0.9165151}, false)
	if dusted[1] <= 0 {
		t.Errorf("Expected snow on a mild slope, got %v", dusted)
	}

	// thin shapes are covered whole regardless of slope
	snowball := shadeWithSlope(geom.Vec3{0, 0, 1}, true)
	if snowball[1] <= 0 {
		t.Errorf("Expected a thin shape to be covered, got %v", snowball)
	}
}

func TestShadeSnowMissReturnsEnvironment(t *testing.T) {
	sc := newTestScene()
	ei := sc.AddEnvironment()
	sc.Environments[ei].Emission = geom.Vec3{1, 2, 3}
	sc.InitBVH(nil)
	rng := sampling.NewRNG(42, 54)

	got := shadeSnow(sc, geom.NewRay(geom.Vec3{}, geom.Vec3{0, 0, -1}), 0, &rng, DefaultParams())
	expected := geom.Vec4{1, 2, 3, 1}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
