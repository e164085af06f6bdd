package trace

import (
	"math"
	"testing"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

const tolerance = 1e-5

func vec2Near(a, b geom.Vec2, tol float64) bool {
	for i := 0; i < 2; i++ {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func vec3Near(a, b geom.Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func vec4Near(a, b geom.Vec4, tol float64) bool {
	for i := 0; i < 4; i++ {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func TestFresnelSchlickNormalIncidence(t *testing.T) {
	specular := geom.Vec3{0.04, 0.04, 0.04}
	normal := geom.Vec3{0, 0, 1}
	outgoing := geom.Vec3{0, 0, 1}

	got := FresnelSchlick(specular, normal, outgoing)
	if !vec3Near(got, specular, tolerance) {
		t.Errorf("Expected %v at normal incidence, got %v", specular, got)
	}
}

func TestFresnelSchlickGrazing(t *testing.T) {
	specular := geom.Vec3{0.04, 0.04, 0.04}
	normal := geom.Vec3{0, 0, 1}
	outgoing := geom.Vec3{1, 0, 0}

	got := FresnelSchlick(specular, normal, outgoing)
	expected := geom.Vec3{1, 1, 1}
	if !vec3Near(got, expected, tolerance) {
		t.Errorf("Expected %v at grazing incidence, got %v", expected, got)
	}
}

func TestFresnelSchlickZeroSpecular(t *testing.T) {
	got := FresnelSchlick(geom.Vec3{}, geom.Vec3{0, 0, 1}, geom.Vec3{1, 0, 0})
	if got != (geom.Vec3{}) {
		t.Errorf("Expected zero reflectivity to stay zero, got %v", got)
	}
}

func TestReflectivityToEta(t *testing.T) {
	// 4% reflectivity corresponds to glass at eta 1.5
	got := ReflectivityToEta(geom.Vec3{0.04, 0.04, 0.04})
	expected := geom.Vec3{1.5, 1.5, 1.5}
	if !vec3Near(got, expected, 1e-4) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestReflectivityToEtaClampsNearOne(t *testing.T) {
	got := ReflectivityToEta(geom.Vec3{1, 1, 1})
	for i := 0; i < 3; i++ {
		if math.IsInf(float64(got[i]), 0) || math.IsNaN(float64(got[i])) {
			t.Fatalf("Expected clamped eta to stay finite, got %v", got)
		}
	}
}

func TestMicrofacetDistribution(t *testing.T) {
	normal := geom.Vec3{0, 0, 1}

	aligned := MicrofacetDistribution(0.1, normal, normal)
	if aligned <= 0 {
		t.Errorf("Expected positive density for aligned halfway, got %v", aligned)
	}

	tilted := MicrofacetDistribution(0.1, normal, geom.Vec3{0.5, 0, 0.8660254}.Normalize())
	if tilted >= aligned {
		t.Errorf("Expected density to fall off the normal, got %v >= %v", tilted, aligned)
	}

	backfacing := MicrofacetDistribution(0.1, normal, geom.Vec3{0, 0, -1})
	if backfacing != 0 {
		t.Errorf("Expected zero density for backfacing halfway, got %v", backfacing)
	}
}

func TestMicrofacetShadowing(t *testing.T) {
	normal := geom.Vec3{0, 0, 1}
	halfway := geom.Vec3{0, 0, 1}
	outgoing := geom.Vec3{0, 0, 1}
	incoming := geom.Vec3{0.5, 0, 0.8660254}.Normalize()

	got := MicrofacetShadowing(0.2, normal, halfway, outgoing, incoming)
	if got <= 0 || got > 1 {
		t.Errorf("Expected shadowing in (0, 1], got %v", got)
	}

	below := MicrofacetShadowing(0.2, normal, halfway, outgoing, geom.Vec3{0, 0, -1})
	if below != 0 {
		t.Errorf("Expected zero shadowing below the surface, got %v", below)
	}
}
