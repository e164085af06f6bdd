package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

const tolerance = 1e-5

func vecNear(a, b Vec3) bool {
	return a.Sub(b).Len() < tolerance
}

func TestVec3_Ops(t *testing.T) {
	a := XYZ(1, 2, 3)
	b := XYZ(4, 5, 6)

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add: expected {5 7 9}, got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: expected {3 3 3}, got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: expected 32, got %v", got)
	}
	if got := a.MulVec(b); got != (Vec3{4, 10, 18}) {
		t.Errorf("MulVec: expected {4 10 18}, got %v", got)
	}
	if got := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0)); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross: expected {0 0 1}, got %v", got)
	}
	if got := XYZ(-1, 2, -3).Abs(); got != (Vec3{1, 2, 3}) {
		t.Errorf("Abs: expected {1 2 3}, got %v", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := XYZ(3, 0, 4)
	n := v.Normalize()
	if math32.Abs(n.Len()-1) > tolerance {
		t.Errorf("Expected unit length, got %v", n.Len())
	}
	if !vecNear(n, Vec3{0.6, 0, 0.8}) {
		t.Errorf("Expected {0.6 0 0.8}, got %v", n)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Zero vector should normalize to zero, got %v", zero)
	}
}

func TestReflect(t *testing.T) {
	// incoming along -x-y towards the surface, normal +y
	w := XYZ(1, 1, 0).Normalize()
	n := XYZ(0, 1, 0)
	r := Reflect(w, n)
	if !vecNear(r, XYZ(-1, 1, 0).Normalize()) {
		t.Errorf("Expected mirrored direction, got %v", r)
	}
}

func TestRefract(t *testing.T) {
	n := XYZ(0, 1, 0)

	// straight-on transmission keeps the direction
	w := XYZ(0, 1, 0)
	r := Refract(w, n, 1/1.5)
	if !vecNear(r, XYZ(0, -1, 0)) {
		t.Errorf("Expected straight transmission {0 -1 0}, got %v", r)
	}

	// grazing exit from a dense medium reflects internally
	w = XYZ(1, 0.1, 0).Normalize()
	r = Refract(w, n, 1.5)
	if r != (Vec3{}) {
		t.Errorf("Expected total internal reflection to return zero, got %v", r)
	}
}

func TestOrthonormalize(t *testing.T) {
	a := XYZ(1, 1, 0)
	b := XYZ(0, 1, 0)
	o := Orthonormalize(a, b)
	if math32.Abs(o.Dot(b)) > tolerance {
		t.Errorf("Expected orthogonal result, dot = %v", o.Dot(b))
	}
	if math32.Abs(o.Len()-1) > tolerance {
		t.Errorf("Expected unit result, length = %v", o.Len())
	}
}

func TestBasisFromZ(t *testing.T) {
	dirs := []Vec3{
		{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {0, 1, 0},
		XYZ(1, 2, 3).Normalize(), XYZ(-1, 0.5, -2).Normalize(),
	}
	for _, d := range dirs {
		f := BasisFromZ(d)
		if !vecNear(f.Z, d.Normalize()) {
			t.Errorf("Basis z should match input, got %v for %v", f.Z, d)
		}
		if math32.Abs(f.X.Dot(f.Y)) > tolerance ||
			math32.Abs(f.X.Dot(f.Z)) > tolerance ||
			math32.Abs(f.Y.Dot(f.Z)) > tolerance {
			t.Errorf("Basis for %v is not orthogonal", d)
		}
		if math32.Abs(f.X.Len()-1) > tolerance || math32.Abs(f.Y.Len()-1) > tolerance {
			t.Errorf("Basis for %v is not normalized", d)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Errorf("Expected 0.25, got %v", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("1.5 should be finite")
	}
	if IsFinite(math32.Inf(1)) {
		t.Error("+inf should not be finite")
	}
	if IsFinite(math32.NaN()) {
		t.Error("NaN should not be finite")
	}
}
