package trace

import (
	"testing"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

func TestAddCameraDefaults(t *testing.T) {
	sc := NewScene()
	ci := sc.AddCamera()
	camera := sc.Cameras[ci]

	if camera.Lens != 0.050 {
		t.Errorf("Expected lens 0.050, got %v", camera.Lens)
	}
	if camera.Film != (geom.Vec2{0.036, 0.015}) {
		t.Errorf("Expected 35mm film, got %v", camera.Film)
	}
	if camera.Focus != 10000 {
		t.Errorf("Expected focus 10000, got %v", camera.Focus)
	}
	if camera.Frame.O != (geom.Vec3{}) {
		t.Errorf("Expected camera at the origin, got %v", camera.Frame.O)
	}
}

func TestCameraSetLens(t *testing.T) {
	camera := &Camera{}

	camera.SetLens(0.035, 2, 0.036)
	if !vec2Near(camera.Film, geom.Vec2{0.036, 0.018}, tolerance) {
		t.Errorf("Expected wide film {0.036 0.018}, got %v", camera.Film)
	}

	camera.SetLens(0.035, 0.5, 0.036)
	if !vec2Near(camera.Film, geom.Vec2{0.018, 0.036}, tolerance) {
		t.Errorf("Expected tall film {0.018 0.036}, got %v", camera.Film)
	}
	if camera.Lens != 0.035 {
		t.Errorf("Expected lens 0.035, got %v", camera.Lens)
	}
}

func TestAddMaterialDefaults(t *testing.T) {
	sc := NewScene()
	mi := sc.AddMaterial()
	material := sc.Materials[mi]

	if material.IOR != 1.5 {
		t.Errorf("Expected ior 1.5, got %v", material.IOR)
	}
	if material.Opacity != 1 {
		t.Errorf("Expected opacity 1, got %v", material.Opacity)
	}
	if !material.Thin {
		t.Error("Expected materials to default to thin")
	}

	slots := []int{
		material.EmissionTex, material.ColorTex, material.SpecularTex,
		material.RoughnessTex, material.MetallicTex, material.TransmissionTex,
		material.OpacityTex,
	}
	for i, slot := range slots {
		if slot != NoTexture {
			t.Errorf("Expected texture slot %d unbound, got %d", i, slot)
		}
	}
}

func TestAddReturnsIndices(t *testing.T) {
	sc := NewScene()
	if got := sc.AddShape(); got != 0 {
		t.Errorf("Expected first shape at 0, got %d", got)
	}
	if got := sc.AddShape(); got != 1 {
		t.Errorf("Expected second shape at 1, got %d", got)
	}
	if got := sc.AddInstance(); got != 0 {
		t.Errorf("Expected first instance at 0, got %d", got)
	}

	inst := sc.Instances[0]
	if inst.Frame.X != (geom.Vec3{1, 0, 0}) || inst.Frame.O != (geom.Vec3{}) {
		t.Errorf("Expected identity frame, got %+v", inst.Frame)
	}
}

func TestAddEnvironmentDefaults(t *testing.T) {
	sc := NewScene()
	ei := sc.AddEnvironment()
	env := sc.Environments[ei]

	if env.EmissionTex != NoTexture {
		t.Errorf("Expected unbound emission texture, got %d", env.EmissionTex)
	}
	if env.Emission != (geom.Vec3{}) {
		t.Errorf("Expected zero emission, got %v", env.Emission)
	}
}
