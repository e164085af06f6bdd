// Package trace implements a small path tracer over an in-memory scene
// of cameras, textures, shapes, materials, instances and environments.
// Entities live in flat arenas on the Scene and reference each other by
// index, which keeps instancing cheap and serialization trivial.
package trace

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/bvh"
	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// NoTexture marks a texture slot with no texture bound.
const NoTexture = -1

// Camera is a thin-lens camera. Film sizes are in meters, as on real
// cameras, so the default 0.036 x 0.015 film is a 35mm-style sensor.
type Camera struct {
	Frame    geom.Frame
	Lens     float32
	Film     geom.Vec2
	Focus    float32
	Aperture float32
}

// SetLens sets the lens and film from a focal length, an aspect ratio
// and a film diagonal-ish height, keeping the longer film side fixed.
func (c *Camera) SetLens(lens, aspect, film float32) {
	c.Lens = lens
	if aspect >= 1 {
		c.Film = geom.Vec2{film, film / aspect}
	} else {
		c.Film = geom.Vec2{film * aspect, film}
	}
}

// Texture holds either float or byte pixels. Byte pixels are stored
// sRGB encoded and decoded on lookup.
type Texture struct {
	HDR *color.Image
	LDR *color.ImageB
}

// Shape is an indexed mesh of points, lines or triangles. Exactly one
// of the element arrays should be populated. Radius applies to points
// and lines only.
type Shape struct {
	Points    []int
	Lines     [][2]int
	Triangles [][3]int

	Positions []geom.Vec3
	Normals   []geom.Vec3
	Texcoords []geom.Vec2
	Radius    []float32

	BVH *bvh.Tree
}

// Material follows a metallic-roughness parameterization. Every
// texture slot modulates its scalar or color and defaults to NoTexture.
type Material struct {
	Emission geom.Vec3
	Color    geom.Vec3

	Specular     float32
	Roughness    float32
	Metallic     float32
	IOR          float32
	Transmission float32
	Opacity      float32
	Thin         bool

	EmissionTex     int
	ColorTex        int
	SpecularTex     int
	RoughnessTex    int
	MetallicTex     int
	TransmissionTex int
	OpacityTex      int
}

// Instance places a shape with a material somewhere in the world.
type Instance struct {
	Frame    geom.Frame
	Shape    int
	Material int
}

// Environment is an infinitely distant emitter looked up by direction.
type Environment struct {
	Frame       geom.Frame
	Emission    geom.Vec3
	EmissionTex int
}

// Scene is the flat arena of everything the renderer works on.
type Scene struct {
	Cameras      []*Camera
	Textures     []*Texture
	Shapes       []*Shape
	Materials    []*Material
	Instances    []*Instance
	Environments []*Environment

	// BVH over instance bounds, built by InitBVH.
	BVH *bvh.Tree
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddCamera appends a defaulted camera and returns its index.
func (sc *Scene) AddCamera() int {
	sc.Cameras = append(sc.Cameras, &Camera{
		Frame: geom.IdentityFrame(),
		Lens:  0.050,
		Film:  geom.Vec2{0.036, 0.015},
		Focus: 10000,
	})
	return len(sc.Cameras) - 1
}

// AddTexture appends an empty texture and returns its index.
func (sc *Scene) AddTexture() int {
	sc.Textures = append(sc.Textures, &Texture{})
	return len(sc.Textures) - 1
}

// AddShape appends an empty shape and returns its index.
func (sc *Scene) AddShape() int {
	sc.Shapes = append(sc.Shapes, &Shape{})
	return len(sc.Shapes) - 1
}

// AddMaterial appends a defaulted material and returns its index.
func (sc *Scene) AddMaterial() int {
	sc.Materials = append(sc.Materials, &Material{
		IOR:     1.5,
		Opacity: 1,
		Thin:    true,

		EmissionTex:     NoTexture,
		ColorTex:        NoTexture,
		SpecularTex:     NoTexture,
		RoughnessTex:    NoTexture,
		MetallicTex:     NoTexture,
		TransmissionTex: NoTexture,
		OpacityTex:      NoTexture,
	})
	return len(sc.Materials) - 1
}

// AddInstance appends an identity instance of shape and material 0 and
// returns its index.
func (sc *Scene) AddInstance() int {
	sc.Instances = append(sc.Instances, &Instance{
		Frame: geom.IdentityFrame(),
	})
	return len(sc.Instances) - 1
}

// AddEnvironment appends a defaulted environment and returns its index.
func (sc *Scene) AddEnvironment() int {
	sc.Environments = append(sc.Environments, &Environment{
		Frame:       geom.IdentityFrame(),
		EmissionTex: NoTexture,
	})
	return len(sc.Environments) - 1
}
