package trace

import (
	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/color"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// EvalCamera returns the viewing ray through normalized image
// coordinates, with (0,0) at the top-left corner of the film.
func EvalCamera(camera *Camera, uv geom.Vec2) geom.Ray {
	q := geom.Vec3{
		camera.Film[0] * (0.5 - uv[0]),
		camera.Film[1] * (uv[1] - 0.5),
		camera.Lens,
	}
	d := q.Neg().Normalize()
	return geom.NewRay(
		camera.Frame.TransformPoint(geom.Vec3{}),
		camera.Frame.TransformDirection(d))
}

// EvalPosition returns the world-space position on an instance surface.
func (sc *Scene) EvalPosition(inst *Instance, element int, uv geom.Vec2) geom.Vec3 {
	return inst.Frame.TransformPoint(shapePosition(sc.Shapes[inst.Shape], element, uv))
}

// EvalNormal returns the world-space shading normal on an instance
// surface, falling back to the element normal when the shape carries no
// vertex normals.
func (sc *Scene) EvalNormal(inst *Instance, element int, uv geom.Vec2) geom.Vec3 {
	return inst.Frame.TransformDirection(shapeNormal(sc.Shapes[inst.Shape], element, uv))
}

// EvalTexcoord returns the interpolated texture coordinates on an
// instance surface, or the parametric uv when the shape has none.
func (sc *Scene) EvalTexcoord(inst *Instance, element int, uv geom.Vec2) geom.Vec2 {
	return shapeTexcoord(sc.Shapes[inst.Shape], element, uv)
}

// EvalElementNormal returns the world-space geometric normal of one
// element: the triangle plane normal, the line tangent, or +z for
// points.
func (sc *Scene) EvalElementNormal(inst *Instance, element int) geom.Vec3 {
	return inst.Frame.TransformDirection(shapeElementNormal(sc.Shapes[inst.Shape], element))
}

func shapePosition(shape *Shape, element int, uv geom.Vec2) geom.Vec3 {
	if len(shape.Positions) == 0 {
		return geom.Vec3{}
	}
	switch {
	case len(shape.Triangles) > 0:
		t := shape.Triangles[element]
		return geom.InterpolateTriangle(
			shape.Positions[t[0]], shape.Positions[t[1]], shape.Positions[t[2]], uv)
	case len(shape.Lines) > 0:
		l := shape.Lines[element]
		return geom.InterpolateLine(shape.Positions[l[0]], shape.Positions[l[1]], uv[0])
	case len(shape.Points) > 0:
		return shape.Positions[shape.Points[element]]
	}
	return geom.Vec3{}
}

func shapeNormal(shape *Shape, element int, uv geom.Vec2) geom.Vec3 {
	if len(shape.Normals) == 0 {
		return shapeElementNormal(shape, element)
	}
	switch {
	case len(shape.Triangles) > 0:
		t := shape.Triangles[element]
		return geom.InterpolateTriangle(
			shape.Normals[t[0]], shape.Normals[t[1]], shape.Normals[t[2]], uv).Normalize()
	case len(shape.Lines) > 0:
		l := shape.Lines[element]
		return geom.InterpolateLine(shape.Normals[l[0]], shape.Normals[l[1]], uv[0]).Normalize()
	case len(shape.Points) > 0:
		return shape.Normals[shape.Points[element]].Normalize()
	}
	return geom.Vec3{}
}

func shapeElementNormal(shape *Shape, element int) geom.Vec3 {
	switch {
	case len(shape.Triangles) > 0:
		t := shape.Triangles[element]
		return geom.TriangleNormal(
			shape.Positions[t[0]], shape.Positions[t[1]], shape.Positions[t[2]])
	case len(shape.Lines) > 0:
		l := shape.Lines[element]
		return geom.LineTangent(shape.Positions[l[0]], shape.Positions[l[1]])
	case len(shape.Points) > 0:
		return geom.Vec3{0, 0, 1}
	}
	return geom.Vec3{}
}

func shapeTexcoord(shape *Shape, element int, uv geom.Vec2) geom.Vec2 {
	if len(shape.Texcoords) == 0 {
		return uv
	}
	switch {
	case len(shape.Triangles) > 0:
		t := shape.Triangles[element]
		return geom.InterpolateTriangle2(
			shape.Texcoords[t[0]], shape.Texcoords[t[1]], shape.Texcoords[t[2]], uv)
	case len(shape.Lines) > 0:
		l := shape.Lines[element]
		return geom.InterpolateLine2(shape.Texcoords[l[0]], shape.Texcoords[l[1]], uv[0])
	case len(shape.Points) > 0:
		return shape.Texcoords[shape.Points[element]]
	}
	return geom.Vec2{}
}

// EvalTexture looks a texture up by scene index with bilinear filtering
// and tiled coordinates. An unbound or out-of-range index yields opaque
// white, so material channels multiply through unchanged.
func (sc *Scene) EvalTexture(texture int, uv geom.Vec2) geom.Vec4 {
	return sc.EvalTextureOpts(texture, uv, false, false, false)
}

// EvalTextureOpts is EvalTexture with explicit lookup behavior: byte
// pixels read as linear, nearest-neighbor filtering, and edge clamping
// instead of tiling.
func (sc *Scene) EvalTextureOpts(texture int, uv geom.Vec2, asLinear, noInterp, clampEdge bool) geom.Vec4 {
	if texture < 0 || texture >= len(sc.Textures) {
		return geom.Vec4{1, 1, 1, 1}
	}
	tex := sc.Textures[texture]

	var width, height int
	switch {
	case tex.HDR != nil:
		width, height = tex.HDR.Width, tex.HDR.Height
	case tex.LDR != nil:
		width, height = tex.LDR.Width, tex.LDR.Height
	}
	if width == 0 || height == 0 {
		return geom.Vec4{1, 1, 1, 1}
	}

	var s, t float32
	if clampEdge {
		s = geom.Clamp(uv[0], 0, 1) * float32(width)
		t = geom.Clamp(uv[1], 0, 1) * float32(height)
	} else {
		s = math32.Mod(uv[0], 1) * float32(width)
		if s < 0 {
			s += float32(width)
		}
		t = math32.Mod(uv[1], 1) * float32(height)
		if t < 0 {
			t += float32(height)
		}
	}

	i := clampIndex(int(s), width)
	j := clampIndex(int(t), height)
	ii := (i + 1) % width
	jj := (j + 1) % height
	u := s - float32(i)
	v := t - float32(j)

	if noInterp {
		return lookupTexture(tex, i, j, asLinear)
	}
	return lookupTexture(tex, i, j, asLinear).Mul((1 - u) * (1 - v)).
		Add(lookupTexture(tex, i, jj, asLinear).Mul((1 - u) * v)).
		Add(lookupTexture(tex, ii, j, asLinear).Mul(u * (1 - v))).
		Add(lookupTexture(tex, ii, jj, asLinear).Mul(u * v))
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i > size-1 {
		return size - 1
	}
	return i
}

func lookupTexture(tex *Texture, i, j int, asLinear bool) geom.Vec4 {
	switch {
	case tex.HDR != nil:
		return tex.HDR.At(i, j)
	case tex.LDR != nil:
		c := color.ByteToFloatVec(tex.LDR.At(i, j))
		if asLinear {
			return c
		}
		return color.SRGBToRGBVec(c)
	}
	return geom.Vec4{1, 1, 1, 1}
}

// EvalEnvironment sums the emission of all environments along a
// direction. Environment maps are stored in lat-long parameterization.
func (sc *Scene) EvalEnvironment(direction geom.Vec3) geom.Vec3 {
	var emission geom.Vec3
	for _, env := range sc.Environments {
		local := env.Frame.Inverse().TransformDirection(direction)
		texcoord := geom.Vec2{
			math32.Atan2(local[2], local[0]) / (2 * math32.Pi),
			math32.Acos(geom.Clamp(local[1], -1, 1)) / math32.Pi,
		}
		if texcoord[0] < 0 {
			texcoord[0] += 1
		}
		emission = emission.Add(
			env.Emission.MulVec(sc.EvalTexture(env.EmissionTex, texcoord).Vec3()))
	}
	return emission
}
