package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// InspectResponse describes the first surface under a viewing ray, for
// click-to-inspect in the preview page.
type InspectResponse struct {
	Hit      bool       `json:"hit"`
	Instance int        `json:"instance"`
	Element  int        `json:"element"`
	Distance float64    `json:"distance"`
	Position [3]float64 `json:"position"`
	Normal   [3]float64 `json:"normal"`
	Color    [3]float64 `json:"color"`
	Emission [3]float64 `json:"emission"`
}

// handleInspect casts a ray through normalized image coordinates u, v
// and reports what it hits.
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	name := values.Get("scene")
	if name == "" {
		name = "cornell"
	}
	u, err := parseFloatParam(values, "u", 0.5, 0, 1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v, err := parseFloatParam(values, "v", 0.5, 0, 1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sc, err := scene.Build(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sc.InitBVH(nil)

	ray := trace.EvalCamera(sc.Cameras[0], geom.Vec2{float32(u), float32(v)})
	isec := sc.IntersectScene(ray, false)
	if !isec.Hit {
		return c.JSON(http.StatusOK, InspectResponse{})
	}

	inst := sc.Instances[isec.Instance]
	mat := sc.Materials[inst.Material]

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:      true,
		Instance: isec.Instance,
		Element:  isec.Element,
		Distance: float64(isec.Distance),
		Position: vec3Array(sc.EvalPosition(inst, isec.Element, isec.UV)),
		Normal:   vec3Array(sc.EvalNormal(inst, isec.Element, isec.UV)),
		Color:    vec3Array(mat.Color),
		Emission: vec3Array(mat.Emission),
	})
}

func vec3Array(v geom.Vec3) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}
