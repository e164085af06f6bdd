// Package scene provides the built-in scenes. Each preset constructs a
// complete trace.Scene from procedural geometry and textures, so the
// renderer can be exercised without any scene files on disk.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// ErrUnknownScene is returned when a preset name has no builder.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Info describes a preset for listings and the web API.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type preset struct {
	info  Info
	build func() *trace.Scene
}

var presets = map[string]preset{
	"cornell": {
		info: Info{
			Name:        "cornell",
			DisplayName: "Cornell Box",
			Description: "Classic Cornell box with a metal and a glass sphere",
		},
		build: NewCornellScene,
	},
	"materials": {
		info: Info{
			Name:        "materials",
			DisplayName: "Materials",
			Description: "Row of spheres covering every material model",
		},
		build: NewMaterialsScene,
	},
	"shapes": {
		info: Info{
			Name:        "shapes",
			DisplayName: "Shapes",
			Description: "Triangle, line and point geometry side by side",
		},
		build: NewShapesScene,
	},
	"instances": {
		info: Info{
			Name:        "instances",
			DisplayName: "Instance Grid",
			Description: "Grid of instances sharing a single sphere shape",
		},
		build: NewInstancesScene,
	},
	"environment": {
		info: Info{
			Name:        "environment",
			DisplayName: "Environment",
			Description: "Spheres lit by a sky environment map only",
		},
		build: NewEnvironmentScene,
	},
}

// Build constructs the named preset.
func Build(name string) (*trace.Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return p.build(), nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns preset metadata sorted by name.
func List() []Info {
	infos := make([]Info, 0, len(presets))
	for _, name := range Names() {
		infos = append(infos, presets[name].info)
	}
	return infos
}
