package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/cmd"
	"github.com/ChiaraGiaca/cg-projects/pkg/particle"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

func newApp() *cli.App {
	renderDefaults := trace.DefaultParams()
	simDefaults := particle.DefaultParams()

	app := cli.NewApp()
	app.Name = "cg"
	app.Usage = "path trace, grade and simulate scenes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a png",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: fmt.Sprintf("scene preset (%s)", strings.Join(scene.Names(), ", ")),
				},
				cli.IntFlag{
					Name:  "resolution, r",
					Value: renderDefaults.Resolution,
					Usage: "resolution of the longer image side",
				},
				cli.IntFlag{
					Name:  "samples",
					Value: renderDefaults.Samples,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "bounces",
					Value: renderDefaults.Bounces,
					Usage: "maximum path bounces",
				},
				cli.StringFlag{
					Name:  "shader",
					Value: string(renderDefaults.Shader),
					Usage: fmt.Sprintf("shader (%s)", strings.Join(trace.ShaderNames(), ", ")),
				},
				cli.IntFlag{
					Name:  "camera",
					Value: renderDefaults.Camera,
					Usage: "camera index",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Value: renderDefaults.Seed,
					Usage: "sampler seed",
				},
				cli.Float64Flag{
					Name:  "clamp",
					Value: float64(renderDefaults.Clamp),
					Usage: "luminance clamp for firefly suppression",
				},
				cli.BoolFlag{
					Name:  "noparallel",
					Usage: "render rows sequentially",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: 0,
					Usage: "exposure compensation in stops",
				},
				cli.BoolFlag{
					Name:  "filmic",
					Usage: "apply the filmic tone curve",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output png (default output/<scene>/render_<timestamp>.png)",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scene presets",
			Action: cmd.Scenes,
		},
		{
			Name:      "grade",
			Usage:     "apply the color grading chain to a png",
			ArgsUsage: "input.png",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "exposure",
					Value: 0,
					Usage: "exposure compensation in stops",
				},
				cli.BoolFlag{
					Name:  "filmic",
					Usage: "apply the filmic tone curve",
				},
				cli.BoolFlag{
					Name:  "no-srgb",
					Usage: "skip the srgb transfer curve",
				},
				cli.StringFlag{
					Name:  "tint",
					Value: "1,1,1",
					Usage: "color tint as r,g,b",
				},
				cli.Float64Flag{
					Name:  "saturation",
					Value: 0.5,
					Usage: "saturation, 0.5 leaves colors unchanged",
				},
				cli.Float64Flag{
					Name:  "contrast",
					Value: 0.5,
					Usage: "contrast, 0.5 leaves colors unchanged",
				},
				cli.Float64Flag{
					Name:  "vignette",
					Value: 0,
					Usage: "vignette strength",
				},
				cli.Float64Flag{
					Name:  "grain",
					Value: 0,
					Usage: "film grain strength",
				},
				cli.IntFlag{
					Name:  "mosaic",
					Value: 0,
					Usage: "mosaic block size in pixels",
				},
				cli.IntFlag{
					Name:  "grid",
					Value: 0,
					Usage: "grid spacing in pixels",
				},
				cli.BoolFlag{
					Name:  "sepia",
					Usage: "apply the sepia matrix",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output png (default <input>_graded.png)",
				},
			},
			Action: cmd.Grade,
		},
		{
			Name:  "simulate",
			Usage: "run a particle simulation preset",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cloth",
					Usage: fmt.Sprintf("simulation preset (%s)", strings.Join(particle.PresetNames(), ", ")),
				},
				cli.StringFlag{
					Name:  "solver",
					Value: string(simDefaults.Solver),
					Usage: fmt.Sprintf("solver (%s)", strings.Join(particle.SolverNames(), ", ")),
				},
				cli.IntFlag{
					Name:  "frames",
					Value: simDefaults.Frames,
					Usage: "frames to simulate",
				},
				cli.IntFlag{
					Name:  "substeps",
					Value: simDefaults.Substeps,
					Usage: "mass-spring substeps per frame",
				},
				cli.IntFlag{
					Name:  "iterations",
					Value: simDefaults.Iterations,
					Usage: "position-based constraint iterations",
				},
				cli.StringFlag{
					Name:  "wind",
					Usage: "wind acceleration as x,y,z, replaces gravity",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Value: simDefaults.Seed,
					Usage: "emission seed",
				},
				cli.BoolFlag{
					Name:  "render",
					Usage: "render the final frame to a png",
				},
				cli.IntFlag{
					Name:  "resolution, r",
					Value: renderDefaults.Resolution,
					Usage: "resolution of the rendered frame",
				},
				cli.IntFlag{
					Name:  "samples",
					Value: 128,
					Usage: "samples per pixel for the rendered frame",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output png (default output/<scene>/simulate_<timestamp>.png)",
				},
			},
			Action: cmd.Simulate,
		},
		{
			Name:  "serve",
			Usage: "serve the interactive web preview",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Value: 8080,
					Usage: "port to listen on",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
