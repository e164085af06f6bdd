package cmd

import (
	"context"
	"time"

	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/pkg/grade"
	"github.com/ChiaraGiaca/cg-projects/pkg/particle"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// Simulate runs a particle preset to its final frame and optionally
// renders that frame to a PNG.
func Simulate(ctx *cli.Context) error {
	setupLogging(ctx)

	params := particle.DefaultParams()
	params.Solver = particle.Solver(ctx.String("solver"))
	params.Frames = ctx.Int("frames")
	if v := ctx.Int("substeps"); v > 0 {
		params.Substeps = v
	}
	if v := ctx.Int("iterations"); v > 0 {
		params.Iterations = v
	}
	params.Seed = ctx.Uint64("seed")
	if w := ctx.String("wind"); w != "" {
		wind, err := parseVec3(w)
		if err != nil {
			return err
		}
		params.Wind = wind
	}

	name := ctx.String("scene")
	sim, err := particle.BuildPreset(name)
	if err != nil {
		return err
	}

	logger.Noticef("simulating %q with the %q solver, %d frames", name, params.Solver, params.Frames)
	start := time.Now()
	if err := sim.SimulateFrames(context.Background(), params, logProgress()); err != nil {
		return err
	}
	logger.Noticef("simulated %d frames in %s", params.Frames, time.Since(start).Round(time.Millisecond))

	if !ctx.Bool("render") {
		return nil
	}

	sc := scene.NewSimulationScene(sim)
	sc.InitBVH(logProgress())

	renderParams := trace.DefaultParams()
	renderParams.Resolution = ctx.Int("resolution")
	renderParams.Samples = ctx.Int("samples")
	r, err := trace.NewRenderer(sc, renderParams)
	if err != nil {
		return err
	}

	logger.Noticef("rendering the final frame, %d samples", renderParams.Samples)
	img, err := r.Render(context.Background(), logProgress())
	if err != nil {
		return err
	}
	graded := grade.Grade(img, grade.DefaultParams())

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(name, "simulate")
	}
	if err := savePNG(out, graded.RGBABytes()); err != nil {
		return err
	}
	logger.Noticef("wrote final frame to %s", out)
	return nil
}
