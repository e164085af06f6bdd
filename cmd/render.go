package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/pkg/grade"
	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// Render builds the requested scene preset, renders it and writes the
// graded result as a PNG.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	params := trace.DefaultParams()
	params.Camera = ctx.Int("camera")
	params.Resolution = ctx.Int("resolution")
	params.Shader = trace.Shader(ctx.String("shader"))
	params.Samples = ctx.Int("samples")
	params.Bounces = ctx.Int("bounces")
	params.Clamp = float32(ctx.Float64("clamp"))
	params.Seed = ctx.Uint64("seed")
	params.NoParallel = ctx.Bool("noparallel")

	name := ctx.String("scene")
	sc, err := scene.Build(name)
	if err != nil {
		return err
	}

	logger.Noticef("building bvh for scene %q", name)
	sc.InitBVH(logProgress())

	r, err := trace.NewRenderer(sc, params)
	if err != nil {
		return err
	}

	logger.Noticef("rendering %q with the %q shader, %d samples", name, params.Shader, params.Samples)
	start := time.Now()
	img, err := r.Render(context.Background(), logProgress())
	if err != nil {
		return err
	}
	renderTime := time.Since(start)

	gradeParams := grade.DefaultParams()
	gradeParams.Exposure = float32(ctx.Float64("exposure"))
	gradeParams.Filmic = ctx.Bool("filmic")
	graded := grade.Grade(img, gradeParams)

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(name, "render")
	}
	if err := savePNG(out, graded.RGBABytes()); err != nil {
		return err
	}
	logger.Noticef("wrote render to %s", out)

	displayRenderStats(name, params, img.Width, img.Height, renderTime)
	return nil
}

func displayRenderStats(name string, params trace.Params, width, height int, renderTime time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Shader", "Size", "Samples", "Bounces", "Render time"})
	table.Append([]string{
		name,
		string(params.Shader),
		fmt.Sprintf("%dx%d", width, height),
		fmt.Sprintf("%d", params.Samples),
		fmt.Sprintf("%d", params.Bounces),
		renderTime.Round(time.Millisecond).String(),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
