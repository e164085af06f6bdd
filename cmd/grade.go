package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/grade"
)

// Grade loads a PNG, runs it through the grading chain and writes the
// result next to the input unless an output path is given.
func Grade(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing input image argument")
	}
	in := ctx.Args().First()

	img, err := loadPNG(in)
	if err != nil {
		return err
	}

	tint, err := parseVec3(ctx.String("tint"))
	if err != nil {
		return err
	}

	params := grade.DefaultParams()
	params.Exposure = float32(ctx.Float64("exposure"))
	params.Filmic = ctx.Bool("filmic")
	params.SRGB = !ctx.Bool("no-srgb")
	params.Tint = tint
	params.Saturation = float32(ctx.Float64("saturation"))
	params.Contrast = float32(ctx.Float64("contrast"))
	params.Vignette = float32(ctx.Float64("vignette"))
	params.Grain = float32(ctx.Float64("grain"))
	params.Mosaic = ctx.Int("mosaic")
	params.Grid = ctx.Int("grid")
	params.Sepia = ctx.Bool("sepia")

	logger.Noticef("grading %s (%dx%d)", in, img.Width, img.Height)
	graded := grade.Grade(img, params)

	out := ctx.String("out")
	if out == "" {
		out = gradedPath(in)
	}
	if err := savePNG(out, graded.RGBABytes()); err != nil {
		return err
	}
	logger.Noticef("wrote graded image to %s", out)
	return nil
}

// gradedPath derives the default output name from the input name.
func gradedPath(in string) string {
	if strings.HasSuffix(in, ".png") {
		return strings.TrimSuffix(in, ".png") + "_graded.png"
	}
	return in + "_graded.png"
}

// parseVec3 parses a comma separated color triple like "1,0.8,0.6".
func parseVec3(s string) (geom.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("expected three comma separated components, got %q", s)
	}

	var v geom.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("invalid component %q in %q", part, s)
		}
		v[i] = float32(f)
	}
	return v, nil
}
