package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/pkg/scene"
)

// Scenes lists the built-in scene presets.
func Scenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Scene", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.Name, info.DisplayName, info.Description})
	}

	table.Render()
	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
