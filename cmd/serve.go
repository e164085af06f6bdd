package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/web/server"
)

// Serve starts the web preview server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	addr := fmt.Sprintf(":%d", ctx.Int("port"))
	logger.Noticef("serving the web preview on http://localhost%s", addr)
	return server.New().Start(addr)
}
