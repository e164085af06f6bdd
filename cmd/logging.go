package cmd

import (
	"github.com/urfave/cli"

	"github.com/ChiaraGiaca/cg-projects/log"
)

var logger = log.New("cg")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// logProgress returns a progress callback that logs roughly every tenth
// step, so long renders stay readable at the info level.
func logProgress() func(message string, current, total int) {
	last := -1
	return func(message string, current, total int) {
		step := total / 10
		if step == 0 {
			step = 1
		}
		if current/step == last && current != total {
			return
		}
		last = current / step
		logger.Infof("%s: %d/%d", message, current, total)
	}
}
