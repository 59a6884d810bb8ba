// Command coursemd converts a directory of course HTML pages into
// Markdown and builds weekly and course-wide summaries.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gaurav-prasanna/coursemd/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.Execute(ctx)
}
