package cmd

import (
	"context"
	"flag"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/etnz/peerfunds/server"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the upload and download web page" }
func (*serveCmd) Usage() string {
	return `pft serve [-addr <host:port>]

  Serves a web page to run compare, generate and missing on uploaded workbooks.
  Stops on interrupt.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failure("%v", err)
	}
	if !*Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.New(cfg, slog.Default()).Run(ctx, c.addr); err != nil {
		return failure("%v", err)
	}
	return subcommands.ExitSuccess
}
