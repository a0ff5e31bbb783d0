package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfolio/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve poster frames over HTTP",
	Long: `Serve poster frames over HTTP.

Endpoints:
  GET /healthz
  GET /modes
  GET /poster.png?mode=trails&w=1280&h=720&t=8&hue=200&pph=32&seed=3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if !cfg.Window.Debug {
			gin.SetMode(gin.ReleaseMode)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", cfg.Server.Addr)
		return server.New(cfg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
