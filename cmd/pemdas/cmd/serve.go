package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go.creack.net/pemdas/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve evaluation over HTTP and websocket",
	Long: `Start the evaluation service.

Endpoints:
  POST /evaluate  {"expression": "2+5*9/3^2"}
  GET  /ws        one expression per text frame
  GET  /healthz   liveness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Config{
			Calculator:  calculator(),
			Format:      cfg.Output.Format,
			ReadTimeout: cfg.Server.ReadTimeout.Duration,
			Verbose:     verbose,
		})
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}
