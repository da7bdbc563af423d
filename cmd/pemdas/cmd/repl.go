package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.creack.net/pemdas/internal/repl"
)

var replPlain bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive calculator",
	Long: `Read expressions interactively and print their values.

A terminal UI is used when standard input and output are terminals, a plain
line loop otherwise or with --plain.

Keys:
  Enter       evaluate
  Ctrl+L      clear the history
  Esc/Ctrl+C  quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		settings := repl.Settings{
			Calculator: calculator(),
			Format:     cfg.Output.Format,
			Prompt:     cfg.REPL.Prompt,
			Banner:     cfg.REPL.Banner,
			Verbose:    verbose,
		}
		return repl.Run(ctx, settings, replPlain || cfg.REPL.Plain)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replPlain, "plain", false, "use the line loop even on a terminal")
}
