package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go.creack.net/pemdas"
	"go.creack.net/pemdas/internal/config"
)

var (
	cfgFile    string
	verbose    bool
	permissive bool
	precision  uint
	format     string

	// Loaded before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pemdas",
	Short: "Evaluate arithmetic expressions",
	Long: `pemdas evaluates arithmetic expressions made of numbers, the binary
operators + - * / ^ and parentheses.

  ^        exponent, right associative, binds tightest
  * /      multiply and divide, left associative
  + -      add and subtract, left associative

Settings are read from --config (TOML or YAML), then PEMDAS_* environment
variables, then flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log evaluation errors and connections")
	rootCmd.PersistentFlags().BoolVar(&permissive, "permissive", false, "skip unknown symbols instead of failing")
	rootCmd.PersistentFlags().UintVar(&precision, "precision", 0, "mantissa bits for arbitrary precision, 0 for float64")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "fmt verb for results (default \""+pemdas.DefaultFormat+"\")")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("permissive") {
		c.Lexer.Permissive = permissive
	}
	if flags.Changed("precision") {
		c.Eval.Precision = precision
	}
	if flags.Changed("format") {
		c.Output.Format = format
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	cfg = c
	return nil
}

func calculator() pemdas.Calculator {
	return pemdas.New(cfg.Options()...)
}
