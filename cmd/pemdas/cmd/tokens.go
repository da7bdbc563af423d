package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.creack.net/pemdas"
	"go.creack.net/pemdas/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens expression",
	Short: "Print the tokens of an expression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, " ")
		for tok, err := range lexer.Tokens(input, lexer.WithMode(lexerMode())) {
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), pemdas.Describe(input, err))
				return fmt.Errorf("tokenize: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
