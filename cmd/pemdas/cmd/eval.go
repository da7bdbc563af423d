package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"go.creack.net/pemdas"
	"go.creack.net/pemdas/lexer"
	"go.creack.net/pemdas/parser"
)

var (
	evalAST    bool
	evalTokens bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an expression",
	Long: `Evaluate the expression given as arguments, joined with spaces. Without
arguments every line of standard input is evaluated on its own.

Examples:
  pemdas eval '2+5*9/3^2'
  pemdas eval --ast '2^3^2'
  echo '5*(9+3)' | pemdas eval`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().BoolVar(&evalAST, "ast", false, "print the syntax tree")
	evalCmd.Flags().BoolVar(&evalTokens, "tokens", false, "print the tokens")
}

func runEval(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if len(args) > 0 {
		if !evalLine(out, errOut, strings.Join(args, " ")) {
			return fmt.Errorf("evaluation failed")
		}
		return nil
	}

	total, failed := 0, 0
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		total++
		if !evalLine(out, errOut, line) {
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, total)
	}
	return nil
}

// evalLine prints the value of line, preceded by its tokens and tree when
// requested. It reports whether the evaluation succeeded.
func evalLine(out, errOut io.Writer, line string) bool {
	lexOpts := []lexer.Option{lexer.WithMode(lexerMode())}
	if evalTokens {
		for tok, err := range lexer.Tokens(line, lexOpts...) {
			if err != nil {
				break
			}
			fmt.Fprintln(out, tok)
		}
	}
	if evalAST {
		node, err := parser.ParseString(line,
			parser.WithLexerOptions(lexOpts...),
			parser.WithMaxDepth(cfg.Eval.MaxDepth),
		)
		if err == nil {
			fmt.Fprintln(out, node.Dump())
			pretty.Fprintf(out, "%# v\n", node)
		}
	}

	res, err := calculator().Eval(line)
	if err != nil {
		if verbose {
			log.Printf("Eval %q: %s.", line, err)
		}
		fmt.Fprintln(errOut, pemdas.Describe(line, err))
		return false
	}
	fmt.Fprintln(out, res.Format(cfg.Output.Format))
	return true
}

func lexerMode() lexer.Mode {
	if cfg.Lexer.Permissive {
		return lexer.Permissive
	}
	return lexer.Strict
}
