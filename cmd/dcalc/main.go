package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/danielgtaylor/dcalc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// debugLogFile receives debug logs in interactive mode, where stderr belongs
// to the terminal UI.
const debugLogFile = "dcalc-debug.log"

type flags struct {
	precision    int
	maxDigits    int
	maxFactorial int64
	maxDepth     int
	tree         bool
	debug        bool
}

func (f *flags) options() []dcalc.Option {
	return []dcalc.Option{
		dcalc.Precision(f.precision),
		dcalc.MaxDigits(f.maxDigits),
		dcalc.MaxFactorial(f.maxFactorial),
		dcalc.MaxDepth(f.maxDepth),
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "dcalc [expression...]",
		Short: "Decimal calculator",
		Long: `Dcalc evaluates arithmetic expressions with fixed-precision decimal math.

Given arguments, they are joined into one expression which is evaluated and
printed. Without arguments an interactive calculator is started that updates
the result as you type.

Expressions starting with '-' must follow '--', e.g. dcalc -- -2^2`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(f)
			}
			logger := newLogger(cmd.ErrOrStderr(), f.debug)
			return evaluate(cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, strings.Join(args, " "), f)
		},
	}

	cmd.PersistentFlags().IntVar(&f.precision, "precision", dcalc.DefaultPrecision, "Fractional digits kept after each operation")
	cmd.PersistentFlags().IntVar(&f.maxDigits, "max-digits", dcalc.DefaultMaxDigits, "Maximum integer digits of any value")
	cmd.PersistentFlags().Int64Var(&f.maxFactorial, "max-factorial", dcalc.DefaultMaxFactorial, "Largest accepted factorial operand")
	cmd.PersistentFlags().IntVar(&f.maxDepth, "max-depth", dcalc.DefaultMaxDepth, "Maximum expression nesting depth")
	cmd.PersistentFlags().BoolVar(&f.tree, "tree", false, "Print the parsed expression tree before the result")
	cmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "Enable debug logging")
	return cmd
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// evaluate prints the result of a single expression.
func evaluate(out, errOut io.Writer, logger *slog.Logger, expr string, f *flags) error {
	opts := f.options()

	ast, err := dcalc.Parse(expr, opts...)
	if err != nil {
		return report(errOut, logger, expr, err)
	}
	logger.Debug("parsed", "expr", expr, "tree", ast.String())
	if f.tree {
		fmt.Fprintln(out, ast.String())
	}

	v, err := dcalc.Run(ast, opts...)
	if err != nil {
		return report(errOut, logger, expr, err)
	}
	fmt.Fprintln(out, v.String())
	return nil
}

// report shows an expression error in red with a pointer to the offending
// part of the input.
func report(errOut io.Writer, logger *slog.Logger, expr string, err dcalc.Error) error {
	logger.Debug("evaluation failed", "expr", expr, "kind", err.Kind().String(), "offset", err.Offset())
	fmt.Fprintln(errOut, color.RedString("Error: %s", err.Pretty(expr)))
	return fmt.Errorf("evaluate %q: %w", expr, err)
}

func runInteractive(f *flags) error {
	w := io.Discard
	if f.debug {
		file, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer file.Close()
		w = file
	}
	return runTUI(newModel(f.options(), newLogger(w, f.debug)))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exprErr dcalc.Error
		if !errors.As(err, &exprErr) {
			// Expression errors have already been printed with their location.
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}
