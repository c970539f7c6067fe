package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/spf13/cobra"
)

// source is a named stream of forms given on the command line.
type source struct {
	name string
	open func() (io.ReadCloser, error)
}

// commandSources returns the sources named by args, either files or, when
// expression is true, the arguments themselves.
func commandSources(args []string, expression bool) []source {
	sources := make([]source, len(args))
	for i, arg := range args {
		arg := arg
		if expression {
			sources[i] = source{
				name: fmt.Sprintf("expr%d", i+1),
				open: func() (io.ReadCloser, error) {
					return io.NopCloser(strings.NewReader(arg)), nil
				},
			}
			continue
		}
		sources[i] = source{
			name: arg,
			open: func() (io.ReadCloser, error) { return os.Open(arg) },
		}
	}
	return sources
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		runExpression bool
		runPrint      bool
	)
	runCmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run lambda calculus programs",
		Long: `Run lambda calculus forms provided via the command line or files.  All
sources share one global environment and are evaluated in order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			ev, err := newEvaluator(c, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()
			for _, src := range commandSources(args, runExpression) {
				r, err := src.open()
				if err != nil {
					return err
				}
				err = ev.LoadFunc(src.name, r, func(_ ast.Node, v lisp.Atom) error {
					if runPrint {
						fmt.Fprintln(stdout, v)
					}
					return nil
				})
				r.Close()
				if err != nil {
					if c.Trace {
						ev.PrintStackTrace(err)
					}
					return err
				}
			}
			return nil
		},
	}

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lambda calculus expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	return runCmd
}
