package cmd

import (
	"fmt"
	"io"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/parser"
	"github.com/luthersystems/lcalc/scope"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var (
		parseExpression bool
		parseMarks      bool
	)
	parseCmd := &cobra.Command{
		Use:   "parse [flags] FILE...",
		Short: "Print resolved syntax trees",
		Long: `Parse lambda calculus forms and print each with every symbol annotated by
its resolved location: GLOBAL, VAR, or CLOSURE[i].  Nothing is evaluated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			reader, err := parser.NewReader(c.Reader)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sc := scope.NewGlobal()
			for _, src := range commandSources(args, parseExpression) {
				r, err := src.open()
				if err != nil {
					return err
				}
				nodes, err := reader.Read(src.name, r, sc)
				r.Close()
				if err != nil {
					return err
				}
				for _, node := range nodes {
					fmt.Fprintln(out, ast.Dump(node))
					if parseMarks {
						printMarks(out, node)
					}
				}
			}
			return nil
		},
	}

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false,
		"Interpret arguments as lambda calculus expressions")
	parseCmd.Flags().BoolVar(&parseMarks, "marks", false,
		"Report how each lambda parameter is referenced")
	return parseCmd
}

// printMarks writes one line for each lambda parameter in node.
func printMarks(w io.Writer, node ast.Node) {
	ast.Walk(node, func(n ast.Node) bool {
		fn, ok := n.(*ast.LambdaDef)
		if !ok {
			return true
		}
		b := fn.Scope.Param()
		var usage string
		switch {
		case b.UsedAsVar && b.Captured:
			usage = "var captured"
		case b.UsedAsVar:
			usage = "var"
		case b.Captured:
			usage = "captured"
		default:
			usage = "unused"
		}
		fmt.Fprintf(w, ";; %v %s\n", b, usage)
		return true
	})
}
