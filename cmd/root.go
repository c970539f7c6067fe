// Package cmd implements the lcalc command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/lcalc/config"
	"github.com/luthersystems/lcalc/eval"
	"github.com/luthersystems/lcalc/repl"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configFile string
	prompt     string
	editor     string
	history    string
	reader     string
	timing     bool
	trace      bool
	strict     bool
	maxStack   int
}

// NewRootCmd returns the lcalc command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "lcalc",
		Short: "A simple lambda calculus interpreter",
		Long: `lcalc evaluates a minimal lambda calculus with integers, the primitives
inc and dec, and global definitions.  Without a subcommand lcalc starts an
interactive session.

A form with no normal form, such as ((lambda (x) (x x)) (lambda (x) (x x))),
recurses until the process runs out of stack and crashes.  Set
--max-stack-height to report such forms as a stack-overflow error instead.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			ev, err := newEvaluator(c, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return repl.RunRepl(c, ev)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "",
		"Config file (default $HOME/"+config.DefaultFile+")")
	flags.StringVar(&opts.reader, "reader", config.ReaderRD,
		"Source reader, rd or parsec")
	flags.BoolVar(&opts.trace, "trace", false,
		"Trace closure applications and definitions to stderr")
	flags.BoolVar(&opts.strict, "strict", false,
		"Reject input following the first expression on a line")
	flags.IntVar(&opts.maxStack, "max-stack-height", 0,
		"Maximum nested closure applications (0 for no limit)")
	rootCmd.Flags().StringVar(&opts.prompt, "prompt", "> ",
		"Interactive prompt")
	rootCmd.Flags().StringVar(&opts.editor, "editor", config.EditorReadline,
		"Line editor, readline or liner")
	rootCmd.Flags().StringVar(&opts.history, "history", "",
		"File used to persist interactive history")
	rootCmd.Flags().BoolVar(&opts.timing, "timing", false,
		"Report evaluation time for each line")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newParseCmd(opts),
		newConfigCmd(opts),
	)
	return rootCmd
}

// Execute runs the lcalc command and exits the process on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies any flags set on cmd.  A
// missing default config file is not an error.
func (opts *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var c *config.Config
	var err error
	if opts.configFile != "" {
		c, err = config.Load(opts.configFile, false)
	} else if path, perr := config.DefaultPath(); perr == nil {
		c, err = config.Load(path, true)
	} else {
		c = config.Default()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("prompt") {
		c.Prompt = opts.prompt
	}
	if flags.Changed("editor") {
		c.Editor = opts.editor
	}
	if flags.Changed("history") {
		c.HistoryFile = opts.history
	}
	if flags.Changed("reader") {
		c.Reader = opts.reader
	}
	if flags.Changed("timing") {
		c.Timing = opts.timing
	}
	if flags.Changed("trace") {
		c.Trace = opts.trace
	}
	if flags.Changed("strict") {
		c.Strict = opts.strict
	}
	if flags.Changed("max-stack-height") {
		c.MaxStackHeight = opts.maxStack
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

func newEvaluator(c *config.Config, stderr io.Writer) (*eval.Evaluator, error) {
	configs := []eval.Config{
		eval.WithReaderName(c.Reader),
		eval.WithStrict(c.Strict),
		eval.WithStderr(stderr),
		eval.WithMaxStackHeight(c.MaxStackHeight),
	}
	if c.Trace {
		configs = append(configs, eval.WithTrace(nil))
	}
	return eval.New(configs...)
}
