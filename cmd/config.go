package cmd

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration lcalc would use as YAML, after reading the config
file and applying command line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.Encode(cmd.OutOrStdout())
		},
	}
}
