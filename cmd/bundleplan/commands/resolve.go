package commands

import "github.com/spf13/cobra"

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [modules...]",
		Short: "Print the build plan for the current environment",
		Long: "Resolve the build profile and the bundling policy of every declared dependency,\n" +
			"print the resulting plan and record it in the plan store.\n" +
			"Naming modules restricts the plan to them.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options(cmd, args)
			opts.Output, _ = cmd.Flags().GetString("output")

			_, err := c.app.Resolve(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringP("output", "o", "json", "Plan encoding: json or yaml")
	return cmd
}
