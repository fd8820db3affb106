package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bundleplan/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stored plans and generated shims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath,
				Output:     all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove the build output directory")

	return cmd
}
