package commands

import (
	"github.com/spf13/cobra"
	"github.com/thautwarm/pmakefile/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List phony recipes with their documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), []string{app.HelpTarget})
		},
	}
}
