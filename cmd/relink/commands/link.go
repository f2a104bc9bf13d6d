package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/relink/internal/core/domain"
)

func (c *CLI) newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Assemble an image and write the module catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			result, err := c.app.Link(cmd.Context(), configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range result.Modules {
				state := "unchanged"
				if m.Changed {
					state = "changed"
				}
				_, _ = fmt.Fprintf(out, "%s\t%d lines\t%s\n", m.Name, m.Lines, state)
			}
			_, _ = fmt.Fprintf(out, "image %s (%s) %s\n", result.Output, result.Platform, result.Digest)
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", domain.ConfigFileName, "Path to the link configuration or its directory")
	return cmd
}
