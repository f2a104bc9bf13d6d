package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <module>",
		Short: "List the resources of a module reconstructed from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, _ := cmd.Flags().GetString("image")

			entries, err := c.app.List(cmd.Context(), image, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				_, _ = fmt.Fprintf(out, "%-17s %s\n", e.Type, e.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("image", "i", ".", "Root directory of the installed image")
	return cmd
}
