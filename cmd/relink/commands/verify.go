package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [modules...]",
		Short: "Check that every catalogued file of an image is installed",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			image, _ := cmd.Flags().GetString("image")

			report, err := c.app.Verify(cmd.Context(), image, args...)
			if report != nil {
				out := cmd.OutOrStdout()
				for _, m := range report.Modules {
					if m.Err != nil {
						_, _ = fmt.Fprintf(out, "FAIL\t%s\t%v\n", m.Name, m.Err)
						continue
					}
					_, _ = fmt.Fprintf(out, "ok\t%s\t%d resources\t%s\n", m.Name, m.Resources, m.Digest)
				}
			}
			return err
		},
	}
	cmd.Flags().StringP("image", "i", ".", "Root directory of the installed image")
	return cmd
}
