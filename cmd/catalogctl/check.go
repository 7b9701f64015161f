package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report content entries that fell back to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			issues := c.Issues()
			for _, is := range issues {
				fmt.Fprintf(out, "%s/%s: %s\n", is.Group, is.Slug, is.Message)
			}
			fmt.Fprintf(out, "%d books, %d authors, %d events, %d issues\n",
				len(c.Books()), len(c.Authors()), len(c.Events()), len(issues))

			if strict && len(issues) > 0 {
				return fmt.Errorf("%d content issues", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any issue is found")
	return cmd
}
