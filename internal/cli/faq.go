package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFAQCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "faq",
		Short: "Show the questions FROST can answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range cfg.Tables.FAQEntries() {
				fmt.Fprintf(out, "Q: %s\nA: %s\n\n", e.Question, e.Answer)
			}
			return nil
		},
	}
}
