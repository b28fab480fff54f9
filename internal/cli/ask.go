package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gradus-nz/gradus/internal/frost"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <message...>",
		Short:   "Ask FROST a single question",
		Example: `  gradus ask "My score is 300 for Engineering"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			reply, _ := frost.New(cfg.Tables).Reply(strings.Join(args, " "), frost.Memory{})
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
