package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gradus-nz/gradus/internal/catalog"
)

func newCareersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "careers [field]",
		Short: "List career ideas for one field or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}

			fields := cfg.Tables.Fields()
			if len(args) == 1 {
				f, ok := cfg.Tables.LookupField(args[0])
				if !ok {
					return fmt.Errorf("unknown field %q", args[0])
				}
				fields = []catalog.Field{f}
			}

			out := cmd.OutOrStdout()
			for i, f := range fields {
				if len(fields) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "%s:\n", f)
				}
				titles, _ := cfg.Tables.CareersFor(f)
				for _, title := range titles {
					fmt.Fprintf(out, "• %s\n", title)
				}
			}
			return nil
		},
	}
}
