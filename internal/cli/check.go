package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gradus-nz/gradus/internal/eligibility"
	"github.com/gradus-nz/gradus/internal/metrics"
)

var errInvalidScore = errors.New("enter a whole number")

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check <score> <course>",
		Short:   "Check whether a rank score meets a course threshold",
		Example: "  gradus check 250 Engineering",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			res, err := eligibility.NewChecker(cfg.Tables).Check(args[0], args[1])
			if err != nil {
				if errors.Is(err, eligibility.ErrUnknownCourse) {
					names := make([]string, 0, len(cfg.Tables.Courses))
					for _, f := range cfg.Tables.Fields() {
						names = append(names, string(f))
					}
					return fmt.Errorf("%w (choose one of: %s)", err, strings.Join(names, ", "))
				}
				return err
			}

			recorder := metrics.NewRecorder()
			recorder.EligibilityCheck(res.Kind.String())
			exportTextfile(cfg.Chat.MetricsTextfile, recorder, log)

			if res.Kind == eligibility.InvalidInput {
				return fmt.Errorf("%q: %w", args[0], errInvalidScore)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message())
			return nil
		},
	}
}
