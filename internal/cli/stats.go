package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gradus-nz/gradus/internal/metrics"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show FROST session metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			return runStats(cmd.OutOrStdout(), cfg.Chat.MetricsPath, days, time.Now())
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days to include")
	return cmd
}

func runStats(out io.Writer, path string, days int, now time.Time) error {
	if days <= 0 {
		days = 7
	}

	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days+1)
	items, err := metrics.LoadSince(path, since)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(out, "📊 No sessions in the last %d days\n", days)
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Date == items[j].Date {
			return items[i].RecordedAt < items[j].RecordedAt
		}
		return items[i].Date < items[j].Date
	})

	total := aggregate(items)
	fmt.Fprintf(out, "📊 Last %d days (%s to %s)\n", days, since.Format("2006-01-02"), now.Format("2006-01-02"))
	fmt.Fprintf(out, "Sessions: %d\n", total.sessions)
	fmt.Fprintf(out, "Avg turns: %.2f\n", float64(total.turns)/float64(total.sessions))
	fmt.Fprintf(out, "Fallback rate: %.1f%%\n", safeRate(total.fallbacks, total.turns)*100)
	fmt.Fprintf(out, "Name captured: %.1f%%\n", safeRate(total.names, total.sessions)*100)
	fmt.Fprintf(out, "Field captured: %.1f%%\n", safeRate(total.fields, total.sessions)*100)

	fmt.Fprintln(out, "\nBy rule:")
	rules := make([]string, 0, len(total.ruleHits))
	for r := range total.ruleHits {
		rules = append(rules, r)
	}
	sort.Strings(rules)
	for _, r := range rules {
		fmt.Fprintf(out, "- %s: %d (%.1f%%)\n", r, total.ruleHits[r], safeRate(total.ruleHits[r], total.turns)*100)
	}

	fmt.Fprintln(out, "\nBy day:")
	daily := groupByDate(items)
	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		agg := daily[d]
		fmt.Fprintf(out, "- %s: sessions=%d, turns=%.1f, fallback=%.1f%%\n",
			d,
			agg.sessions,
			float64(agg.turns)/float64(agg.sessions),
			safeRate(agg.fallbacks, agg.turns)*100,
		)
	}

	return nil
}

type sessionAgg struct {
	sessions  int
	turns     int
	fallbacks int
	names     int
	fields    int
	ruleHits  map[string]int
}

func (a *sessionAgg) add(item metrics.SessionMetrics) {
	if a.ruleHits == nil {
		a.ruleHits = make(map[string]int)
	}
	a.sessions++
	a.turns += item.Turns
	a.fallbacks += item.FallbackTurns
	if item.NameCaptured {
		a.names++
	}
	if item.FieldCaptured {
		a.fields++
	}
	for r, n := range item.RuleHits {
		a.ruleHits[r] += n
	}
}

func aggregate(items []metrics.SessionMetrics) sessionAgg {
	var agg sessionAgg
	for _, item := range items {
		agg.add(item)
	}
	return agg
}

func groupByDate(items []metrics.SessionMetrics) map[string]sessionAgg {
	m := make(map[string]sessionAgg)
	for _, item := range items {
		agg := m[item.Date]
		agg.add(item)
		m[item.Date] = agg
	}
	return m
}

func safeRate(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}
