package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gradus-nz/gradus/internal/config"
	"github.com/gradus-nz/gradus/internal/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "gradus",
		Short:         "Study helper: chat with FROST and check rank-score eligibility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/gradus/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newChatCmd(opts))
	cmd.AddCommand(newAskCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newCareersCmd(opts))
	cmd.AddCommand(newFAQCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads the config and builds a logger honouring --log-level.
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	return cfg, logger.New(level, cfg.Logging.Format), nil
}
