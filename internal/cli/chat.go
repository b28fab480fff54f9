package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gradus-nz/gradus/internal/chat"
	"github.com/gradus-nz/gradus/internal/frost"
	"github.com/gradus-nz/gradus/internal/metrics"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive FROST session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	recorder := metrics.NewRecorder()
	session := chat.NewSession(frost.New(cfg.Tables), chat.Options{
		In:             cmd.InOrStdin(),
		Out:            cmd.OutOrStdout(),
		Logger:         log,
		TranscriptPath: cfg.Chat.TranscriptPath,
		Observer:       recorder,
	})

	fmt.Fprintln(cmd.OutOrStdout(), "(/help for commands, /quit to leave)")
	summary, err := session.Run()
	if err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	recorder.SessionDone()

	if cfg.Chat.MetricsEnabled && summary.Turns > 0 {
		if err := metrics.Append(cfg.Chat.MetricsPath, summary.Metrics(time.Now())); err != nil {
			log.Warn("failed to record session metrics", zap.Error(err))
		}
	}
	exportTextfile(cfg.Chat.MetricsTextfile, recorder, log)

	return nil
}
