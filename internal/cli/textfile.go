package cli

import (
	"go.uber.org/zap"

	"github.com/gradus-nz/gradus/internal/metrics"
)

// exportTextfile folds the counts already in path into recorder and writes
// the result back. An unreadable file is left alone.
func exportTextfile(path string, recorder *metrics.Recorder, log *zap.Logger) {
	if path == "" {
		return
	}
	if err := recorder.Restore(path); err != nil {
		log.Warn("failed to restore metrics textfile", zap.String("path", path), zap.Error(err))
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		log.Warn("failed to write metrics textfile", zap.String("path", path), zap.Error(err))
	}
}
