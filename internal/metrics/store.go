package metrics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionMetrics summarises one chat session. One JSON object per line.
type SessionMetrics struct {
	SessionID     string         `json:"session_id"`
	Date          string         `json:"date"`
	RecordedAt    string         `json:"recorded_at"`
	Turns         int            `json:"turns"`
	RuleHits      map[string]int `json:"rule_hits,omitempty"`
	FallbackTurns int            `json:"fallback_turns"`
	NameCaptured  bool           `json:"name_captured"`
	FieldCaptured bool           `json:"field_captured"`
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gradus", "metrics.jsonl"), nil
}

// Append adds item as one line to the JSONL file at path (the default path
// when empty). RecordedAt and Date default to the current time.
func Append(path string, item SessionMetrics) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}
	if item.RecordedAt == "" {
		item.RecordedAt = time.Now().Format(time.RFC3339)
	}
	if item.Date == "" {
		item.Date = time.Now().Format("2006-01-02")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create metrics dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer func() { _ = f.Close() }()

	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("failed to append metrics: %w", err)
	}
	return nil
}

// LoadSince returns entries dated on or after since. Unparseable lines are
// skipped.
func LoadSince(path string, since time.Time) ([]SessionMetrics, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out []SessionMetrics
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		var item SessionMetrics
		if err := json.Unmarshal(line, &item); err != nil {
			continue
		}
		if item.Date != "" {
			d, err := time.ParseInLocation("2006-01-02", item.Date, since.Location())
			if err == nil && d.Before(since) {
				continue
			}
		}
		out = append(out, item)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metrics: %w", err)
	}
	return out, nil
}
