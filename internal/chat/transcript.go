package chat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrEmptyTranscript = errors.New("transcript is empty")

type Role string

const (
	RoleUser   Role = "You"
	RoleBot    Role = "FROST"
	RoleSystem Role = "System"
)

type Line struct {
	At   time.Time
	Role Role
	Text string
}

// String renders the line as "[HH:MM] Role: text".
func (l Line) String() string {
	return fmt.Sprintf("[%s] %s: %s", l.At.Format("15:04"), l.Role, l.Text)
}

// Transcript is the ordered record of everything shown in a session.
type Transcript struct {
	lines []Line
}

func (t *Transcript) Add(at time.Time, role Role, text string) Line {
	l := Line{At: at, Role: role, Text: text}
	t.lines = append(t.lines, l)
	return l
}

func (t *Transcript) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

func (t *Transcript) Len() int {
	return len(t.lines)
}

func (t *Transcript) Reset() {
	t.lines = nil
}

func (t *Transcript) Render() string {
	var sb strings.Builder
	for _, l := range t.lines {
		sb.WriteString(l.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// SaveTranscript writes the rendered transcript to path, replacing any
// existing file.
func SaveTranscript(path string, t *Transcript) error {
	if t == nil || t.Len() == 0 {
		return ErrEmptyTranscript
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(t.Render()), 0600); err != nil {
		return fmt.Errorf("failed to write temp transcript: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to persist transcript: %w", err)
	}
	return nil
}
