package chat

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gradus-nz/gradus/internal/frost"
	"github.com/gradus-nz/gradus/internal/metrics"
)

const (
	greeting              = "Hi, I’m FROST. /help for help."
	clearedNotice         = "Chat cleared."
	defaultTranscriptPath = "frost_chat.txt"
)

// RuleObserver is told which rule answered each turn.
type RuleObserver interface {
	RuleHit(rule string)
}

type Options struct {
	In             io.Reader
	Out            io.Writer
	Logger         *zap.Logger
	Now            func() time.Time
	TranscriptPath string
	Observer       RuleObserver
}

// Summary describes a finished session.
type Summary struct {
	SessionID     string
	Turns         int
	RuleHits      map[frost.RuleName]int
	Memory        frost.Memory
	NameCaptured  bool
	FieldCaptured bool
	Saved         []string
}

// Metrics converts the summary into a metrics store entry.
func (s Summary) Metrics(now time.Time) metrics.SessionMetrics {
	hits := make(map[string]int, len(s.RuleHits))
	for rule, n := range s.RuleHits {
		hits[string(rule)] = n
	}
	return metrics.SessionMetrics{
		SessionID:     s.SessionID,
		Date:          now.Format("2006-01-02"),
		RecordedAt:    now.Format(time.RFC3339),
		Turns:         s.Turns,
		RuleHits:      hits,
		FallbackTurns: s.RuleHits[frost.RuleFallback],
		NameCaptured:  s.NameCaptured,
		FieldCaptured: s.FieldCaptured,
	}
}

// Session runs FROST as a line-oriented REPL.
type Session struct {
	responder      *frost.Responder
	in             *bufio.Scanner
	out            io.Writer
	logger         *zap.Logger
	now            func() time.Time
	transcriptPath string
	observer       RuleObserver

	memory     frost.Memory
	transcript Transcript
	summary    Summary
}

func NewSession(responder *frost.Responder, opts Options) *Session {
	s := &Session{
		responder:      responder,
		in:             bufio.NewScanner(opts.In),
		out:            opts.Out,
		logger:         opts.Logger,
		now:            opts.Now,
		transcriptPath: opts.TranscriptPath,
		observer:       opts.Observer,
		summary: Summary{
			SessionID: uuid.NewString(),
			RuleHits:  make(map[frost.RuleName]int),
		},
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.transcriptPath == "" {
		s.transcriptPath = defaultTranscriptPath
	}
	s.logger = s.logger.With(zap.String("session_id", s.summary.SessionID))
	return s
}

// Run reads lines until EOF, /quit or /done.
func (s *Session) Run() (Summary, error) {
	s.logger.Info("chat session started")
	s.emit(RoleSystem, greeting)

loop:
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			break
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case lower == "/quit" || lower == "/done":
			break loop
		case lower == "/clear":
			s.clear()
		case lower == "/save" || strings.HasPrefix(lower, "/save "):
			s.save(strings.TrimSpace(line[len("/save"):]))
		default:
			s.turn(line)
		}
	}
	fmt.Fprintln(s.out)

	if err := s.in.Err(); err != nil {
		return s.result(), fmt.Errorf("failed to read input: %w", err)
	}

	s.logger.Info("chat session ended", zap.Int("turns", s.summary.Turns))
	return s.result(), nil
}

func (s *Session) Transcript() []Line {
	return s.transcript.Lines()
}

func (s *Session) turn(text string) {
	s.emit(RoleUser, text)

	rep := s.responder.Respond(text, s.memory)
	s.memory = rep.Memory
	s.summary.Turns++
	s.summary.RuleHits[rep.Rule]++
	if rep.Memory.Name != "" {
		s.summary.NameCaptured = true
	}
	if rep.Memory.Field != "" {
		s.summary.FieldCaptured = true
	}
	if s.observer != nil {
		s.observer.RuleHit(string(rep.Rule))
	}

	s.logger.Debug("frost replied",
		zap.String("rule", string(rep.Rule)),
		zap.Int("turn", s.summary.Turns),
	)
	s.emit(RoleBot, rep.Text)
}

func (s *Session) clear() {
	fmt.Fprint(s.out, "Clear the chat? (y/N) ")
	if !s.in.Scan() {
		return
	}
	answer := strings.TrimSpace(strings.ToLower(s.in.Text()))
	if answer != "y" && answer != "yes" {
		return
	}

	s.memory = frost.Memory{}
	s.transcript.Reset()
	s.logger.Debug("chat cleared")
	s.emit(RoleSystem, clearedNotice)
}

func (s *Session) save(path string) {
	if path == "" {
		path = s.transcriptPath
	}
	if err := SaveTranscript(path, &s.transcript); err != nil {
		s.logger.Warn("failed to save transcript", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(s.out, "Save failed: %v\n", err)
		return
	}
	s.summary.Saved = append(s.summary.Saved, path)
	fmt.Fprintf(s.out, "Saved chat → %s\n", filepath.Base(path))
}

func (s *Session) emit(role Role, text string) {
	l := s.transcript.Add(s.now(), role, text)
	fmt.Fprintln(s.out, l.String())
}

func (s *Session) result() Summary {
	out := s.summary
	out.Memory = s.memory
	out.RuleHits = make(map[frost.RuleName]int, len(s.summary.RuleHits))
	for k, v := range s.summary.RuleHits {
		out.RuleHits[k] = v
	}
	out.Saved = append([]string(nil), s.summary.Saved...)
	return out
}
