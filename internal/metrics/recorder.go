package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const (
	ruleHitsName          = "gradus_frost_rule_hits_total"
	eligibilityChecksName = "gradus_eligibility_checks_total"
	sessionsName          = "gradus_chat_sessions_total"
)

// Recorder holds the process counters. Each Recorder has its own registry so
// nothing leaks into the global default one.
type Recorder struct {
	registry          *prometheus.Registry
	ruleHits          *prometheus.CounterVec
	eligibilityChecks *prometheus.CounterVec
	sessions          prometheus.Counter
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ruleHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: ruleHitsName,
				Help: "Number of FROST replies by the rule that produced them",
			},
			[]string{"rule"},
		),
		eligibilityChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: eligibilityChecksName,
				Help: "Number of eligibility checks by outcome",
			},
			[]string{"outcome"},
		),
		sessions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: sessionsName,
				Help: "Number of completed chat sessions",
			},
		),
	}
}

func (r *Recorder) RuleHit(rule string) {
	r.ruleHits.WithLabelValues(rule).Inc()
}

func (r *Recorder) EligibilityCheck(outcome string) {
	r.eligibilityChecks.WithLabelValues(outcome).Inc()
}

func (r *Recorder) SessionDone() {
	r.sessions.Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Restore adds the counter values found in an earlier textfile at path, so
// that a later WriteTextfile keeps counting from them. A missing file is not
// an error.
func (r *Recorder) Restore(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open metrics textfile: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(f)
	if err != nil {
		return fmt.Errorf("failed to parse metrics textfile: %w", err)
	}

	for name, family := range families {
		for _, m := range family.GetMetric() {
			v := counterValue(m)
			if v <= 0 {
				continue
			}
			switch name {
			case ruleHitsName:
				r.ruleHits.WithLabelValues(labelValue(m, "rule")).Add(v)
			case eligibilityChecksName:
				r.eligibilityChecks.WithLabelValues(labelValue(m, "outcome")).Add(v)
			case sessionsName:
				r.sessions.Add(v)
			}
		}
	}
	return nil
}

func counterValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	return m.GetUntyped().GetValue()
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// WriteTextfile writes the counters in the text exposition format, for the
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create textfile dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
