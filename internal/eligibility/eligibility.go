// Package eligibility compares a rank score against a course threshold.
package eligibility

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gradus-nz/gradus/internal/catalog"
)

// Kind classifies a check result.
type Kind int

const (
	InvalidInput Kind = iota
	Eligible
	Ineligible
)

func (k Kind) String() string {
	switch k {
	case Eligible:
		return "eligible"
	case Ineligible:
		return "ineligible"
	default:
		return "invalid_input"
	}
}

var ErrUnknownCourse = errors.New("unknown course")

// Result is the outcome of a check. Shortfall is only set for Ineligible.
type Result struct {
	Kind      Kind
	Course    catalog.Field
	Threshold int
	Shortfall int
}

// Message renders the result the way the check form and the chat bot show it.
func (r Result) Message() string {
	switch r.Kind {
	case Eligible:
		return fmt.Sprintf("✔ Enough for %s (need %d).", r.Course, r.Threshold)
	case Ineligible:
		return fmt.Sprintf("✘ Need %d more for %s.", r.Shortfall, r.Course)
	default:
		return "Enter a whole number."
	}
}

// Verdict compares an already-parsed score with a threshold.
func Verdict(score int, course catalog.Field, threshold int) Result {
	if score >= threshold {
		return Result{Kind: Eligible, Course: course, Threshold: threshold}
	}
	return Result{Kind: Ineligible, Course: course, Threshold: threshold, Shortfall: threshold - score}
}

// Checker checks scores against the course thresholds of a set of tables.
type Checker struct {
	tables catalog.Tables
}

// NewChecker returns a Checker over tables.
func NewChecker(tables catalog.Tables) *Checker {
	return &Checker{tables: tables}
}

// Check parses rawScore as a whole number and compares it with the course
// threshold. Unparseable input is reported as an InvalidInput result, not an
// error; an unknown course is an error. A score so negative that the
// shortfall would not fit in an int counts as unparseable.
func (c *Checker) Check(rawScore, course string) (Result, error) {
	field, ok := c.tables.LookupField(course)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCourse, course)
	}
	threshold, _ := c.tables.Threshold(field)

	score, err := strconv.Atoi(strings.TrimSpace(rawScore))
	if err != nil || shortfallOverflows(score, threshold) {
		return Result{Kind: InvalidInput, Course: field, Threshold: threshold}, nil
	}

	return Verdict(score, field, threshold), nil
}

func shortfallOverflows(score, threshold int) bool {
	return score < 0 && threshold > math.MaxInt+score
}
