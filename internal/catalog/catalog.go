// Package catalog holds the reference tables shared by the eligibility check
// and the FROST responder: course thresholds, careers per field and the FAQ.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field is a study/career domain. It is the join key between the course
// thresholds and the career catalog.
type Field string

const (
	Science     Field = "Science"
	Commerce    Field = "Commerce"
	Engineering Field = "Engineering"
)

var ErrInconsistentTables = errors.New("course and career tables disagree")

var validate = validator.New()

type Course struct {
	Name      Field `mapstructure:"name" yaml:"name" validate:"required"`
	Threshold int   `mapstructure:"threshold" yaml:"threshold" validate:"gte=0"`
}

type CareerList struct {
	Field  Field    `mapstructure:"field" yaml:"field" validate:"required"`
	Titles []string `mapstructure:"titles" yaml:"titles" validate:"min=1,dive,required"`
}

type FAQEntry struct {
	Question string `mapstructure:"question" yaml:"question" validate:"required"`
	Answer   string `mapstructure:"answer" yaml:"answer" validate:"required"`
}

// Tables is the full set of reference data. FAQ order matters: the first
// matching question wins.
type Tables struct {
	Courses []Course     `mapstructure:"courses" yaml:"courses" validate:"min=1,dive"`
	Careers []CareerList `mapstructure:"careers" yaml:"careers" validate:"min=1,dive"`
	FAQ     []FAQEntry   `mapstructure:"faq" yaml:"faq" validate:"dive"`
}

// Default returns the base tables.
func Default() Tables {
	return Tables{
		Courses: []Course{
			{Name: Science, Threshold: 280},
			{Name: Commerce, Threshold: 210},
			{Name: Engineering, Threshold: 260},
		},
		Careers: []CareerList{
			{Field: Science, Titles: []string{"Biologist", "Lab Technician"}},
			{Field: Commerce, Titles: []string{"Accountant", "Economist"}},
			{Field: Engineering, Titles: []string{"Civil Engineer", "Software Developer"}},
		},
		FAQ: defaultFAQ(),
	}
}

// Extended returns the default thresholds with the longer career lists.
func Extended() Tables {
	t := Default()
	t.Careers = []CareerList{
		{Field: Science, Titles: []string{"Biologist", "Lab Technician", "Chemist", "Physicist"}},
		{Field: Commerce, Titles: []string{"Accountant", "Economist", "Financial Analyst", "Auditor"}},
		{Field: Engineering, Titles: []string{"Civil Engineer", "Software Developer", "Mechanical", "Electrical"}},
	}
	return t
}

func defaultFAQ() []FAQEntry {
	return []FAQEntry{
		{Question: "What is NCEA?", Answer: "NCEA is New Zealand’s main school qualification."},
		{Question: "What is a rank score?", Answer: "It's a number based on your Level 3 results for uni entry."},
	}
}

// Validate checks every entry and that courses and careers cover exactly the
// same fields.
func (t Tables) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid tables: %w", err)
	}

	courses := make(map[string]Field, len(t.Courses))
	for _, c := range t.Courses {
		key := strings.ToLower(string(c.Name))
		if _, dup := courses[key]; dup {
			return fmt.Errorf("%w: duplicate course %q", ErrInconsistentTables, c.Name)
		}
		courses[key] = c.Name
	}

	careers := make(map[string]struct{}, len(t.Careers))
	for _, c := range t.Careers {
		key := strings.ToLower(string(c.Field))
		if _, dup := careers[key]; dup {
			return fmt.Errorf("%w: duplicate career field %q", ErrInconsistentTables, c.Field)
		}
		if _, ok := courses[key]; !ok {
			return fmt.Errorf("%w: field %q has careers but no course threshold", ErrInconsistentTables, c.Field)
		}
		careers[key] = struct{}{}
	}

	for _, c := range t.Courses {
		if _, ok := careers[strings.ToLower(string(c.Name))]; !ok {
			return fmt.Errorf("%w: course %q has no career list", ErrInconsistentTables, c.Name)
		}
	}

	return nil
}

// Fields returns the field names in course-table order.
func (t Tables) Fields() []Field {
	out := make([]Field, 0, len(t.Courses))
	for _, c := range t.Courses {
		out = append(out, c.Name)
	}
	return out
}

func (t Tables) Threshold(f Field) (int, bool) {
	for _, c := range t.Courses {
		if c.Name == f {
			return c.Threshold, true
		}
	}
	return 0, false
}

// CareersFor returns a copy of the career titles for f.
func (t Tables) CareersFor(f Field) ([]string, bool) {
	for _, c := range t.Careers {
		if c.Field == f {
			out := make([]string, len(c.Titles))
			copy(out, c.Titles)
			return out, true
		}
	}
	return nil, false
}

// LookupField resolves a field or course name case-insensitively.
func (t Tables) LookupField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, c := range t.Courses {
		if strings.EqualFold(string(c.Name), name) {
			return c.Name, true
		}
	}
	return "", false
}

// FAQEntries returns a copy of the FAQ in table order.
func (t Tables) FAQEntries() []FAQEntry {
	out := make([]FAQEntry, len(t.FAQ))
	copy(out, t.FAQ)
	return out
}
