// Package frost implements FROST, the scripted study-advice chat bot.
//
// A Responder turns one line of user text plus the conversation Memory into a
// reply and the next Memory. Replies come from an ordered rule table; the
// first rule whose predicate matches produces the reply and later rules are
// not consulted. The Responder itself holds only immutable reference data, so
// one instance can serve any number of conversations as long as each keeps
// its own Memory.
package frost

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gradus-nz/gradus/internal/catalog"
	"github.com/gradus-nz/gradus/internal/eligibility"
)

// Memory is what FROST remembers within one conversation. Empty strings mean
// nothing has been remembered yet.
type Memory struct {
	Name  string
	Field catalog.Field
}

// RuleName identifies the rule that produced a reply.
type RuleName string

const (
	RuleHelp      RuleName = "help"
	RuleIntroduce RuleName = "introduce"
	RuleInterest  RuleName = "interest"
	RuleScore     RuleName = "score"
	RuleFAQ       RuleName = "faq"
	RuleFollowUp  RuleName = "followup"
	RuleFallback  RuleName = "fallback"
)

const (
	HelpText     = "Commands: /help /clear /save\nTry: I like Science; My score is 300 for Engineering; What is NCEA?"
	FallbackText = "I’m FROST 🤖 Ask NCEA / rank score / careers. Type /help."
)

// Reply is the outcome of one turn. Rule is empty when the input was blank.
type Reply struct {
	Text   string
	Memory Memory
	Rule   RuleName
}

var (
	digitsRegex = regexp.MustCompile(`[0-9]+`)
	nameIsRegex = regexp.MustCompile(`(?i)name is`)
)

// turn is the pre-processed form of one input line shared by all rules.
type turn struct {
	text  string
	lower string
	// field is the leftmost field name mentioned in text.
	field catalog.Field
	// score is the first run of digits; hasScore is false when there is none
	// or it does not fit in an int.
	score    int
	hasScore bool
}

type rule struct {
	name   RuleName
	match  func(t turn, mem Memory) bool
	handle func(t turn, mem Memory) (string, Memory)
}

type faqKey struct {
	needle string
	answer string
}

// Responder answers chat input from an ordered rule table.
type Responder struct {
	tables    catalog.Tables
	fieldList string
	fieldRe   *regexp.Regexp
	faq       []faqKey
	rules     []rule
}

// New builds a Responder over tables. The tables are expected to have passed
// catalog.Tables.Validate.
func New(tables catalog.Tables) *Responder {
	r := &Responder{tables: tables}

	fields := tables.Fields()
	names := make([]string, 0, len(fields))
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, string(f))
		quoted = append(quoted, regexp.QuoteMeta(string(f)))
	}
	r.fieldList = strings.Join(names, "/")
	if len(quoted) > 0 {
		r.fieldRe = regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
	}

	for _, e := range tables.FAQEntries() {
		needle := lower(strings.TrimRight(e.Question, "?"))
		if needle == "" {
			continue
		}
		r.faq = append(r.faq, faqKey{needle: needle, answer: e.Answer})
	}

	r.initializeRules()
	return r
}

// initializeRules sets up the rule table. Order is precedence.
func (r *Responder) initializeRules() {
	r.rules = []rule{
		{
			name: RuleHelp,
			match: func(t turn, _ Memory) bool {
				return strings.EqualFold(t.text, "/help")
			},
			handle: func(_ turn, mem Memory) (string, Memory) {
				return HelpText, mem
			},
		},
		{
			name: RuleIntroduce,
			match: func(t turn, _ Memory) bool {
				return strings.Contains(t.lower, "name is")
			},
			handle: r.handleName,
		},
		{
			name: RuleInterest,
			match: func(t turn, _ Memory) bool {
				return strings.Contains(t.lower, "like") && t.field != ""
			},
			handle: r.handleField,
		},
		{
			name:   RuleScore,
			match:  r.matchScore,
			handle: r.handleScore,
		},
		{
			name: RuleFAQ,
			match: func(t turn, _ Memory) bool {
				_, ok := r.findFAQ(t)
				return ok
			},
			handle: func(t turn, mem Memory) (string, Memory) {
				answer, _ := r.findFAQ(t)
				return answer, mem
			},
		},
		{
			name:   RuleFollowUp,
			match:  r.matchFollowUp,
			handle: r.handleFollowUp,
		},
		{
			name:  RuleFallback,
			match: func(turn, Memory) bool { return true },
			handle: func(_ turn, mem Memory) (string, Memory) {
				return FallbackText, mem
			},
		},
	}
}

// Rules lists the rule names in evaluation order.
func (r *Responder) Rules() []RuleName {
	out := make([]RuleName, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, rl.name)
	}
	return out
}

// Reply answers input given mem and returns the reply text and next memory.
func (r *Responder) Reply(input string, mem Memory) (string, Memory) {
	rep := r.Respond(input, mem)
	return rep.Text, rep.Memory
}

// Respond is Reply plus the name of the rule that answered.
func (r *Responder) Respond(input string, mem Memory) Reply {
	t := r.newTurn(input)
	if t.text == "" {
		return Reply{Memory: mem}
	}
	for _, rl := range r.rules {
		if !rl.match(t, mem) {
			continue
		}
		text, next := rl.handle(t, mem)
		return Reply{Text: text, Memory: next, Rule: rl.name}
	}
	return Reply{Text: FallbackText, Memory: mem, Rule: RuleFallback}
}

func (r *Responder) newTurn(input string) turn {
	t := turn{text: strings.TrimSpace(input)}
	if t.text == "" {
		return t
	}
	t.lower = lower(t.text)

	if r.fieldRe != nil {
		if m := r.fieldRe.FindString(t.text); m != "" {
			t.field, _ = r.tables.LookupField(m)
		}
	}

	if d := digitsRegex.FindString(t.text); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			t.score, t.hasScore = n, true
		}
	}
	return t
}

func (r *Responder) handleName(t turn, mem Memory) (string, Memory) {
	var name string
	if locs := nameIsRegex.FindAllStringIndex(t.text, -1); len(locs) > 0 {
		rest := t.text[locs[len(locs)-1][1]:]
		if tokens := strings.Fields(rest); len(tokens) > 0 {
			name = capitalize(tokens[0])
		}
	}

	mem.Name = name
	greeting := "there"
	if name != "" {
		greeting = name
	}
	return "Hi " + greeting + "! What are you into (" + r.fieldList + ")?", mem
}

func (r *Responder) handleField(t turn, mem Memory) (string, Memory) {
	mem.Field = t.field
	titles, _ := r.tables.CareersFor(t.field)
	return "Careers in " + string(t.field) + ": " + strings.Join(titles, ", "), mem
}

func (r *Responder) matchScore(t turn, _ Memory) bool {
	if !strings.Contains(t.lower, "score") || !t.hasScore || t.field == "" {
		return false
	}
	_, ok := r.tables.Threshold(t.field)
	return ok
}

func (r *Responder) handleScore(t turn, mem Memory) (string, Memory) {
	threshold, _ := r.tables.Threshold(t.field)
	return eligibility.Verdict(t.score, t.field, threshold).Message(), mem
}

func (r *Responder) findFAQ(t turn) (string, bool) {
	for _, k := range r.faq {
		if strings.Contains(t.lower, k.needle) {
			return k.answer, true
		}
	}
	return "", false
}

func (r *Responder) matchFollowUp(t turn, mem Memory) bool {
	if mem.Field == "" {
		return false
	}
	if _, ok := r.tables.CareersFor(mem.Field); !ok {
		return false
	}
	return strings.Contains(t.lower, "career") ||
		strings.Contains(t.lower, "job") ||
		strings.Contains(t.lower, "suggest")
}

func (r *Responder) handleFollowUp(_ turn, mem Memory) (string, Memory) {
	titles, _ := r.tables.CareersFor(mem.Field)
	return "More: " + strings.Join(titles, ", "), mem
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(word)
	return cases.Upper(language.Und).String(word[:size]) + lower(word[size:])
}
