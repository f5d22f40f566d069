package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/km-arc/go-sprinkles/framework/dom"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation errors.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"target": "required|selector", "type": "required|alpha_dash"}
type Rules map[string]string

// ── Rule table ───────────────────────────────────────────────────────────────

// check validates one value. It returns "" when the value passes, errSkip to
// stop checking the field without an error, or a message with a %s
// placeholder for the field name.
type check func(value, param string) string

const errSkip = "\x00skip"

var alphaDash = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var checks = map[string]check{
	"required": func(value, _ string) string {
		if strings.TrimSpace(value) == "" {
			return "The %s field is required."
		}
		return ""
	},
	"sometimes": func(value, _ string) string {
		if value == "" {
			return errSkip
		}
		return ""
	},
	"min": func(value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return "The %s must be at least " + param + " characters."
		}
		return ""
	},
	"max": func(value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return "The %s may not be longer than " + param + " characters."
		}
		return ""
	},
	"in": func(value, param string) string {
		for _, allowed := range strings.Split(param, ",") {
			if strings.TrimSpace(allowed) == value {
				return ""
			}
		}
		return "The selected %s is invalid."
	},
	"alpha_dash": func(value, _ string) string {
		if !alphaDash.MatchString(value) {
			return "The %s may only contain letters, numbers, dashes and underscores."
		}
		return ""
	},
	"selector": func(value, _ string) string {
		if dom.ValidSelector(value) != nil {
			return "The %s must be a valid CSS selector."
		}
		return ""
	},
}

// ── Validator ────────────────────────────────────────────────────────────────

// Validator validates a flat map of input values. Unknown rule names are
// ignored.
type Validator struct {
	data      map[string]string
	rules     Rules
	errors    *Errors
	validated bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// validate checks fields in name order and stops at a field's first failure.
func (v *Validator) validate() {
	if v.validated {
		return
	}
	v.validated = true

	fields := make([]string, 0, len(v.rules))
	for field := range v.rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]
		for _, rule := range strings.Split(v.rules[field], "|") {
			name, param, _ := strings.Cut(strings.TrimSpace(rule), ":")
			fn, ok := checks[name]
			if !ok {
				continue
			}
			msg := fn(value, param)
			if msg == "" {
				continue
			}
			if msg != errSkip {
				v.errors.add(field, fmt.Sprintf(msg, field))
			}
			break
		}
	}
}
