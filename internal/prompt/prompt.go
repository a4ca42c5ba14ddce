// Package prompt collects the answers a dialect needs to build a profile.
//
// Questions are declared by each dialect. Collect walks them in order,
// skipping those whose When predicate rejects the answers gathered so far,
// and asks the rest through an Asker: a terminal, or a recorded answers
// file.
package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind is the input style of a question.
type Kind string

const (
	Input    Kind = "input"
	Confirm  Kind = "confirm"
	List     Kind = "list"
	Checkbox Kind = "checkbox"
)

// Choice is one option of a List or Checkbox question.
type Choice struct {
	Value string
	Name  string
}

// Question describes one answer to collect.
type Question struct {
	Kind    Kind
	Name    string
	Message string
	Choices []Choice
	// Default is used when the asker returns no value. DefaultFunc, when
	// set, computes it from earlier answers instead.
	Default     any
	DefaultFunc func(Answers) any
	Required    bool
	When        func(Answers) bool
	Transform   func(any) any
}

// Answers maps question names to values: string for Input and List, bool
// for Confirm and []string for Checkbox, unless a Transform changed it.
type Answers map[string]any

// String returns the named answer as a string.
func (a Answers) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the named answer as a bool.
func (a Answers) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns the named answer as a string slice.
func (a Answers) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

// Has reports whether the named answer was collected.
func (a Answers) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Asker obtains the raw answer to a question. def is the effective
// default. A nil result means "use the default".
type Asker interface {
	Ask(q Question, def any) (any, error)
}

// Collect asks every applicable question and returns the answers.
func Collect(questions []Question, asker Asker) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if q.When != nil && !q.When(answers) {
			continue
		}
		def := q.Default
		if q.DefaultFunc != nil {
			def = q.DefaultFunc(answers)
		}

		raw, err := asker.Ask(q, def)
		if err != nil {
			return nil, errors.Wrapf(err, "ask %s", q.Name)
		}
		if raw == nil {
			raw = def
		}
		v, err := coerce(q, raw)
		if err != nil {
			return nil, err
		}
		if q.Required && empty(v) {
			return nil, errors.WithHint(
				errors.Newf("answer %q is required", q.Name),
				"provide it in the answers file or at the prompt",
			)
		}
		if q.Transform != nil {
			v = q.Transform(v)
		}
		answers[q.Name] = v
	}
	return answers, nil
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	}
	return false
}

// coerce normalizes raw to the value type of the question's kind.
func coerce(q Question, raw any) (any, error) {
	switch q.Kind {
	case Confirm:
		switch t := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return t, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(t))
			if err != nil {
				switch strings.ToLower(strings.TrimSpace(t)) {
				case "y", "yes":
					return true, nil
				case "n", "no", "":
					return false, nil
				}
				return nil, errors.Newf("answer %q: %q is not a yes/no value", q.Name, t)
			}
			return b, nil
		}
		return nil, errors.Newf("answer %q: unexpected %T", q.Name, raw)
	case Checkbox:
		var values []string
		switch t := raw.(type) {
		case nil:
		case []string:
			values = append(values, t...)
		case []any:
			for _, v := range t {
				values = append(values, fmt.Sprint(v))
			}
		case string:
			for _, part := range strings.Split(t, ",") {
				if part = strings.TrimSpace(part); part != "" {
					values = append(values, part)
				}
			}
		default:
			return nil, errors.Newf("answer %q: unexpected %T", q.Name, raw)
		}
		for _, v := range values {
			if err := checkChoice(q, v); err != nil {
				return nil, err
			}
		}
		return values, nil
	case List:
		s := toString(raw)
		if s == "" {
			return s, nil
		}
		return s, checkChoice(q, s)
	default:
		return toString(raw), nil
	}
}

func toString(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

func checkChoice(q Question, v string) error {
	if len(q.Choices) == 0 {
		return nil
	}
	valid := make([]string, 0, len(q.Choices))
	for _, c := range q.Choices {
		if c.Value == v {
			return nil
		}
		valid = append(valid, c.Value)
	}
	sort.Strings(valid)
	return errors.WithHintf(
		errors.Newf("answer %q: %q is not a valid choice", q.Name, v),
		"valid choices: %s", strings.Join(valid, ", "),
	)
}
