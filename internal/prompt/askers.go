package prompt

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// MapAsker answers from recorded values. Missing names fall back to the
// question default.
type MapAsker map[string]any

// Ask implements Asker.
func (m MapAsker) Ask(q Question, _ any) (any, error) {
	return m[q.Name], nil
}

// LoadAnswers reads recorded answers from a YAML or JSON file.
func LoadAnswers(path string) (MapAsker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read answers %s", path)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parse answers %s", path)
	}
	return MapAsker(m), nil
}

// TerminalAsker asks interactively on the terminal.
type TerminalAsker struct{}

// Ask implements Asker.
func (TerminalAsker) Ask(q Question, def any) (any, error) {
	switch q.Kind {
	case Confirm:
		b, _ := def.(bool)
		return pterm.DefaultInteractiveConfirm.WithDefaultValue(b).Show(q.Message)
	case List:
		names, byName := choiceNames(q.Choices)
		sel := pterm.DefaultInteractiveSelect.WithOptions(names)
		if d := nameOf(q.Choices, toString(def)); d != "" {
			sel = sel.WithDefaultOption(d)
		}
		picked, err := sel.Show(q.Message)
		if err != nil {
			return nil, err
		}
		return byName[picked], nil
	case Checkbox:
		names, byName := choiceNames(q.Choices)
		var defaults []string
		if ds, ok := def.([]string); ok {
			for _, d := range ds {
				if n := nameOf(q.Choices, d); n != "" {
					defaults = append(defaults, n)
				}
			}
		}
		picked, err := pterm.DefaultInteractiveMultiselect.
			WithOptions(names).
			WithDefaultOptions(defaults).
			Show(q.Message)
		if err != nil {
			return nil, err
		}
		values := make([]string, 0, len(picked))
		for _, p := range picked {
			values = append(values, byName[p])
		}
		return values, nil
	default:
		in := pterm.DefaultInteractiveTextInput
		if d := toString(def); d != "" {
			in = *in.WithDefaultValue(d)
		}
		s, err := in.Show(q.Message)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return s, nil
	}
}

func choiceNames(choices []Choice) ([]string, map[string]string) {
	names := make([]string, 0, len(choices))
	byName := make(map[string]string, len(choices))
	for _, c := range choices {
		label := c.Name
		if label == "" {
			label = c.Value
		}
		label = fmt.Sprintf("%s (%s)", label, c.Value)
		names = append(names, label)
		byName[label] = c.Value
	}
	return names, byName
}

func nameOf(choices []Choice, value string) string {
	names, byName := choiceNames(choices)
	for _, n := range names {
		if byName[n] == value {
			return n
		}
	}
	return ""
}
