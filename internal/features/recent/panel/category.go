package panel

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// SentinelValue is the select value meaning "create a new category"
	SentinelValue = "__new__"
	SentinelLabel = "+ New category…"

	// DefaultLabel labels the empty option
	DefaultLabel = "Select a category"

	// PromptMessage is shown when asking the operator for a new category name
	PromptMessage = "New category name:"
)

// Option is one entry of the category select
type Option struct {
	Value string
	Label string
}

// Prompter asks the operator for free text. ok is false when the operator cancelled.
type Prompter interface {
	Prompt(ctx context.Context, message string) (text string, ok bool, err error)
}

// PromptFunc adapts a function to Prompter
type PromptFunc func(ctx context.Context, message string) (string, bool, error)

func (f PromptFunc) Prompt(ctx context.Context, message string) (string, bool, error) {
	return f(ctx, message)
}

// CategoryPicker holds the category options and the current selection. The
// empty default option is always first and the sentinel always last.
type CategoryPicker struct {
	mu       sync.Mutex
	options  []Option
	selected string
}

// NewCategoryPicker builds the option list from known category labels
func NewCategoryPicker(categories []string) *CategoryPicker {
	options := []Option{{Value: "", Label: DefaultLabel}}
	seen := map[string]bool{"": true, SentinelValue: true}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if seen[c] {
			continue
		}
		seen[c] = true
		options = append(options, Option{Value: c, Label: c})
	}
	options = append(options, Option{Value: SentinelValue, Label: SentinelLabel})

	return &CategoryPicker{options: options}
}

// RestoreCategoryPicker rebuilds a picker from a submitted option list and selection
func RestoreCategoryPicker(values []string, selected string) *CategoryPicker {
	p := NewCategoryPicker(values)
	if p.index(selected) >= 0 && selected != SentinelValue {
		p.selected = selected
	}
	return p
}

// Options returns a copy of the option list in display order
func (p *CategoryPicker) Options() []Option {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Option, len(p.options))
	copy(out, p.options)
	return out
}

// Selected returns the selected value; empty means the default option
func (p *CategoryPicker) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Change records a new selection and reports whether it needs a prompt.
// Values that are not options fall back to the default option.
func (p *CategoryPicker) Change(value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index(value) < 0 {
		p.selected = ""
		return false
	}
	p.selected = value
	return value == SentinelValue
}

// ApplyPrompt completes the "create new" flow with the operator's answer and
// returns the resulting selection. Trimmed non-empty text becomes a new option
// just before the sentinel (or selects the existing option with that value);
// anything else resets to the default option.
func (p *CategoryPicker) ApplyPrompt(text string, ok bool) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := strings.TrimSpace(text)
	if !ok || name == "" || name == SentinelValue {
		p.selected = ""
		return p.selected
	}

	if p.index(name) < 0 {
		at := len(p.options) - 1
		p.options = append(p.options, Option{})
		copy(p.options[at+1:], p.options[at:])
		p.options[at] = Option{Value: name, Label: name}
	}
	p.selected = name
	return p.selected
}

// Select runs Change and, for the sentinel, prompts and applies the answer
func (p *CategoryPicker) Select(ctx context.Context, value string, prompter Prompter) (string, error) {
	if !p.Change(value) {
		return p.Selected(), nil
	}

	text, ok, err := prompter.Prompt(ctx, PromptMessage)
	if err != nil {
		p.ApplyPrompt("", false)
		return p.Selected(), err
	}
	return p.ApplyPrompt(text, ok), nil
}

// Suggest ranks existing category labels against query, best match first.
// The default and sentinel options are never suggested.
func (p *CategoryPicker) Suggest(query string) []string {
	p.mu.Lock()
	labels := make([]string, 0, len(p.options))
	for _, opt := range p.options {
		if opt.Value == "" || opt.Value == SentinelValue {
			continue
		}
		labels = append(labels, opt.Label)
	}
	p.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return labels
	}

	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Stable(ranks)

	out := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, rank.Target)
	}
	return out
}

func (p *CategoryPicker) index(value string) int {
	for i, opt := range p.options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
