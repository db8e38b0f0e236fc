package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrInvalidFilter is returned when a filter expression cannot be compiled or
// does not evaluate to a boolean.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter selects cards with a compiled expr-lang expression. Expressions see
// the card fields under their JSON names: id, title, template_id, sizes,
// basePrice and pages (each page has title and template).
type Filter struct {
	source  string
	program *vm.Program
}

// NewFilter compiles source. An empty or blank source yields a nil Filter,
// which matches every card.
func NewFilter(source string) (*Filter, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}
	program, err := expr.Compile(source, expr.Env(filterEnv(Card{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return &Filter{source: source, program: program}, nil
}

// String returns the expression source.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the filter against a single card.
func (f *Filter) Match(c Card) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, filterEnv(c))
	if err != nil {
		return false, fmt.Errorf("%w: eval %q: %v", ErrInvalidFilter, f.source, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q did not return a boolean", ErrInvalidFilter, f.source)
	}
	return matched, nil
}

// Apply returns the cards matching the filter in their original order. The
// input slice is not modified.
func (f *Filter) Apply(cards []Card) ([]Card, error) {
	if f == nil {
		return cards, nil
	}
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		ok, err := f.Match(c)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func filterEnv(c Card) map[string]interface{} {
	sizes := c.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	pages := make([]map[string]interface{}, 0, len(c.Pages))
	for _, p := range c.Pages {
		pages = append(pages, map[string]interface{}{
			"title":    p.Title,
			"template": p.Template,
		})
	}
	return map[string]interface{}{
		"id":          c.ID,
		"title":       c.Title,
		"template_id": c.TemplateID,
		"sizes":       sizes,
		"basePrice":   c.BasePrice,
		"pages":       pages,
	}
}
