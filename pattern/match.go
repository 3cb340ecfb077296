package pattern

// Match is a successful match of a node.
type Match struct {
	Start int // may lie before the core match when modifiers were found
	End   int
	Text  string // source text of the core match
	Value any    // captured value; nil means Text
	Props *Props // accumulator of Object matches
}

// Len returns the number of bytes spanned by the match.
func (m *Match) Len() int { return m.End - m.Start }

// Captured returns the value a Capture node binds for m.
func (m *Match) Captured() any {
	switch {
	case m.Value != nil:
		return m.Value
	case m.Props != nil:
		return m.Props
	default:
		return m.Text
	}
}

// Props accumulates named values captured while matching an Object.
type Props struct {
	values    map[string]any
	Modifiers []string
}

// NewProps returns an empty accumulator.
func NewProps() *Props {
	return &Props{values: make(map[string]any)}
}

// Set binds v under name.
func (p *Props) Set(name string, v any) {
	p.values[name] = v
}

// Get returns the value bound under name.
func (p *Props) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// String returns the string bound under name, or "".
func (p *Props) String(name string) string {
	s, _ := p.values[name].(string)
	return s
}

// Bool returns the bool bound under name, or false.
func (p *Props) Bool(name string) bool {
	b, _ := p.values[name].(bool)
	return b
}

// Match returns the match bound under name by a whole-match Capture.
func (p *Props) Match(name string) *Match {
	m, _ := p.values[name].(*Match)
	return m
}

// Strings returns the string items of a list bound under name.
func (p *Props) Strings(name string) []string {
	items, _ := p.values[name].([]any)
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Objects returns the accumulator items of a list bound under name.
func (p *Props) Objects(name string) []*Props {
	items, _ := p.values[name].([]any)
	var out []*Props
	for _, item := range items {
		if o, ok := item.(*Props); ok {
			out = append(out, o)
		}
	}
	return out
}

type snapshot struct {
	values    map[string]any
	modifiers int
}

func (p *Props) save() snapshot {
	if p == nil {
		return snapshot{}
	}
	values := make(map[string]any, len(p.values))
	for k, v := range p.values {
		values[k] = v
	}
	return snapshot{values: values, modifiers: len(p.Modifiers)}
}

func (p *Props) restore(s snapshot) {
	if p == nil {
		return
	}
	p.values = s.values
	p.Modifiers = p.Modifiers[:s.modifiers]
}

// Delete removes the value bound under name.
func (p *Props) Delete(name string) {
	delete(p.values, name)
}
