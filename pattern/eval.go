package pattern

import (
	"fmt"
	"strings"
)

// Match evaluates the grammar at offset and returns nil when it does
// not match there.
func (g *Grammar) Match(text string, offset int) *Match {
	return match(g.root, text, offset, nil)
}

// MatchProps is like Match but records captures in props.
func (g *Grammar) MatchProps(text string, offset int, props *Props) *Match {
	return match(g.root, text, offset, props)
}

func match(n Node, text string, offset int, props *Props) *Match {
	if offset > len(text) {
		return nil
	}

	m := matchNode(n, text, offset, props)
	if m == nil {
		return nil
	}

	a := n.attrs()
	if a.Hook != nil {
		if m = a.Hook(m, text, offset, props); m == nil {
			return nil
		}
	}
	if len(a.Modifiers) > 0 && props != nil {
		m = lookBack(m, text, a.Modifiers, props)
	}
	return m
}

func matchNode(n Node, text string, offset int, props *Props) *Match {
	switch n := n.(type) {
	case *Literal:
		if !strings.HasPrefix(text[offset:], n.Text) {
			return nil
		}
		return &Match{Start: offset, End: offset + len(n.Text), Text: n.Text}

	case *Regex:
		loc := n.re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return nil
		}
		m := &Match{Start: offset, End: offset + loc[1], Text: text[offset : offset+loc[1]]}
		if last := len(loc) - 2; last > 0 && loc[last] >= 0 {
			m.Value = text[offset+loc[last] : offset+loc[last+1]]
		}
		return m

	case *Sequence:
		start, pos := offset, offset
		for i, item := range n.Items {
			m := match(item, text, pos, props)
			if m == nil {
				return nil
			}
			if i == 0 {
				start = m.Start
			}
			pos = m.End
		}
		return &Match{Start: start, End: pos, Text: text[offset:pos]}

	case *Optional:
		saved := props.save()
		if m := match(n.Inner, text, offset, props); m != nil {
			return m
		}
		props.restore(saved)
		return &Match{Start: offset, End: offset}

	case *Capture:
		m := match(n.Inner, text, offset, props)
		if m == nil {
			return nil
		}
		if props != nil {
			if n.Whole {
				props.Set(n.Name, m)
			} else {
				props.Set(n.Name, m.Captured())
			}
		}
		return m

	case *Object:
		inner := NewProps()
		m := match(n.Inner, text, offset, inner)
		if m == nil {
			return nil
		}
		return &Match{Start: m.Start, End: m.End, Text: m.Text, Props: inner}

	case *Repeat:
		return matchRepeat(n, text, offset, props)

	case *Balanced:
		pos := offset
		for {
			if pos-offset >= n.Min && match(n.Until, text, pos, nil) != nil {
				break
			}
			if pos >= len(text) {
				return nil
			}
			if pos = SkipBalanced(text, pos); pos < 0 {
				return nil
			}
		}
		return &Match{Start: offset, End: pos, Text: text[offset:pos]}

	case *If:
		saved := props.save()
		if p := match(n.Probe, text, offset, props); p != nil {
			t := match(n.Then, text, p.End, props)
			if t == nil {
				return nil
			}
			return &Match{Start: offset, End: t.End, Text: text[offset:t.End], Value: t.Value, Props: t.Props}
		}
		props.restore(saved)
		if n.Else == nil {
			return nil
		}
		return match(n.Else, text, offset, props)

	default:
		panic(fmt.Sprintf("pattern: cannot evaluate %T", n))
	}
}

func matchRepeat(n *Repeat, text string, offset int, props *Props) *Match {
	items := []any{}
	pos := offset
	for {
		saved := props.save()
		m := match(n.Inner, text, pos, props)
		if m == nil {
			props.restore(saved)
			break
		}
		items = append(items, m.Captured())
		pos = m.End

		sep := match(n.Sep, text, pos, props)
		if sep == nil || (sep.End == pos && m.Len() == 0) {
			break
		}
		pos = sep.End
	}
	return &Match{Start: offset, End: pos, Text: text[offset:pos], Value: items}
}

// lookBack widens m over modifier keywords that precede it, separated
// by whitespace, and records each keyword found.
func lookBack(m *Match, text string, keywords []string, props *Props) *Match {
	look := m.Start
	for {
		p := look
		for p > 0 && IsSpace(text[p-1]) {
			p--
		}
		if p == look {
			break
		}
		kw := keywordBefore(text, p, keywords)
		if kw == "" {
			break
		}
		props.Modifiers = append(props.Modifiers, kw)
		look = p - len(kw)
	}
	if look == m.Start {
		return m
	}
	widened := *m
	widened.Start = look
	return &widened
}

func keywordBefore(text string, end int, keywords []string) string {
	for _, kw := range keywords {
		start := end - len(kw)
		if start < 0 || text[start:end] != kw {
			continue
		}
		if start > 0 && IsIdentByte(text[start-1]) {
			continue
		}
		return kw
	}
	return ""
}

// IsSpace reports whether c is whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// IsIdentByte reports whether c can appear inside an identifier.
func IsIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
