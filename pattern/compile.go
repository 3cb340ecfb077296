package pattern

import (
	"fmt"
	"regexp"
)

const (
	spaceSource = `\s*`
	identSource = `[_$a-zA-Z][\w$]*`
	anySource   = `[\s\S]`
)

// Grammar is a compiled node tree. It is immutable and safe for
// concurrent use.
type Grammar struct {
	root   Node
	anchor string
}

// Compile lowers a node tree into a Grammar. Whitespace and identifier
// shorthands become regexes, adjacent literal and regex items of a
// sequence are merged into one regex, and the leading anchor of the
// tree is computed. The input tree is not modified.
//
// Compile panics if a regex does not compile; grammars are program
// constants.
func Compile(n Node) *Grammar {
	root := lower(n)
	return &Grammar{root: root, anchor: leading(root)}
}

// Anchor returns the regex that matches at the start of every match of
// the grammar.
func (g *Grammar) Anchor() string { return g.anchor }

// Root returns the compiled node tree.
func (g *Grammar) Root() Node { return g.root }

func lower(n Node) Node {
	switch n := n.(type) {
	case *Literal:
		c := *n
		return &c
	case *Regex:
		return newRegex(n.Source, n.Attrs)
	case *Space:
		return newRegex(spaceSource, n.Attrs)
	case *Ident:
		return newRegex(identSource, n.Attrs)
	case *Sequence:
		return lowerSequence(n)
	case *Optional:
		return &Optional{Attrs: n.Attrs, Inner: lower(n.Inner)}
	case *Capture:
		return &Capture{Attrs: n.Attrs, Name: n.Name, Whole: n.Whole, Inner: lower(n.Inner)}
	case *Object:
		return &Object{Attrs: n.Attrs, Inner: lower(n.Inner)}
	case *Repeat:
		return &Repeat{Attrs: n.Attrs, Inner: lower(n.Inner), Sep: lower(n.Sep)}
	case *Balanced:
		return &Balanced{Attrs: n.Attrs, Until: lower(n.Until), Min: n.Min}
	case *If:
		c := &If{Attrs: n.Attrs, Probe: lower(n.Probe), Then: lower(n.Then)}
		if n.Else != nil {
			c.Else = lower(n.Else)
		}
		return c
	default:
		panic(fmt.Sprintf("pattern: unknown node %T", n))
	}
}

func lowerSequence(n *Sequence) Node {
	var items []Node
	for _, item := range n.Items {
		item = lower(item)
		if len(items) > 0 {
			if merged, ok := merge(items[len(items)-1], item); ok {
				items[len(items)-1] = merged
				continue
			}
		}
		items = append(items, item)
	}
	if len(items) == 1 && n.plain() {
		return items[0]
	}
	return &Sequence{Attrs: n.Attrs, Items: items}
}

// merge joins two adjacent leaves into one regex. Leaves carrying
// modifiers or hooks keep their own identity.
func merge(a, b Node) (Node, bool) {
	left, ok := leafSource(a)
	if !ok {
		return nil, false
	}
	right, ok := leafSource(b)
	if !ok {
		return nil, false
	}
	return newRegex("(?:"+left+")(?:"+right+")", Attrs{}), true
}

func leafSource(n Node) (string, bool) {
	if !n.attrs().plain() {
		return "", false
	}
	switch n := n.(type) {
	case *Literal:
		return regexp.QuoteMeta(n.Text), true
	case *Regex:
		return n.Source, true
	}
	return "", false
}

func newRegex(source string, attrs Attrs) *Regex {
	return &Regex{
		Attrs:  attrs,
		Source: source,
		re:     regexp.MustCompile(`\A(?:` + source + `)`),
	}
}

// leading returns the source of the regex that must match at the
// leftmost position of any match of n.
func leading(n Node) string {
	switch n := n.(type) {
	case *Literal:
		return regexp.QuoteMeta(n.Text)
	case *Regex:
		return n.Source
	case *Space:
		return spaceSource
	case *Ident:
		return identSource
	case *Sequence:
		if len(n.Items) == 0 {
			return ""
		}
		return leading(n.Items[0])
	case *Optional:
		return leading(n.Inner)
	case *Capture:
		return leading(n.Inner)
	case *Object:
		return leading(n.Inner)
	case *Repeat:
		return leading(n.Inner)
	case *If:
		return leading(n.Probe)
	case *Balanced:
		return anySource
	default:
		panic(fmt.Sprintf("pattern: unknown node %T", n))
	}
}
