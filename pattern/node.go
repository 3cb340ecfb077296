// Package pattern provides a small declarative matcher for source text.
//
// A grammar is a tree of Nodes. Trees are built once with the
// constructor functions in this file, lowered with Compile and then
// shared read-only by every Scan. Matching never tokenizes the input:
// leaf nodes are literals or regular expressions evaluated at an exact
// offset, and Balanced nodes skip over bracketed, quoted and commented
// regions with FindClose.
package pattern

import "regexp"

// Node is the interface implemented by all grammar nodes.
type Node interface {
	attrs() *Attrs
}

// Hook inspects a successful match of the node it is attached to. It
// returns the match to use in its place, or nil to reject the match.
// Hooks may record values in props, which is nil when the grammar is
// evaluated without an accumulator.
type Hook func(m *Match, text string, offset int, props *Props) *Match

// Attrs holds the behaviour shared by every node kind.
type Attrs struct {
	// Modifiers are keywords looked up backwards from the start of a
	// match. Each keyword found is recorded in the accumulator and the
	// match is widened to include it.
	Modifiers []string
	Hook      Hook
}

func (a *Attrs) attrs() *Attrs { return a }

func (a *Attrs) plain() bool { return len(a.Modifiers) == 0 && a.Hook == nil }

// Literal matches its text exactly.
type Literal struct {
	Attrs
	Text string
}

// Regex matches a regular expression anchored at the current offset.
type Regex struct {
	Attrs
	Source string

	re *regexp.Regexp
}

// Space matches any run of whitespace, including none. Compile lowers
// it to a Regex.
type Space struct {
	Attrs
}

// Ident matches an identifier. Compile lowers it to a Regex.
type Ident struct {
	Attrs
}

// Sequence matches its items one after another.
type Sequence struct {
	Attrs
	Items []Node
}

// Optional matches its inner node or the empty string.
type Optional struct {
	Attrs
	Inner Node
}

// Capture binds the value of its inner match under Name in the
// enclosing accumulator. With Whole set the complete *Match is bound
// instead of its value.
type Capture struct {
	Attrs
	Name  string
	Whole bool
	Inner Node
}

// Object matches its inner node against a fresh accumulator and
// reports that accumulator as its value.
type Object struct {
	Attrs
	Inner Node
}

// Repeat matches Inner as many times as possible, with Sep between
// consecutive items. It never fails.
type Repeat struct {
	Attrs
	Inner Node
	Sep   Node
}

// Balanced consumes source text until Until matches and at least Min
// bytes were consumed. Brackets, strings, comments and regex literals
// are skipped as units, so Until is never tested inside them.
type Balanced struct {
	Attrs
	Until Node
	Min   int
}

// If matches Then after Probe when Probe matches, and Else at the
// original offset otherwise.
type If struct {
	Attrs
	Probe Node
	Then  Node
	Else  Node
}

// Lit returns a Literal node.
func Lit(text string) Node { return &Literal{Text: text} }

// Re returns a Regex node. The expression uses RE2 syntax.
func Re(source string) Node { return &Regex{Source: source} }

// WS returns a node matching optional whitespace.
func WS() Node { return &Space{} }

// ID returns a node matching an identifier.
func ID() Node { return &Ident{} }

// Seq returns a Sequence node.
func Seq(items ...Node) Node { return &Sequence{Items: items} }

// Opt returns an Optional node. Several arguments are wrapped in a
// Sequence.
func Opt(items ...Node) Node { return &Optional{Inner: one(items)} }

// Prop returns a Capture node binding the value of inner under name.
func Prop(name string, items ...Node) Node { return &Capture{Name: name, Inner: one(items)} }

// PropMatch returns a Capture node binding the whole match under name.
func PropMatch(name string, items ...Node) Node {
	return &Capture{Name: name, Whole: true, Inner: one(items)}
}

// Obj returns an Object node.
func Obj(items ...Node) Node { return &Object{Inner: one(items)} }

// Rep returns a Repeat node.
func Rep(inner, sep Node) Node { return &Repeat{Inner: inner, Sep: sep} }

// Code returns a Balanced node that stops in front of until.
func Code(until Node, min int) Node { return &Balanced{Until: until, Min: min} }

// Cond returns an If node. elseNode may be nil.
func Cond(probe, then, elseNode Node) Node { return &If{Probe: probe, Then: then, Else: elseNode} }

// WithModifiers attaches backward-lookup keywords to n and returns it.
func WithModifiers(n Node, keywords ...string) Node {
	n.attrs().Modifiers = keywords
	return n
}

// WithHook attaches a post-match hook to n and returns it.
func WithHook(n Node, h Hook) Node {
	n.attrs().Hook = h
	return n
}

func one(items []Node) Node {
	if len(items) == 1 {
		return items[0]
	}
	return Seq(items...)
}
