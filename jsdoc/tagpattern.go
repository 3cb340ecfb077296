package jsdoc

import (
	"regexp"
	"sync"

	p "github.com/dhamidi/tsdoc/pattern"
)

type patternKey struct {
	name, value string
}

// tagPatterns caches compiled tag patterns by tag name and value.
var tagPatterns sync.Map

// tagPattern matches "@name {type} value" anywhere in a comment line.
// The type is optional in the line even when the tag has one, so that a
// line lacking it can be completed. An optional value may be bracketed
// or not, and a bracketed one may carry a default as in "[n=5]".
func tagPattern(t Tag) *p.Scanner {
	k := patternKey{t.Name, t.Value}
	if s, ok := tagPatterns.Load(k); ok {
		return s.(*p.Scanner)
	}
	s, _ := tagPatterns.LoadOrStore(k, compileTagPattern(t))
	return s.(*p.Scanner)
}

func compileTagPattern(t Tag) *p.Scanner {
	items := []p.Node{
		p.PropMatch("tagName", p.Re(`@`+regexp.QuoteMeta(t.Name)+`\b`)),
		p.WS(),
		p.WithHook(p.Opt(
			p.Lit("{"), p.WS(),
			p.Prop("type", p.Code(p.Seq(p.WS(), p.Lit("}")), 1)),
			p.WS(), p.Lit("}"),
		), valueNotType(t)),
		p.WS(),
	}
	if t.Value != "" {
		items = append(items, p.PropMatch("tagValue",
			p.Opt(p.Lit("["), p.WS()),
			p.WithHook(p.Lit(trimBrackets(oneLiner(t.Value))), wordEnd),
			p.Opt(p.WS(), p.Lit("="), p.Code(p.Re(`\s*\]`), 1)),
			p.Opt(p.WS(), p.Lit("]")),
		))
	}
	return p.NewScanner(p.Compile(p.Obj(items...)), nil)
}

// valueNotType gives braces back to the value when they hold the value
// itself, as in "@implements {Iface}".
func valueNotType(t Tag) p.Hook {
	value := oneLiner(t.Value)
	return func(m *p.Match, _ string, offset int, props *p.Props) *p.Match {
		if value == "" || m.Text != value {
			return m
		}
		if props != nil {
			props.Delete("type")
		}
		return &p.Match{Start: offset, End: offset}
	}
}

// wordEnd rejects a value that is only the prefix of a longer word.
func wordEnd(m *p.Match, text string, _ int, _ *p.Props) *p.Match {
	if m.End < len(text) && m.Len() > 0 && p.IsIdentByte(text[m.End-1]) && p.IsIdentByte(text[m.End]) {
		return nil
	}
	return m
}

// match is a tag line match.
type match struct {
	*p.Match
}

func (m *match) hasType() bool { return m.Props.String("type") != "" }

func (m *match) tagNameEnd() int { return m.Props.Match("tagName").End }

func (m *match) value() *p.Match { return m.Props.Match("tagValue") }
