package typescript

import (
	"slices"
	"strings"

	p "github.com/dhamidi/tsdoc/pattern"
)

// Keywords looked up in front of a declaration. Only abstract becomes
// a documentation tag.
var declarationModifiers = []string{"abstract", "export", "default", "declare"}

// Keywords looked up in front of a member name. Accessor keywords and
// declare are part of the member but never become tags.
var memberModifiers = []string{
	"public", "protected", "private", "abstract", "static", "readonly", "async", "override",
	"get", "set", "declare",
}

// Bytes after which an identifier is part of an expression or a type,
// never a member name.
const memberStops = "@.[(,:<=|&?"

// typeParams matches a type parameter or argument list, nested up to
// three levels.
const typeParams = `<(?:[^<>]|<(?:[^<>]|<[^<>]*>)*>)*>`

// typeName matches an identifier, optionally qualified by a namespace
// and followed by type arguments.
const typeName = `[_$a-zA-Z][\w$]*(?:\.[_$a-zA-Z][\w$]*)*(?:\s*` + typeParams + `)?`

var typeList = p.Rep(p.Re(typeName), p.Seq(p.WS(), p.Lit(","), p.WS()))

var declarationNode = p.Obj(
	p.WithHook(p.WithModifiers(p.Prop("kind", p.Re(`(?:class|interface)\b`)), declarationModifiers...), keywordStart),
	p.WS(),
	p.Prop("name", p.ID()),
	p.WS(),
	p.Opt(p.Re(typeParams), p.WS()),
	p.Opt(p.Lit("extends"), p.WS(), p.Prop("extends", typeList), p.WS()),
	p.Opt(p.Lit("implements"), p.WS(), p.Prop("implements", typeList), p.WS()),
	p.Lit("{"),
	p.PropMatch("contents", p.Code(p.Lit("}"), 0)),
	p.Lit("}"),
)

// paramName is an identifier or a destructuring pattern.
var paramName = p.Cond(p.Lit("{"), p.Seq(p.Code(p.Lit("}"), 0), p.Lit("}")),
	p.Cond(p.Lit("["), p.Seq(p.Code(p.Lit("]"), 0), p.Lit("]")), p.ID()))

var paramNode = p.Obj(
	p.WS(),
	p.Opt(p.Prop("visibility", p.Re(`(?:private|protected|public|readonly)\b`)), p.WS()),
	p.Opt(p.Lit("...")),
	p.Prop("name", paramName),
	p.Prop("optional", flag("?")),
	p.WS(),
	p.Opt(p.Lit(":"), p.WS(), p.Prop("type", p.Code(p.WithHook(p.Re(`\s*[,)=]`), notArrow), 1)), p.WS()),
	p.Opt(p.Lit("="), p.WS(), p.Prop("default", p.Code(p.Re(`\s*[,)]`), 1)), p.WS()),
)

var methodNode = p.Seq(
	p.Prop("params", p.Rep(paramNode, p.Lit(","))),
	p.WS(), p.Lit(")"), p.WS(),
	p.Opt(p.Lit(":"), p.WS(), p.Prop("returnType", p.Code(p.WithHook(p.Re(`\s*(?:[;{}]|$)`), notArrowBody), 1)), p.WS()),
	p.Cond(p.Lit("{"), p.Seq(p.Code(p.Lit("}"), 0), p.Lit("}")), p.Opt(p.Lit(";"))),
)

var propertyNode = p.Seq(
	p.Prop("optional", flag("?")),
	p.Opt(p.Lit("!")),
	p.WS(),
	p.Opt(p.Lit(":"), p.WS(), p.Prop("type", p.Code(p.WithHook(p.Re(`\s*[;=]`), notArrow), 1)), p.WS()),
	p.Opt(p.Lit("="), p.WS(), p.Prop("default", p.Code(p.Re(`\s*;`), 1)), p.WS()),
	p.Lit(";"),
)

var memberNode = p.Obj(
	p.WithHook(p.WithModifiers(p.Prop("name", p.ID()), memberModifiers...), memberStart),
	p.WS(),
	p.Cond(p.Seq(p.Opt(p.Re(typeParams), p.WS()), p.WithHook(p.Lit("("), markMethod)), methodNode, propertyNode),
)

// Comments matches a block or line comment. It is the skip grammar of
// both scanners.
var commentNode = p.Re(`/\*[\s\S]*?\*/|//.*`)

var (
	declarationGrammar = p.Compile(declarationNode)
	memberGrammar      = p.Compile(memberNode)
	commentGrammar     = p.Compile(commentNode)

	declarationScanner = p.NewScanner(declarationGrammar, commentGrammar)
	memberScanner      = p.NewScanner(memberGrammar, commentGrammar)
)

// Grammar is the EBNF rendering of one of the grammars.
type Grammar struct {
	Start string
	EBNF  string
}

// Grammars returns the declaration, member and comment grammars in
// EBNF. Each one is self-contained.
func Grammars() []Grammar {
	return []Grammar{
		{Start: "Declaration", EBNF: p.EBNF("declaration", declarationNode)},
		{Start: "Member", EBNF: p.EBNF("member", memberNode)},
		{Start: "Comment", EBNF: p.EBNF("comment", commentNode)},
	}
}

// flag matches an optional literal and captures whether it was present.
func flag(text string) p.Node {
	return p.WithHook(p.Opt(p.Lit(text)), func(m *p.Match, _ string, _ int, _ *p.Props) *p.Match {
		flagged := *m
		flagged.Value = m.Len() > 0
		return &flagged
	})
}

// keywordStart rejects a keyword that is the tail of a longer word.
func keywordStart(m *p.Match, text string, _ int, _ *p.Props) *p.Match {
	if m.Start > 0 && p.IsIdentByte(text[m.Start-1]) {
		return nil
	}
	return m
}

// memberStart rejects identifiers that sit inside an expression, a type
// or a statement rather than at the start of a member.
func memberStart(m *p.Match, text string, _ int, _ *p.Props) *p.Match {
	if m.Start > 0 && p.IsIdentByte(text[m.Start-1]) {
		return nil
	}
	i := m.Start
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '\t') {
		i--
	}
	if i == 0 {
		return m
	}
	c := text[i-1]
	if strings.IndexByte(memberStops, c) >= 0 {
		return nil
	}
	if p.IsIdentByte(c) && !slices.Contains(memberModifiers, wordBefore(text, i)) {
		return nil
	}
	return m
}

func markMethod(m *p.Match, _ string, _ int, props *p.Props) *p.Match {
	if props != nil {
		props.Set("method", true)
	}
	return m
}

// notArrow rejects a terminator that is the first half of "=>".
func notArrow(m *p.Match, text string, _ int, _ *p.Props) *p.Match {
	if m.End < len(text) && text[m.End] == '>' {
		return nil
	}
	return m
}

// notArrowBody rejects a "{" that opens the object type returned by an
// arrow function type instead of the method body.
func notArrowBody(m *p.Match, text string, _ int, _ *p.Props) *p.Match {
	i := m.End - 1
	if i < 0 || text[i] != '{' {
		return m
	}
	i--
	for i > 0 && p.IsSpace(text[i]) {
		i--
	}
	if i >= 1 && text[i-1] == '=' && text[i] == '>' {
		return nil
	}
	return m
}

func wordBefore(text string, end int) string {
	start := end
	for start > 0 && p.IsIdentByte(text[start-1]) {
		start--
	}
	return text[start:end]
}
