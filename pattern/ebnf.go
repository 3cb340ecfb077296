package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EBNF renders a grammar as EBNF productions in the notation of
// golang.org/x/exp/ebnf, with start as the first production. Captures
// become productions named after their capture. Regexes have no EBNF
// form and are written as tokens holding their source between slashes;
// balanced spans refer to a Code production.
func EBNF(start string, n Node) string {
	w := &ebnfWriter{names: make(map[string]int)}
	w.define(start, n)
	return strings.Join(w.prods, "\n")
}

type ebnfWriter struct {
	prods []string
	names map[string]int
	code  bool
}

func (w *ebnfWriter) define(name string, n Node) string {
	name = w.unique(exportName(name))
	i := len(w.prods)
	w.prods = append(w.prods, "")
	w.prods[i] = fmt.Sprintf("%s = %s .", name, w.expr(n))
	return name
}

func (w *ebnfWriter) unique(name string) string {
	w.names[name]++
	if k := w.names[name]; k > 1 {
		return name + strconv.Itoa(k)
	}
	return name
}

func (w *ebnfWriter) expr(n Node) string {
	s := w.body(n)
	if mods := n.attrs().Modifiers; len(mods) > 0 {
		alts := make([]string, len(mods))
		for i, m := range mods {
			alts[i] = strconv.Quote(m)
		}
		s = "{ " + strings.Join(alts, " | ") + " } " + s
	}
	return s
}

func (w *ebnfWriter) body(n Node) string {
	switch n := n.(type) {
	case *Literal:
		return strconv.Quote(n.Text)
	case *Regex:
		return strconv.Quote("/" + n.Source + "/")
	case *Space:
		return strconv.Quote("/" + spaceSource + "/")
	case *Ident:
		return strconv.Quote("/" + identSource + "/")
	case *Sequence:
		if len(n.Items) == 0 {
			return `""`
		}
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = w.expr(item)
		}
		return strings.Join(parts, " ")
	case *Optional:
		return "[ " + w.expr(n.Inner) + " ]"
	case *Capture:
		return w.define(n.Name, n.Inner)
	case *Object:
		return "( " + w.expr(n.Inner) + " )"
	case *Repeat:
		item := w.expr(n.Inner)
		return "[ " + item + " { " + w.expr(n.Sep) + " " + item + " } ]"
	case *Balanced:
		if !w.code {
			w.code = true
			w.prods = append(w.prods, `Code = { "/region/" } .`)
		}
		return "Code"
	case *If:
		s := "( " + w.expr(n.Probe) + " " + w.expr(n.Then)
		if n.Else != nil {
			s += " | " + w.expr(n.Else)
		}
		return s + " )"
	default:
		panic(fmt.Sprintf("pattern: cannot render %T", n))
	}
}

// exportName capitalizes name so that the production is not lexical.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
