// Package typescript extracts class and interface declarations and their
// members from TypeScript source without parsing it.
//
// Extraction is driven by two grammars from package pattern: one for
// declarations and one for the members inside a declaration body. Both
// skip comments, so code samples in documentation are never mistaken
// for declarations. Constructs the grammars do not recognise are
// skipped silently.
package typescript

import (
	"slices"

	"github.com/dhamidi/tsdoc/pattern"
)

// Declaration is a class or interface found in a source text.
type Declaration struct {
	Kind       string // "class" or "interface"
	Name       string
	Extends    []string // several for interfaces
	Implements []string
	Modifiers  []string // in source order

	Start      int    // offset of the first modifier or the kind keyword
	Body       string // text between the braces
	BodyOffset int    // offset of Body in the source text
}

// Abstract reports whether the declaration carries the abstract keyword.
func (d *Declaration) Abstract() bool {
	return slices.Contains(d.Modifiers, "abstract")
}

// Member is a method or property of a declaration.
type Member struct {
	Name      string
	Method    bool
	Modifiers []string // in source order, including get, set and declare
	Start     int      // offset of the first modifier or the name

	// Methods
	Params     []Param
	ReturnType string

	// Properties
	Type     string
	Optional bool
	Default  string
}

// Param is a method parameter.
type Param struct {
	Name       string
	Visibility string
	Optional   bool
	Type       string
	Default    string
}

// Declarations returns the declarations in text in source order.
func Declarations(text string) []Declaration {
	var out []Declaration
	for m := range declarationScanner.All(text) {
		out = append(out, newDeclaration(m))
	}
	return out
}

// Members returns the members found in a declaration body. Offsets are
// relative to body.
func Members(body string) []Member {
	var out []Member
	for m := range memberScanner.All(body) {
		out = append(out, newMember(m))
	}
	return out
}

func newDeclaration(m *pattern.Match) Declaration {
	props := m.Props
	d := Declaration{
		Kind:       props.String("kind"),
		Name:       props.String("name"),
		Extends:    props.Strings("extends"),
		Implements: props.Strings("implements"),
		Modifiers:  sourceOrder(props.Modifiers),
		Start:      m.Start,
	}
	if body := props.Match("contents"); body != nil {
		d.Body = body.Text
		d.BodyOffset = body.Start
	}
	return d
}

func newMember(m *pattern.Match) Member {
	props := m.Props
	mem := Member{
		Name:      props.String("name"),
		Method:    props.Bool("method"),
		Modifiers: sourceOrder(props.Modifiers),
		Start:     m.Start,
		Optional:  props.Bool("optional"),
	}
	if mem.Method {
		mem.ReturnType = props.String("returnType")
		for _, param := range props.Objects("params") {
			mem.Params = append(mem.Params, Param{
				Name:       param.String("name"),
				Visibility: param.String("visibility"),
				Optional:   param.Bool("optional"),
				Type:       param.String("type"),
				Default:    param.String("default"),
			})
		}
		return mem
	}
	mem.Type = props.String("type")
	mem.Default = props.String("default")
	return mem
}

// sourceOrder reverses keywords found by looking backwards from a name.
func sourceOrder(mods []string) []string {
	if len(mods) == 0 {
		return nil
	}
	out := slices.Clone(mods)
	slices.Reverse(out)
	return out
}
