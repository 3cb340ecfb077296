package jsdoc

import (
	"regexp"
	"strings"

	"github.com/dhamidi/tsdoc/edit"
	"github.com/dhamidi/tsdoc/typescript"
)

// Sort bands. Within a comment, new lines appear in band order.
const (
	bandOpen     = 0
	bandIdentity = 10 // @class, @interface, @method, @property
	bandModifier = 20 // @abstract, @public, ...
	bandRelation = 30 // @extends, @constructs, @optional
	bandList     = 40 // @implements, @param, @default
	bandReturns  = 70
	bandClose    = 99
)

// Tag is a documentation tag required for a declaration or member.
type Tag struct {
	Name  string
	Value string // may be bracketed, as in "[name]" for optional params
	Type  string
	Key   edit.SortKey
}

// Line renders the tag as the text of a comment line, without the
// leading " * ".
func (t Tag) Line() string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(t.Name)
	if t.Type != "" {
		b.WriteString(" {")
		b.WriteString(oneLiner(t.Type))
		b.WriteString("}")
	}
	if t.Value != "" {
		b.WriteString(" ")
		b.WriteString(oneLiner(t.Value))
	}
	return b.String()
}

func key(band, index int) edit.SortKey {
	return edit.SortKey{Band: band, Index: index}
}

// DeclarationTags returns the tags a class or interface needs: identity,
// one extends per base, one implements per interface and abstract.
func DeclarationTags(d *typescript.Declaration) []Tag {
	tags := []Tag{{Name: d.Kind, Value: d.Name, Key: key(bandIdentity, 0)}}
	for i, base := range d.Extends {
		tags = append(tags, Tag{Name: "extends", Value: base, Key: key(bandRelation, i)})
	}
	for i, iface := range d.Implements {
		tags = append(tags, Tag{Name: "implements", Value: "{" + iface + "}", Key: key(bandList, i)})
	}
	if d.Abstract() {
		tags = append(tags, Tag{Name: "abstract", Key: key(bandModifier, 0)})
	}
	return tags
}

// MemberTags returns the tags a method or property of the declaration
// named className needs.
func MemberTags(m *typescript.Member, className string) []Tag {
	var tags []Tag
	if m.Method {
		returnType := m.ReturnType
		tags = append(tags, Tag{Name: "method", Value: m.Name, Key: key(bandIdentity, 0)})
		if m.Name == "constructor" {
			tags = append(tags, Tag{Name: "constructs", Value: className, Key: key(bandRelation, 0)})
			returnType = className
		}
		for i, p := range m.Params {
			value := p.Name
			if p.Optional {
				value = "[" + value + "]"
			}
			tags = append(tags, Tag{Name: "param", Value: value, Type: or(p.Type, "any"), Key: key(bandList, i)})
		}
		tags = append(tags, Tag{Name: "returns", Type: or(returnType, "void"), Key: key(bandReturns, 0)})
	} else {
		tags = append(tags, Tag{Name: "property", Value: m.Name, Type: or(m.Type, "any"), Key: key(bandIdentity, 0)})
		if m.Optional {
			tags = append(tags, Tag{Name: "optional", Key: key(bandRelation, 0)})
		}
		if m.Default != "" {
			tags = append(tags, Tag{Name: "default", Value: m.Default, Key: key(bandList, 0)})
		}
	}
	for i, mod := range m.Modifiers {
		if untagged[mod] {
			continue
		}
		tags = append(tags, Tag{Name: mod, Key: key(bandModifier, i)})
	}
	return tags
}

// untagged are member keywords that have no tag of their own.
var untagged = map[string]bool{"get": true, "set": true, "declare": true}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var spaceRun = regexp.MustCompile(`\s+`)

// oneLiner collapses every run of whitespace to a single space.
func oneLiner(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

// trimBrackets strips the brackets of an optional value.
func trimBrackets(s string) string {
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return s[1 : len(s)-1]
	}
	return s
}
