package jsdoc

import (
	"github.com/dhamidi/tsdoc/edit"
)

// Reconcile returns the insertions that add the missing parts of tags to
// the documentation comment in front of offset. Lines already carrying a
// tag are completed in place; missing tags become new lines before the
// closing line of the comment. Without a comment, a new one is created.
// A comment containing @inheritDoc is left alone unless
// opts.IgnoreInheritDoc is set.
func Reconcile(text string, offset int, tags []Tag, opts Options) []edit.Insertion {
	c := commentBefore(text, offset)

	var lines []line
	if c.exists() {
		if !opts.IgnoreInheritDoc && inheritDoc.MatchString(text[c.Start:c.End]) {
			return nil
		}
		lines = c.lines(text)
	}

	var ins, added []edit.Insertion
	for _, t := range tags {
		if l, m := findTag(lines, t); m != nil {
			ins = append(ins, complete(l, m, t)...)
			continue
		}
		added = append(added, edit.Insertion{Text: c.Indent + " * " + t.Line() + "\n", Key: t.Key})
	}
	if len(added) == 0 {
		return ins
	}

	open := edit.Insertion{Key: key(bandOpen, 0)}
	closing := edit.Insertion{Key: key(bandClose, 0)}
	var at int
	switch {
	case !c.exists():
		at = c.Start
		open.Text = c.Indent + "/**\n"
		closing.Text = c.Indent + " */\n"
	case len(lines) == 1 || !closingLine.MatchString(lines[len(lines)-1].Text):
		at = c.End - len("*/")
		open.Text = "\n"
		closing.Text = c.Indent + " "
	default:
		at = lines[len(lines)-1].Offset
	}

	for i := range added {
		added[i].Offset = at
	}
	ins = append(ins, added...)
	if open.Text != "" {
		open.Offset, closing.Offset = at, at
		ins = append(ins, open, closing)
	}
	return ins
}

// findTag returns the first comment line matching the pattern of t.
func findTag(lines []line, t Tag) (line, *match) {
	if len(lines) == 0 {
		return line{}, nil
	}
	s := tagPattern(t)
	for _, l := range lines {
		if m := s.First(l.Text); m != nil {
			return l, &match{m}
		}
	}
	return line{}, nil
}

// complete adds a missing type and missing brackets to a line that
// already carries the tag.
func complete(l line, m *match, t Tag) []edit.Insertion {
	var ins []edit.Insertion
	if t.Type != "" && !m.hasType() {
		ins = append(ins, edit.Insertion{
			Offset: l.Offset + m.tagNameEnd(),
			Text:   " {" + oneLiner(t.Type) + "}",
			Key:    t.Key,
		})
	}
	if t.Value == "" {
		return ins
	}
	value := m.value()
	if value == nil || value.Text == "" {
		return ins
	}
	if t.Value[0] == '[' && value.Text[0] != '[' {
		ins = append(ins, edit.Insertion{Offset: l.Offset + value.Start, Text: "[", Key: t.Key})
	}
	if t.Value[len(t.Value)-1] == ']' && value.Text[len(value.Text)-1] != ']' {
		ins = append(ins, edit.Insertion{Offset: l.Offset + value.End, Text: "]", Key: t.Key})
	}
	return ins
}
