package jsdoc

import (
	"regexp"
	"strings"

	"github.com/dhamidi/tsdoc/pattern"
)

// comment locates the block comment in front of a declaration. When
// there is none, Start == End is the position where a new comment is
// inserted.
type comment struct {
	Start  int
	End    int
	Indent string
}

func (c comment) exists() bool { return c.End > c.Start }

// commentBefore finds the block comment that ends right before pos, or
// before the decorators in front of pos, separated from it by whitespace
// only. Without one, it returns the start of the line's indentation at
// the first decorator or at pos.
func commentBefore(text string, pos int) comment {
	pos = decoratorsStart(text, pos)
	i := pos - 1
	for i > 0 && pattern.IsSpace(text[i]) {
		i--
	}

	if i >= 3 && text[i-1] == '*' && text[i] == '/' {
		end := i + 1
		if start := strings.LastIndex(text[:i-1], "/*"); start >= 0 {
			return comment{Start: start, End: end, Indent: indentBefore(text, start)}
		}
	}

	start := pos - indentLen(text, pos)
	return comment{Start: start, End: start, Indent: text[start:pos]}
}

// decoratorsStart returns the offset of the "@" of the first decorator
// in the run of decorators directly in front of pos, or pos when there
// is none.
func decoratorsStart(text string, pos int) int {
	for {
		i := pos
		for i > 0 && pattern.IsSpace(text[i-1]) {
			i--
		}
		if i > 0 && text[i-1] == ')' {
			if i = openParen(text, i-1); i < 0 {
				return pos
			}
		}
		j := i
		for j > 0 && (pattern.IsIdentByte(text[j-1]) || text[j-1] == '.') {
			j--
		}
		if j == i || j == 0 || text[j-1] != '@' {
			return pos
		}
		pos = j - 1
	}
}

// openParen returns the offset of the "(" closed by the ")" at end, or
// -1.
func openParen(text string, end int) int {
	depth := 0
	for i := end; i >= 0; i-- {
		switch text[i] {
		case ')', ']', '}':
			depth++
		case '(', '[', '{':
			depth--
			if depth > 0 {
				continue
			}
			if text[i] == '(' && pattern.FindClose(text, i) == end {
				return i
			}
			return -1
		}
	}
	return -1
}

// indentBefore returns the spaces and tabs directly in front of pos.
func indentBefore(text string, pos int) string {
	return text[pos-indentLen(text, pos) : pos]
}

func indentLen(text string, pos int) int {
	n := 0
	for pos-n > 0 && (text[pos-n-1] == ' ' || text[pos-n-1] == '\t') {
		n++
	}
	return n
}

var (
	inheritDoc  = regexp.MustCompile(`(?i)@inheritdoc`)
	commentLine = regexp.MustCompile(`(?m)^[^\r\n]+`)
	closingLine = regexp.MustCompile(`^\s*\*/$`)
)

// line is a line of a comment with its offset in the source text.
type line struct {
	Offset int
	Text   string
}

func (c comment) lines(text string) []line {
	body := text[c.Start:c.End]
	var out []line
	for _, loc := range commentLine.FindAllStringIndex(body, -1) {
		out = append(out, line{Offset: c.Start + loc[0], Text: body[loc[0]:loc[1]]})
	}
	return out
}
