package pattern

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var closers = [256]byte{'{': '}', '(': ')', '[': ']'}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

// FindClose returns the offset of the byte that ends the region
// starting at pos, or -1 when the text ends first.
//
// A bracket starts a region that ends at its matching closer. A quote
// starts a region that ends at the next unescaped quote of the same
// kind. Comments and regex literals are regions of their own. Any
// other byte is a region of length one. Brackets inside strings,
// comments and regex literals are not counted.
func FindClose(text string, pos int) int {
	var stack []byte
	var quote byte
	n := len(text)

	for pos < n {
		c := text[pos]
		pos++

		switch {
		case quote != 0:
			if c == '\\' {
				pos++
			} else if c == quote {
				quote = 0
			}
		case len(stack) > 0 && c == stack[len(stack)-1]:
			stack = stack[:len(stack)-1]
		case isQuote(c):
			quote = c
		case closers[c] != 0:
			stack = append(stack, closers[c])
		case c == '/' && pos < n && text[pos] == '/':
			end := strings.IndexAny(text[pos:], "\r\n")
			if end < 0 {
				pos = n
			} else {
				pos += end
			}
		case c == '/' && pos < n && text[pos] == '*':
			end := strings.Index(text[pos+1:], "*/")
			if end < 0 {
				return -1
			}
			pos += 1 + end + 2
		case c == '/':
			if end := regexLiteralEnd(text, pos); end > 0 {
				pos = end
			}
		}

		if quote == 0 && len(stack) == 0 {
			return pos - 1
		}
	}

	return -1
}

// SkipBalanced returns the offset just past the region starting at pos,
// or -1 when the text ends first.
func SkipBalanced(text string, pos int) int {
	end := FindClose(text, pos)
	if end < 0 {
		return -1
	}
	return end + 1
}

// regexLiteralEnd treats the slash just before pos as the start of a
// regex literal. It returns the offset after the closing slash when the
// body up to some unescaped slash on the same line compiles as an
// ECMAScript pattern, and -1 otherwise.
func regexLiteralEnd(text string, pos int) int {
	for end := pos + 1; end < len(text); end++ {
		c := text[end]
		if c == '\r' || c == '\n' {
			break
		}
		if c == '/' && text[end-1] != '\\' && validRegexLiteral(text[pos:end]) {
			return end + 1
		}
	}
	return -1
}

func validRegexLiteral(body string) bool {
	_, err := regexp2.Compile(body, regexp2.ECMAScript)
	return err == nil
}
