package pattern

import (
	"iter"
	"regexp"
)

// Scanner finds successive non-overlapping matches of a grammar. When a
// skip grammar is set, regions it matches are stepped over and never
// searched for the primary grammar.
type Scanner struct {
	grammar *Grammar
	skip    *Grammar
	scan    *regexp.Regexp
}

// NewScanner returns a Scanner for g. skip may be nil.
func NewScanner(g, skip *Grammar) *Scanner {
	source := g.anchor
	if skip != nil {
		source = "(?:" + g.anchor + ")|(?:" + skip.anchor + ")"
	}
	return &Scanner{
		grammar: g,
		skip:    skip,
		scan:    regexp.MustCompile(source),
	}
}

// All returns the matches of the grammar in text, in order. Candidate
// offsets are the hits of the leading anchor; after a failed candidate
// the search resumes behind the anchor hit.
func (s *Scanner) All(text string) iter.Seq[*Match] {
	return func(yield func(*Match) bool) {
		pos := 0
		for pos <= len(text) {
			loc := s.scan.FindStringIndex(text[pos:])
			if loc == nil {
				return
			}
			hit, next := pos+loc[0], pos+loc[1]
			if next == hit {
				next++
			}

			if s.skip != nil {
				if m := s.skip.Match(text, hit); m != nil {
					pos = max(m.End, hit+1)
					continue
				}
			}

			if m := s.grammar.Match(text, hit); m != nil {
				if !yield(m) {
					return
				}
				pos = max(m.End, hit+1)
				continue
			}

			pos = next
		}
	}
}

// Find collects every match of the grammar in text.
func (s *Scanner) Find(text string) []*Match {
	var out []*Match
	for m := range s.All(text) {
		out = append(out, m)
	}
	return out
}

// First returns the first match of the grammar in text, or nil.
func (s *Scanner) First(text string) *Match {
	for m := range s.All(text) {
		return m
	}
	return nil
}
