// Package jsdoc adds JSDoc tags to the documentation comments of
// TypeScript classes, interfaces and their members.
//
// Generation never removes or rewrites existing text. Each comment is
// completed with the tags its declaration needs, and declarations
// without a comment get a new one. Running the generator on its own
// output changes nothing.
package jsdoc

import (
	"github.com/dhamidi/tsdoc/edit"
	"github.com/dhamidi/tsdoc/typescript"
)

// Options control generation.
type Options struct {
	// IgnoreInheritDoc completes comments that contain @inheritDoc
	// instead of leaving them untouched.
	IgnoreInheritDoc bool
}

// File is a named source text and its augmented form.
type File struct {
	Name      string
	Contents  string
	Augmented string
}

// Generate returns text with documentation tags added.
func Generate(text string) string {
	return GenerateWith(text, Options{})
}

// GenerateWith is like Generate with explicit options.
func GenerateWith(text string, opts Options) string {
	return edit.Apply(text, Insertions(text, opts))
}

// GenerateFiles sets Augmented for every file.
func GenerateFiles(files []*File, opts Options) {
	for _, f := range files {
		f.Augmented = GenerateWith(f.Contents, opts)
	}
}

// Insertions returns the edits Generate applies to text. Offsets refer
// to text.
func Insertions(text string, opts Options) []edit.Insertion {
	var ins []edit.Insertion
	for _, d := range typescript.Declarations(text) {
		ins = append(ins, Reconcile(text, d.Start, DeclarationTags(&d), opts)...)

		for _, m := range typescript.Members(d.Body) {
			for _, in := range Reconcile(d.Body, m.Start, MemberTags(&m, d.Name), opts) {
				in.Offset += d.BodyOffset
				ins = append(ins, in)
			}
		}
	}
	return ins
}
