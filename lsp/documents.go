package lsp

import (
	"sync"
)

// Documents holds the text of the documents open in the editor.
type Documents struct {
	mu    sync.RWMutex
	texts map[string]string
}

func NewDocuments() *Documents {
	return &Documents{texts: make(map[string]string)}
}

func (d *Documents) Update(path, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[path] = text
}

func (d *Documents) Remove(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.texts, path)
}

// Get returns the text of path and whether it is open.
func (d *Documents) Get(path string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.texts[path]
	return text, ok
}

func (d *Documents) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.texts)
}
