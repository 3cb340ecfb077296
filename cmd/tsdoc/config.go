package main

import (
	"os"
	"path/filepath"

	"github.com/dhamidi/tsdoc/workspace"
)

// loadConfig reads the configuration that applies to target, a file or
// a directory.
func loadConfig(target string) (workspace.Config, error) {
	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}
	return workspace.LoadConfig(dir)
}

// discoverAll discovers the sources of every target.
func discoverAll(targets []string, cfg workspace.Config) ([]string, error) {
	var paths []string
	for _, target := range targets {
		found, err := workspace.Discover(target, cfg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
