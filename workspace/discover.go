package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrNoFiles is returned by Discover when no source file matches.
var ErrNoFiles = errors.New("no source files found")

// IgnoredDirs are directories never searched for sources.
var IgnoredDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	"node_modules":     true,
	"bower_components": true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"coverage":         true,
	".next":            true,
	".nuxt":            true,
	".angular":         true,
	".idea":            true,
	".vscode":          true,
}

// LoadGitignore loads .gitignore from root if it exists.
func LoadGitignore(root string) *ignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")

	if _, err := os.Stat(gitignorePath); err == nil {
		if gitignore, err := ignore.CompileIgnoreFile(gitignorePath); err == nil {
			return gitignore
		}
		log.Warningf("%s: ignoring unreadable file", gitignorePath)
	}

	return nil
}

// Discover returns the source files under root in lexical order. A root
// that is a file is returned as is. Directories in IgnoredDirs, paths
// matched by root/.gitignore and paths matched by the exclude patterns
// of cfg are skipped.
func Discover(root string, cfg Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	gitignore := LoadGitignore(root)
	exclude := ignore.CompileIgnoreLines(cfg.Generate.Exclude...)

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if info.IsDir() && IgnoredDirs[info.Name()] {
			return filepath.SkipDir
		}

		if (gitignore != nil && gitignore.MatchesPath(relPath)) || exclude.MatchesPath(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !slices.Contains(cfg.Generate.Extensions, filepath.Ext(path)) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoFiles)
	}

	sort.Strings(files)
	log.Debugf("discovered %d files under %s", len(files), root)
	return files, nil
}
