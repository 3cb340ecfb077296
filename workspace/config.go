// Package workspace runs the documentation generator over files on disk.
//
// It finds the project configuration, discovers source files while
// honouring .gitignore, processes them in parallel and optionally keeps
// watching the tree for changes. The generator itself lives in package
// jsdoc and never touches the file system.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/tsdoc/jsdoc"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = ".tsdoc.toml"

var log = commonlog.GetLogger("tsdoc.workspace")

// Config is the content of a .tsdoc.toml file.
type Config struct {
	Generate GenerateConfig `toml:"generate"`

	// Path is the file the configuration was read from, or empty when
	// the defaults are in use.
	Path string `toml:"-"`
}

// GenerateConfig is the [generate] table.
type GenerateConfig struct {
	Extensions        []string `toml:"extensions"`
	Exclude           []string `toml:"exclude"`
	Jobs              int      `toml:"jobs"`
	RespectInheritDoc bool     `toml:"respect_inheritdoc"`
	Suffix            string   `toml:"suffix"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{Generate: GenerateConfig{
		Extensions:        []string{".ts", ".tsx"},
		Exclude:           []string{"*.d.ts"},
		RespectInheritDoc: true,
	}}
}

// Options returns the generator options selected by the configuration.
func (c Config) Options() jsdoc.Options {
	return jsdoc.Options{IgnoreInheritDoc: !c.Generate.RespectInheritDoc}
}

// FindConfig looks for ConfigFile in dir and its parents.
func FindConfig(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadConfig reads the configuration that applies to dir. Settings the
// file leaves out keep their defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path, ok := FindConfig(dir)
	if !ok {
		return cfg, nil
	}

	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warningf("%s: unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("generate", "extensions") {
		cfg.Generate.Extensions = file.Generate.Extensions
	}
	if meta.IsDefined("generate", "exclude") {
		cfg.Generate.Exclude = file.Generate.Exclude
	}
	if meta.IsDefined("generate", "jobs") {
		if file.Generate.Jobs < 0 {
			return Config{}, fmt.Errorf("%s: [generate].jobs must not be negative", path)
		}
		cfg.Generate.Jobs = file.Generate.Jobs
	}
	if meta.IsDefined("generate", "respect_inheritdoc") {
		cfg.Generate.RespectInheritDoc = file.Generate.RespectInheritDoc
	}
	if meta.IsDefined("generate", "suffix") {
		cfg.Generate.Suffix = file.Generate.Suffix
	}

	cfg.Path = path
	log.Debugf("loaded configuration from %s", path)
	return cfg, nil
}
