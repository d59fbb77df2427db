package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/julien-sobczak/nbfmt/internal/notebook"
)

// ConfigFilename is searched from the working directory upward.
const ConfigFilename = ".nbfmt.toml"

// How many parent directories to traverse before giving up the search.
const maxDepth = 10

// Note: Fields must be public for the toml package to unmarshal.
type ConfigFile struct {
	LineLength     int    `toml:"line_length"`
	SQLKeywordCase string `toml:"sql_keyword_case"`
	TwoSpaceIndent *bool  `toml:"two_space_indent"`
}

// ReadConfigFile looks for a .nbfmt.toml in the given directory and its
// parents. It returns nil without error when no file exists.
func ReadConfigFile(dir string) (*ConfigFile, error) {
	path, err := findConfigFile(dir)
	if err != nil || path == "" {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if config.SQLKeywordCase != "" &&
		config.SQLKeywordCase != string(notebook.Uppercase) &&
		config.SQLKeywordCase != string(notebook.Lowercase) {
		return nil, fmt.Errorf("parsing %s: sql_keyword_case must be %q or %q",
			path, notebook.Uppercase, notebook.Lowercase)
	}
	return &config, nil
}

func findConfigFile(dir string) (string, error) {
	for i := 0; i < maxDepth; i++ {
		path := filepath.Join(dir, ConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

// Apply overlays the file values onto a formatting config. Zero values in the
// file leave the config untouched.
func (f *ConfigFile) Apply(cfg notebook.Config) notebook.Config {
	if f == nil {
		return cfg
	}
	if f.LineLength > 0 {
		cfg.LineLength = f.LineLength
	}
	if f.SQLKeywordCase != "" {
		cfg.SQLKeywordCase = notebook.Case(f.SQLKeywordCase)
	}
	if f.TwoSpaceIndent != nil {
		cfg.TwoSpaceIndent = *f.TwoSpaceIndent
	}
	return cfg
}
