package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no astgen.toml found\nplease specify a grammar explicitly, e.g.:\n  astgen generate path/to/grammar.json"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Grammar grammarConfig `toml:"grammar"`
	Output  outputConfig  `toml:"output"`
}

type grammarConfig struct {
	File string `toml:"file"`
}

type outputConfig struct {
	File string `toml:"file"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "astgen.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadManifestConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadManifestConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("grammar") {
		return projectConfig{}, fmt.Errorf("%s: missing [grammar]", path)
	}
	if !meta.IsDefined("grammar", "file") || strings.TrimSpace(cfg.Grammar.File) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [grammar].file", path)
	}
	return cfg, nil
}

// grammarPath resolves the manifest's grammar file against the
// manifest directory.
func (m *projectManifest) grammarPath() string {
	return resolveAgainst(m.Root, m.Config.Grammar.File)
}

// outputPath resolves the optional [output].file; empty means stdout.
func (m *projectManifest) outputPath() string {
	if strings.TrimSpace(m.Config.Output.File) == "" {
		return ""
	}
	return resolveAgainst(m.Root, m.Config.Output.File)
}

func resolveAgainst(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
