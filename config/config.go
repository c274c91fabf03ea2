// Package config loads the .transmerge.yaml project configuration.
//
// When no .transmerge.yaml exists in the project root, defaults are used and
// the input directory is auto-detected from common translation layouts.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/transmerge/format"
	"github.com/minios-linux/transmerge/locale"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".transmerge.yaml"

// DefaultReportPrefix is the base name of missing-translation report files.
const DefaultReportPrefix = "_missing_translations"

// DefaultInputFilePattern is the suffix identifying translation source files.
const DefaultInputFilePattern = ".i18n.json"

// File is the on-disk .transmerge.yaml structure.
type File struct {
	// BaseLocale defines key structure and order for all other locales (default "en").
	BaseLocale string `yaml:"base_locale,omitempty"`
	// Namespaces stores each namespace in its own file.
	Namespaces bool `yaml:"namespaces,omitempty"`
	// InputDirectory is the translation sources root, relative to the project root.
	InputDirectory string `yaml:"input_directory,omitempty"`
	// InputFilePattern is the file name suffix of translation sources (default ".i18n.json").
	InputFilePattern string `yaml:"input_file_pattern,omitempty"`
	// ReportDirectory is where report files are read and written (default: InputDirectory).
	ReportDirectory string `yaml:"report_directory,omitempty"`
	// ReportPrefix is the report file base name (default "_missing_translations").
	ReportPrefix string `yaml:"report_prefix,omitempty"`
}

// Config is the validated configuration with paths resolved against the
// project root.
type Config struct {
	BaseLocale       locale.Locale
	Namespaces       bool
	InputDirectory   string
	InputFilePattern string
	ReportDirectory  string
	ReportPrefix     string
}

// InputFileType returns the codec implied by InputFilePattern.
func (c *Config) InputFileType() format.Type {
	t, _ := format.FromExt(filepath.Ext(c.InputFilePattern))
	return t
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the config file at path (or rootDir/.transmerge.yaml when path
// is empty) and resolves it against rootDir. A missing default config file
// is not an error; an explicitly requested one is.
func Load(fs afero.Fs, rootDir, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(rootDir, FileName)
	}

	var f File
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := decodeStrict(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := f.resolve(fs, rootDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// decodeStrict rejects keys that are not part of the schema.
func decodeStrict(data []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (f File) resolve(fs afero.Fs, rootDir string) (*Config, error) {
	// Defaults
	if f.BaseLocale == "" {
		f.BaseLocale = "en"
	}
	if f.InputFilePattern == "" {
		f.InputFilePattern = DefaultInputFilePattern
	}
	if f.ReportPrefix == "" {
		f.ReportPrefix = DefaultReportPrefix
	}

	base, err := locale.Parse(f.BaseLocale)
	if err != nil {
		return nil, fmt.Errorf("base_locale: %w", err)
	}
	if !strings.HasPrefix(f.InputFilePattern, ".") {
		return nil, fmt.Errorf("input_file_pattern %q must start with '.'", f.InputFilePattern)
	}
	if _, ok := format.FromExt(filepath.Ext(f.InputFilePattern)); !ok {
		return nil, fmt.Errorf("input_file_pattern %q must end in .json, .yaml or .yml", f.InputFilePattern)
	}
	if strings.ContainsAny(f.ReportPrefix, `/\`) {
		return nil, fmt.Errorf("report_prefix %q must be a file name", f.ReportPrefix)
	}

	cfg := &Config{
		BaseLocale:       base,
		Namespaces:       f.Namespaces,
		InputFilePattern: f.InputFilePattern,
		ReportPrefix:     f.ReportPrefix,
	}

	if f.InputDirectory != "" {
		cfg.InputDirectory = joinRoot(rootDir, f.InputDirectory)
	} else {
		cfg.InputDirectory = DetectInputDirectory(fs, rootDir, f.InputFilePattern)
	}
	if f.ReportDirectory != "" {
		cfg.ReportDirectory = joinRoot(rootDir, f.ReportDirectory)
	}

	return cfg, nil
}

func joinRoot(rootDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(rootDir, p)
}

// ---------------------------------------------------------------------------
// Auto-detection
// ---------------------------------------------------------------------------

// candidateDirs are common translation source locations, checked in order.
var candidateDirs = []string{
	filepath.Join("lib", "i18n"),
	"i18n",
	"locales",
	filepath.Join("assets", "i18n"),
	filepath.Join("public", "locales"),
	filepath.Join("src", "i18n"),
	"translations",
}

// DetectInputDirectory returns the first candidate directory under rootDir
// that contains a file ending in pattern (directly or one level down).
// Returns "" when nothing is found.
func DetectInputDirectory(fs afero.Fs, rootDir, pattern string) string {
	for _, candidate := range candidateDirs {
		dir := filepath.Join(rootDir, candidate)
		if hasPatternFile(fs, dir, pattern, 1) {
			return dir
		}
	}
	return ""
}

func hasPatternFile(fs afero.Fs, dir, pattern string, depth int) bool {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), pattern) {
			return true
		}
	}
	if depth == 0 {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() && hasPatternFile(fs, filepath.Join(dir, entry.Name()), pattern, depth-1) {
			return true
		}
	}
	return false
}
