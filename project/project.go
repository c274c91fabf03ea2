// Package project discovers translation source files under the configured
// input directory and loads them into a Locale → Namespace → Tree model.
//
// Without namespaces every locale has a single tree stored under
// DefaultNamespace:
//
//	lib/i18n/strings.i18n.json     → en (base locale)
//	lib/i18n/strings_de.i18n.json  → de
//
// With namespaces each file is one namespace; base-style files take their
// locale from the nearest locale-named directory:
//
//	lib/i18n/en/common.i18n.json   → en / common
//	lib/i18n/de/common.i18n.json   → de / common
//	lib/i18n/dialogs_fr.i18n.json  → fr / dialogs
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/minios-linux/transmerge/config"
	"github.com/minios-linux/transmerge/format"
	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/tree"
)

// DefaultNamespace is the sentinel namespace used when namespaces are
// disabled. Namespace names are alphanumeric, so it never collides.
const DefaultNamespace = ""

// ErrMissingInputDirectory is returned when no input directory is configured
// or detected.
var ErrMissingInputDirectory = errors.New("no input directory configured (set input_directory in " + config.FileName + ")")

// File is one discovered translation source file.
type File struct {
	Path      string
	Locale    locale.Locale
	Namespace string
	Type      format.Type
}

// Model is the translation content of a project.
type Model struct {
	BaseLocale locale.Locale
	Namespaces bool
	// Files lists every classified source file in path order.
	Files []File
	// Translations maps locale → namespace → tree.
	Translations map[locale.Locale]map[string]*tree.Tree
}

// ---------------------------------------------------------------------------
// Discovery
// ---------------------------------------------------------------------------

// Discover returns every file below dir whose name ends in pattern, sorted
// by path.
func Discover(fs afero.Fs, dir, pattern string) ([]string, error) {
	if dir == "" {
		return nil, ErrMissingInputDirectory
	}
	var paths []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), pattern) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// StripPattern returns the file name of path without the pattern suffix,
// or without its extension when the name does not end in pattern.
//
//	StripPattern("i18n/strings_de.i18n.json", ".i18n.json") → "strings_de"
//	StripPattern("i18n/strings_de.json", ".i18n.json")      → "strings_de"
func StripPattern(path, pattern string) string {
	name := filepath.Base(path)
	if pattern != "" && strings.HasSuffix(name, pattern) && len(name) > len(pattern) {
		return strings.TrimSuffix(name, pattern)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Classify determines the locale and namespace of a source file. The second
// result is false for files following neither naming convention.
func Classify(path string, cfg *config.Config) (File, bool) {
	t, err := format.FromPath(path)
	if err != nil {
		return File{}, false
	}
	m := locale.ClassifyFileName(StripPattern(path, cfg.InputFilePattern))
	f := File{Path: path, Type: t, Namespace: DefaultNamespace}

	switch m.Kind {
	case locale.NameBase:
		f.Locale = cfg.BaseLocale
		if l, ok := locale.DirectoryLocale(path, cfg.InputDirectory); ok {
			f.Locale = l
		}
		if cfg.Namespaces {
			f.Namespace = m.Namespace
		}
	case locale.NameWithLocale:
		f.Locale = m.Locale
		if cfg.Namespaces {
			f.Namespace = m.Namespace
		}
	default:
		return File{}, false
	}
	return f, true
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load discovers and decodes every source file of the project.
func Load(fs afero.Fs, cfg *config.Config) (*Model, error) {
	paths, err := Discover(fs, cfg.InputDirectory, cfg.InputFilePattern)
	if err != nil {
		return nil, err
	}

	m := &Model{
		BaseLocale:   cfg.BaseLocale,
		Namespaces:   cfg.Namespaces,
		Translations: make(map[locale.Locale]map[string]*tree.Tree),
	}
	seen := make(map[locale.Locale]map[string]string)

	for _, path := range paths {
		if cfg.ReportPrefix != "" && strings.HasPrefix(filepath.Base(path), cfg.ReportPrefix) {
			continue
		}
		f, ok := Classify(path, cfg)
		if !ok {
			continue
		}
		if prev, dup := seen[f.Locale][f.Namespace]; dup {
			return nil, fmt.Errorf("%s: duplicate translations for %s, already loaded from %s", path, describe(f), prev)
		}

		tr, err := format.ReadFileAs(fs, path, f.Type)
		if err != nil {
			return nil, err
		}

		if m.Translations[f.Locale] == nil {
			m.Translations[f.Locale] = make(map[string]*tree.Tree)
			seen[f.Locale] = make(map[string]string)
		}
		m.Translations[f.Locale][f.Namespace] = tr
		seen[f.Locale][f.Namespace] = path
		m.Files = append(m.Files, f)
	}

	if _, ok := m.Translations[cfg.BaseLocale]; !ok {
		return nil, fmt.Errorf("no translations found for base locale %s in %s", cfg.BaseLocale, cfg.InputDirectory)
	}
	return m, nil
}

func describe(f File) string {
	if f.Namespace == DefaultNamespace {
		return f.Locale.Tag()
	}
	return f.Locale.Tag() + "/" + f.Namespace
}

// Base returns the namespace → tree map of the base locale.
func (m *Model) Base() map[string]*tree.Tree {
	return m.Translations[m.BaseLocale]
}

// Locales returns every locale of the model, base locale first, the rest
// sorted by tag.
func (m *Model) Locales() []locale.Locale {
	var rest []locale.Locale
	for l := range m.Translations {
		if l != m.BaseLocale {
			rest = append(rest, l)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Tag() < rest[j].Tag() })
	return append([]locale.Locale{m.BaseLocale}, rest...)
}

// Paths returns the paths of every loaded source file.
func (m *Model) Paths() []string {
	out := make([]string, len(m.Files))
	for i, f := range m.Files {
		out[i] = f.Path
	}
	return out
}
