// Package apply merges filled-in missing-translation reports back into a
// project's translation source files.
//
// An apply run scans the report directory, optionally drops reports that
// would change nothing, resolves the destination files of every remaining
// locale and merges each report into them in the key order of the base
// locale.
package apply

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/minios-linux/transmerge/analyze"
	"github.com/minios-linux/transmerge/config"
	"github.com/minios-linux/transmerge/format"
	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/merge"
	"github.com/minios-linux/transmerge/project"
	"github.com/minios-linux/transmerge/tree"
)

// ErrMissingInputDirectory is returned when no report directory can be
// determined from the options or the configuration.
var ErrMissingInputDirectory = project.ErrMissingInputDirectory

// Options are the per-run inputs of Apply.
type Options struct {
	// OutDir overrides the configured report directory.
	OutDir string
	// Locale restricts the run to one locale. When zero, reports that would
	// change nothing are skipped.
	Locale locale.Locale
}

// Applier applies reports to the project described by Config.
type Applier struct {
	Fs       afero.Fs
	Config   *config.Config
	Observer Observer
}

// NewApplier returns an Applier working on fs.
func NewApplier(fs afero.Fs, cfg *config.Config, obs Observer) *Applier {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Applier{Fs: fs, Config: cfg, Observer: obs}
}

// ReportDirectory returns the directory reports are read from.
func (a *Applier) ReportDirectory(opts Options) (string, error) {
	switch {
	case opts.OutDir != "":
		return opts.OutDir, nil
	case a.Config.ReportDirectory != "":
		return a.Config.ReportDirectory, nil
	case a.Config.InputDirectory != "":
		return a.Config.InputDirectory, nil
	}
	return "", ErrMissingInputDirectory
}

// Apply runs one apply pass. Files written before an error keep their new
// content.
func (a *Applier) Apply(opts Options) error {
	dir, err := a.ReportDirectory(opts)
	if err != nil {
		return err
	}

	model, err := project.Load(a.Fs, a.Config)
	if err != nil {
		return err
	}

	files, err := listFiles(a.Fs, dir)
	if err != nil {
		return err
	}

	var targets []locale.Locale
	if !opts.Locale.IsZero() {
		targets = []locale.Locale{opts.Locale}
	}

	reports, err := Scan(a.Fs, files, a.Config.ReportPrefix, targets, a.Observer)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		FilterChanges(reports, analyze.Missing(model), a.Observer)
	}

	if reports.Len() == 0 {
		a.Observer.OnNoChanges()
		return nil
	}

	for _, l := range reports.Locales() {
		report, _ := reports.Get(l)
		a.Observer.OnApplyLocale(l)
		if err := a.applyLocale(model, l, report); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyLocale(model *project.Model, l locale.Locale, report *tree.Tree) error {
	dest, err := ResolveDestinations(l, model.Paths(), ResolveOptions{
		Namespaces:     a.Config.Namespaces,
		BaseLocale:     a.Config.BaseLocale,
		InputDirectory: a.Config.InputDirectory,
		FilePattern:    a.Config.InputFilePattern,
	})
	if err != nil {
		return err
	}
	base := model.Base()

	if !a.Config.Namespaces {
		path := dest[project.DefaultNamespace]
		return a.applyFile(l, path, base[project.DefaultNamespace], report)
	}

	for _, ns := range tree.SortedKeys(dest) {
		v, ok := report.Get(ns)
		if !ok {
			continue
		}
		if !v.IsNode() {
			return fmt.Errorf("applying %s: namespace %q in report must hold translations, got %s", l.Tag(), ns, v.Kind())
		}
		if err := a.applyFile(l, dest[ns], base[ns], v.Tree()); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyFile(l locale.Locale, path string, base, report *tree.Tree) error {
	a.Observer.OnApplyTarget(path)

	existing, t, err := format.ReadFile(a.Fs, path)
	if err != nil {
		return fmt.Errorf("applying %s: %w", l.Tag(), err)
	}
	merged, err := merge.Merge("", base, report, existing, a.Observer)
	if err != nil {
		return fmt.Errorf("applying %s to %s: %w", l.Tag(), path, err)
	}
	if err := format.WriteFile(a.Fs, path, t, merged); err != nil {
		return fmt.Errorf("applying %s: %w", l.Tag(), err)
	}
	return nil
}

// listFiles returns the regular files directly inside dir, sorted by name.
func listFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading report directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
