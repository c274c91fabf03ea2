package console

import (
	"path/filepath"

	"golang.org/x/text/language/display"

	"github.com/minios-linux/transmerge/apply"
	"github.com/minios-linux/transmerge/i18n"
	"github.com/minios-linux/transmerge/locale"
)

// Reporter prints the progress of an apply run. It implements apply.Observer.
type Reporter struct {
	log *Logger
	// Root shortens printed paths; empty prints them unchanged.
	Root string
	// Verbose prints every added key.
	Verbose bool

	added   int
	targets int
}

var _ apply.Observer = (*Reporter)(nil)

// NewReporter returns a Reporter printing through log.
func NewReporter(log *Logger, root string, verbose bool) *Reporter {
	return &Reporter{log: log, Root: root, Verbose: verbose}
}

func (r *Reporter) OnRead(l locale.Locale, path string) {
	r.log.Info("%s", i18n.Tf("Reading <%s> from %s", l.Tag(), r.rel(path)))
}

func (r *Reporter) OnSkip(l locale.Locale, reason apply.SkipReason) {
	switch reason {
	case apply.SkipObsolete:
		r.log.Warning("%s", i18n.Tf("Skipping <%s>: no translations are missing anymore", l.Tag()))
	case apply.SkipUnchanged:
		r.log.Warning("%s", i18n.Tf("Skipping <%s>: report has not been edited", l.Tag()))
	}
}

func (r *Reporter) OnApplyLocale(l locale.Locale) {
	if name := LocaleName(l); name != "" {
		r.log.Title("%s", i18n.Tf("Apply <%s> %s", l.Tag(), name))
		return
	}
	r.log.Title("%s", i18n.Tf("Apply <%s>", l.Tag()))
}

func (r *Reporter) OnApplyTarget(path string) {
	r.targets++
	r.log.Info("%s", i18n.Tf("Updating %s", r.rel(path)))
}

func (r *Reporter) OnAdd(path string, value any) {
	r.added++
	if r.Verbose {
		r.log.Plain("  %s %s: %v", r.log.added.Sprint("+"), path, value)
	}
}

func (r *Reporter) OnNoChanges() {
	r.log.Success("%s", i18n.T("No changes"))
}

// Summary prints the totals of the run, if anything was applied.
func (r *Reporter) Summary() {
	if r.targets == 0 {
		return
	}
	r.log.Success("%s, %s",
		i18n.N("%d key added", "%d keys added", r.added),
		i18n.N("%d file updated", "%d files updated", r.targets))
}

// Added returns the number of keys added so far.
func (r *Reporter) Added() int { return r.added }

func (r *Reporter) rel(path string) string {
	if r.Root == "" {
		return path
	}
	if rel, err := filepath.Rel(r.Root, path); err == nil {
		return rel
	}
	return path
}

// LocaleName returns the native name of l ("Deutsch" for de), or "" when
// unknown.
func LocaleName(l locale.Locale) string {
	return display.Self.Name(l.LanguageTag())
}
