package apply

import "github.com/minios-linux/transmerge/locale"

// SkipReason tells why the change filter dropped a report locale.
type SkipReason int

const (
	// SkipObsolete means nothing is missing for the locale anymore.
	SkipObsolete SkipReason = iota
	// SkipUnchanged means the report equals the current analysis.
	SkipUnchanged
)

func (r SkipReason) String() string {
	switch r {
	case SkipObsolete:
		return "obsolete"
	case SkipUnchanged:
		return "unchanged"
	}
	return "unknown"
}

// Observer receives progress events of an apply run. It also serves as the
// merge notifier, so OnAdd is called for every leaf taken from a report.
type Observer interface {
	OnRead(l locale.Locale, path string)
	OnSkip(l locale.Locale, reason SkipReason)
	OnApplyLocale(l locale.Locale)
	OnApplyTarget(path string)
	OnAdd(path string, value any)
	OnNoChanges()
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnRead(locale.Locale, string)     {}
func (NopObserver) OnSkip(locale.Locale, SkipReason) {}
func (NopObserver) OnApplyLocale(locale.Locale)      {}
func (NopObserver) OnApplyTarget(string)             {}
func (NopObserver) OnAdd(string, any)                {}
func (NopObserver) OnNoChanges()                     {}
