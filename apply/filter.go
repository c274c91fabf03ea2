package apply

import (
	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/tree"
)

// FilterChanges drops report locales that no longer need applying: those
// absent from analysis (nothing is missing anymore) and those whose report
// equals the analysis tree, ignoring key order. analysis is only read.
func FilterChanges(reports *Reports, analysis map[locale.Locale]*tree.Tree, obs Observer) {
	if obs == nil {
		obs = NopObserver{}
	}
	for _, l := range reports.Locales() {
		current, ok := analysis[l]
		if !ok {
			reports.Delete(l)
			obs.OnSkip(l, SkipObsolete)
			continue
		}
		report, _ := reports.Get(l)
		if tree.Equal(report, current) {
			reports.Delete(l)
			obs.OnSkip(l, SkipUnchanged)
		}
	}
}
