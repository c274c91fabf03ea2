package apply

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/minios-linux/transmerge/analyze"
	"github.com/minios-linux/transmerge/format"
	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/tree"
)

// Reports maps locales to the translations to merge in. Locales keep the
// position of their first Set; a later Set replaces the tree.
type Reports struct {
	order []locale.Locale
	trees map[locale.Locale]*tree.Tree
}

// NewReports returns an empty Reports.
func NewReports() *Reports {
	return &Reports{trees: make(map[locale.Locale]*tree.Tree)}
}

// Set stores t for l, replacing an earlier report for the same locale.
func (r *Reports) Set(l locale.Locale, t *tree.Tree) {
	if _, ok := r.trees[l]; !ok {
		r.order = append(r.order, l)
	}
	r.trees[l] = t
}

// Get returns the report tree for l.
func (r *Reports) Get(l locale.Locale) (*tree.Tree, bool) {
	t, ok := r.trees[l]
	return t, ok
}

// Delete removes l.
func (r *Reports) Delete(l locale.Locale) {
	if _, ok := r.trees[l]; !ok {
		return
	}
	delete(r.trees, l)
	for i, x := range r.order {
		if x == l {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Locales returns the report locales in first-seen order.
func (r *Reports) Locales() []locale.Locale {
	return append([]locale.Locale(nil), r.order...)
}

// Len returns the number of locales.
func (r *Reports) Len() int {
	return len(r.order)
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

// ReportPattern matches report file names for prefix: "<prefix>.<ext>" or
// "<prefix>_<locale>.<ext>". Submatch 1 is the locale, 2 the extension.
func ReportPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(?:[_-]([a-zA-Z0-9_-]+))?\.([^.]+)$`)
}

// Scan reads the report files among files. Names not matching the report
// pattern are ignored. When targets is non-empty, other locales are skipped.
func Scan(fs afero.Fs, files []string, prefix string, targets []locale.Locale, obs Observer) (*Reports, error) {
	if obs == nil {
		obs = NopObserver{}
	}
	re := ReportPattern(prefix)
	reports := NewReports()

	wanted := func(l locale.Locale) bool {
		return len(targets) == 0 || locale.Contains(targets, l)
	}

	for _, path := range files {
		m := re.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			continue
		}
		t, ok := format.FromExt(m[2])
		if !ok {
			return nil, &format.UnsupportedFileTypeError{Path: path, Ext: m[2]}
		}
		content, err := format.ReadFileAs(fs, path, t)
		if err != nil {
			return nil, err
		}

		if m[1] != "" {
			l, err := locale.Parse(m[1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			for _, k := range content.Keys() {
				if analyze.IsMeta(k) {
					content.Delete(k)
				}
			}
			if !wanted(l) {
				continue
			}
			obs.OnRead(l, path)
			reports.Set(l, content)
			continue
		}

		for _, k := range content.Keys() {
			if analyze.IsMeta(k) {
				continue
			}
			l, err := locale.Parse(k)
			if err != nil {
				return nil, fmt.Errorf("%s: top-level key %q: %w", path, k, err)
			}
			if !wanted(l) {
				continue
			}
			v, _ := content.Get(k)
			if !v.IsNode() {
				return nil, fmt.Errorf("%s: top-level key %q must hold translations, got %s", path, k, v.Kind())
			}
			obs.OnRead(l, path)
			reports.Set(l, v.Tree())
		}
	}
	return reports, nil
}
