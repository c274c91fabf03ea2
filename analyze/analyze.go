// Package analyze computes the translations missing from each secondary
// locale and writes them as report files for translators to fill in.
//
// A combined report holds every locale under its own top-level key:
//
//	{
//	  "@@info": ["..."],
//	  "de": {"nav": {"about": "About"}},
//	  "fr": {"title": "Title"}
//	}
//
// A split report holds one locale per file (_missing_translations_de.json).
package analyze

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/minios-linux/transmerge/format"
	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/project"
	"github.com/minios-linux/transmerge/tree"
)

// MetaPrefix marks top-level report keys that carry metadata rather than
// translations.
const MetaPrefix = "@@"

// InfoKey holds the instructions written at the top of every report.
const InfoKey = MetaPrefix + "info"

// IsMeta reports whether key is a metadata key.
func IsMeta(key string) bool {
	return strings.HasPrefix(key, MetaPrefix)
}

// ---------------------------------------------------------------------------
// Analysis
// ---------------------------------------------------------------------------

// Missing returns, per secondary locale, every key the base locale defines
// and the locale lacks, with the base value. With namespaces the result is
// nested under the namespace name. Locales with nothing missing are absent.
func Missing(m *project.Model) map[locale.Locale]*tree.Tree {
	base := m.Base()
	namespaces := tree.SortedKeys(base)
	out := make(map[locale.Locale]*tree.Tree)

	for _, l := range m.Locales() {
		if l == m.BaseLocale {
			continue
		}
		translations := m.Translations[l]
		result := tree.New()
		for _, ns := range namespaces {
			diff := missingIn(base[ns], translations[ns])
			if diff.Len() == 0 {
				continue
			}
			if !m.Namespaces {
				result = diff
				continue
			}
			result.Set(ns, tree.Node(diff))
		}
		if result.Len() > 0 {
			out[l] = result
		}
	}
	return out
}

// missingIn returns the keys of base absent from target, in base order.
// Keys whose kind differs between the two are left to the merge to report.
func missingIn(base, target *tree.Tree) *tree.Tree {
	out := tree.New()
	for _, k := range base.Keys() {
		bv, _ := base.Get(k)
		tv, ok := target.Get(k)
		switch {
		case !ok:
			out.Set(k, bv.Clone())
		case bv.IsNode() && tv.IsNode():
			if sub := missingIn(bv.Tree(), tv.Tree()); sub.Len() > 0 {
				out.Set(k, tree.Node(sub))
			}
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

// ReportOptions controls where and how reports are written.
type ReportOptions struct {
	Dir    string
	Prefix string
	Type   format.Type
	// Split writes one file per locale instead of a combined file.
	Split bool
}

// ReportPath returns the path of the report for l, or of the combined
// report when l is the zero Locale.
func ReportPath(opts ReportOptions, l locale.Locale) string {
	name := opts.Prefix
	if !l.IsZero() {
		name += "_" + l.Tag()
	}
	return filepath.Join(opts.Dir, name+"."+string(opts.Type))
}

// WriteReports writes the missing translations and returns the written
// paths. The combined report is always written, so an outdated one is
// replaced even when nothing is missing.
func WriteReports(fs afero.Fs, m *project.Model, missing map[locale.Locale]*tree.Tree, opts ReportOptions) ([]string, error) {
	var written []string

	if !opts.Split {
		report := tree.New()
		report.SetLeaf(InfoKey, info(m.BaseLocale, locale.Locale{}))
		for _, l := range m.Locales() {
			if t, ok := missing[l]; ok {
				report.Set(l.Tag(), tree.Node(t))
			}
		}
		path := ReportPath(opts, locale.Locale{})
		if err := format.WriteFile(fs, path, opts.Type, report); err != nil {
			return nil, err
		}
		return append(written, path), nil
	}

	for _, l := range m.Locales() {
		t, ok := missing[l]
		if !ok {
			continue
		}
		report := tree.New()
		report.SetLeaf(InfoKey, info(m.BaseLocale, l))
		for _, k := range t.Keys() {
			v, _ := t.Get(k)
			report.Set(k, v)
		}
		path := ReportPath(opts, l)
		if err := format.WriteFile(fs, path, opts.Type, report); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func info(base, l locale.Locale) []any {
	target := "<locale>"
	if !l.IsZero() {
		target = l.Tag()
	}
	return []any{
		fmt.Sprintf("Here are translations that exist in <%s> but not in secondary locales.", base.Tag()),
		fmt.Sprintf("After editing this file, run 'transmerge apply --locale=%s' to apply the new translations.", target),
	}
}
