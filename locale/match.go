package locale

import (
	"path/filepath"
	"regexp"
	"strings"
)

// NameKind classifies a bare file name (extension already stripped).
type NameKind int

const (
	// NameUnknown is a name matching neither convention.
	NameUnknown NameKind = iota
	// NameBase is "<namespace>" with no locale in the name.
	NameBase
	// NameWithLocale is "<namespace>_<language>[_<Script>][_<COUNTRY>]".
	NameWithLocale
)

// NameMatch is the result of ClassifyFileName.
type NameMatch struct {
	Kind      NameKind
	Namespace string
	// Locale is set only for NameWithLocale.
	Locale Locale
}

// fileLocalePattern is the locale part of a file name. Unlike Parse it is
// case-sensitive (de, pt_BR, zh_Hant_TW), so "pt_BR" cannot be read as
// namespace "pt" with locale "br".
const fileLocalePattern = `([a-z]{2,3})(?:[_-]([A-Z][a-z]{3}))?(?:[_-]([A-Z]{2}|[0-9]{3}))?`

var (
	baseNameRe = regexp.MustCompile(`^([a-zA-Z0-9]+)$`)
	// localeNameRe tries "<namespace>_<locale>" first and backtracks to a
	// bare locale. baseNameRe is tried before it and claims single tokens.
	localeNameRe = regexp.MustCompile(`^(?:([a-zA-Z0-9]+)[_-])?` + fileLocalePattern + `$`)
	bareLocaleRe = regexp.MustCompile(`^` + fileLocalePattern + `$`)
)

// ClassifyFileName decides whether name (no directory, no extension) is a
// base-style namespace file or a locale-bearing file.
//
//	ClassifyFileName("strings")        → NameBase, namespace "strings"
//	ClassifyFileName("strings_de")     → NameWithLocale, "strings", de
//	ClassifyFileName("pt_BR")          → NameWithLocale, "", pt-BR
//	ClassifyFileName("app_zh-Hant-TW") → NameWithLocale, "app", zh-Hant-TW
func ClassifyFileName(name string) NameMatch {
	if m := baseNameRe.FindStringSubmatch(name); m != nil {
		return NameMatch{Kind: NameBase, Namespace: m[1]}
	}
	if m := localeNameRe.FindStringSubmatch(name); m != nil {
		if l, err := fromParts(name, m[2], m[3], m[4]); err == nil {
			return NameMatch{Kind: NameWithLocale, Namespace: m[1], Locale: l}
		}
	}
	// The namespace split named an unknown language; try the whole name.
	if m := bareLocaleRe.FindStringSubmatch(name); m != nil {
		if l, err := fromParts(name, m[1], m[2], m[3]); err == nil {
			return NameMatch{Kind: NameWithLocale, Locale: l}
		}
	}
	return NameMatch{Kind: NameUnknown}
}

// DirectoryLocale returns the locale encoded by the nearest ancestor
// directory of path, searching upwards but not above inputDir. The second
// result is false when no ancestor directory name is a locale.
//
//	DirectoryLocale("i18n/de/common.json", "i18n") → de, true
//	DirectoryLocale("i18n/common.json", "i18n")    → {}, false
func DirectoryLocale(path, inputDir string) (Locale, bool) {
	root := filepath.Clean(inputDir)
	dir := filepath.Dir(filepath.Clean(path))
	for {
		if dir == root || dir == "." || dir == string(filepath.Separator) {
			return Locale{}, false
		}
		if inputDir != "" && !isWithin(dir, root) {
			return Locale{}, false
		}
		if l, err := Parse(filepath.Base(dir)); err == nil {
			return l, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Locale{}, false
		}
		dir = parent
	}
}

func isWithin(dir, root string) bool {
	if root == "." {
		return !filepath.IsAbs(dir) && !strings.HasPrefix(dir, "..")
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
