// Package locale parses locale identifiers and classifies translation file
// names and directories by the locale and namespace they encode.
//
// Accepted locale forms (underscore or hyphen separated):
//
//	de
//	pt-BR
//	zh_Hant_TW
//	es-419
package locale

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned when a string is not a locale identifier.
var ErrInvalidLocale = errors.New("invalid locale")

// localePattern matches language[-Script][-COUNTRY] with either separator.
const localePattern = `([a-zA-Z]{2,3})(?:[_-]([a-zA-Z]{4}))?(?:[_-]([a-zA-Z]{2}|[0-9]{3}))?`

var localeRe = regexp.MustCompile(`^` + localePattern + `$`)

// Locale is a canonical language[-Script][-COUNTRY] identifier.
// It is comparable and can be used as a map key.
type Locale struct {
	Language string
	Script   string
	Country  string
}

// Parse parses s into a canonical Locale. Casing is normalised through
// golang.org/x/text/language ("PT_br" becomes "pt-BR").
func Parse(s string) (Locale, error) {
	m := localeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidLocale, s)
	}
	return fromParts(s, m[1], m[2], m[3])
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Locale {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

func fromParts(raw, lang, script, country string) (Locale, error) {
	base, err := language.ParseBase(strings.ToLower(lang))
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, raw, err)
	}
	l := Locale{Language: base.String()}
	if script != "" {
		sc, err := language.ParseScript(script)
		if err != nil {
			return Locale{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, raw, err)
		}
		l.Script = sc.String()
	}
	if country != "" {
		rg, err := language.ParseRegion(country)
		if err != nil {
			return Locale{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, raw, err)
		}
		l.Country = rg.String()
	}
	return l, nil
}

// IsZero reports whether l is the zero Locale.
func (l Locale) IsZero() bool {
	return l.Language == ""
}

// Tag returns the canonical BCP 47-like tag, e.g. "zh-Hant-TW".
func (l Locale) Tag() string {
	parts := []string{l.Language}
	if l.Script != "" {
		parts = append(parts, l.Script)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, "-")
}

// String returns Tag().
func (l Locale) String() string {
	return l.Tag()
}

// LanguageTag converts l to a golang.org/x/text language tag.
func (l Locale) LanguageTag() language.Tag {
	t, err := language.Parse(l.Tag())
	if err != nil {
		return language.Und
	}
	return t
}

// Contains reports whether list holds l.
func Contains(list []Locale, l Locale) bool {
	for _, x := range list {
		if x == l {
			return true
		}
	}
	return false
}
