// Package i18n translates transmerge's own user-facing messages.
//
// It wraps the gotext library. Catalogs are embedded from
// locales/{lang}/LC_MESSAGES/transmerge.po and selected at startup by Init:
//
//	i18n.Init("") // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	fmt.Println(i18n.Tf("Reading %s", path))
//	fmt.Println(i18n.N("%d key added", "%d keys added", n))
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name.
const domain = "transmerge"

var (
	po   *gotext.Locale
	lang = "en"
)

// Init selects the message catalog. If l is empty, the language is
// detected from the environment (LANGUAGE, LC_ALL, LC_MESSAGES, LANG).
func Init(l string) {
	if l == "" {
		l = detectLanguage()
	}
	lang = l

	po = gotext.NewLocaleFSWithPath(l, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, or returns it unchanged without a translation.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// Tf translates format and applies args to it.
func Tf(format string, args ...any) string {
	return fmt.Sprintf(T(format), args...)
}

// N translates a message with plural forms and formats n into it.
func N(singular, plural string, n int) string {
	var msg string
	if po == nil {
		msg = plural
		if n == 1 {
			msg = singular
		}
	} else {
		msg = po.GetN(singular, plural, n)
	}
	if strings.Contains(msg, "%d") {
		return fmt.Sprintf(msg, n)
	}
	return msg
}

// Tag returns the active message language as a language tag.
func Tag() language.Tag {
	t, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return language.English
	}
	return t
}

// detectLanguage follows GNU gettext: LANGUAGE > LC_ALL > LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			// Colon-separated list; the first entry wins.
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip encoding and modifier ("de_DE.UTF-8@euro" → "de_DE").
		if idx := strings.IndexAny(val, ".@"); idx >= 0 {
			val = val[:idx]
		}
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
