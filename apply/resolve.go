package apply

import (
	"errors"
	"fmt"

	"github.com/minios-linux/transmerge/locale"
	"github.com/minios-linux/transmerge/project"
)

// ErrNoDestination is returned when no source file exists for a locale.
var ErrNoDestination = errors.New("no destination file found")

// ResolveOptions describes the naming convention of source files.
type ResolveOptions struct {
	Namespaces     bool
	BaseLocale     locale.Locale
	InputDirectory string
	FilePattern    string
}

// ResolveDestinations maps namespaces to the source files receiving
// translations for l. Without namespaces the single entry is stored under
// project.DefaultNamespace, taken from the first locale-bearing file for l.
//
// With namespaces a base-style file (common.i18n.json) is a destination when
// its directory locale is l, or when l is the base locale; a file whose
// directory names l takes precedence over one admitted for being base.
func ResolveDestinations(l locale.Locale, files []string, opts ResolveOptions) (map[string]string, error) {
	dest := make(map[string]string)
	exact := make(map[string]bool)

	for _, path := range files {
		m := locale.ClassifyFileName(project.StripPattern(path, opts.FilePattern))
		switch m.Kind {
		case locale.NameBase:
			if !opts.Namespaces {
				continue
			}
			fileLocale := opts.BaseLocale
			if dl, ok := locale.DirectoryLocale(path, opts.InputDirectory); ok {
				fileLocale = dl
			}
			matches := fileLocale == l
			if !matches && l != opts.BaseLocale {
				continue
			}
			if _, taken := dest[m.Namespace]; taken && (exact[m.Namespace] || !matches) {
				continue
			}
			dest[m.Namespace] = path
			exact[m.Namespace] = matches

		case locale.NameWithLocale:
			if m.Locale != l {
				continue
			}
			ns := project.DefaultNamespace
			if opts.Namespaces {
				ns = m.Namespace
			}
			if _, taken := dest[ns]; taken && exact[ns] {
				continue
			}
			dest[ns] = path
			exact[ns] = true
		}
	}

	if len(dest) == 0 {
		return nil, fmt.Errorf("%w for locale %s", ErrNoDestination, l.Tag())
	}
	return dest, nil
}
