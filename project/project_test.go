package project

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/minios-linux/transmerge/config"
	"github.com/minios-linux/transmerge/locale"
)

func newConfig(namespaces bool) *config.Config {
	return &config.Config{
		BaseLocale:       locale.MustParse("en"),
		Namespaces:       namespaces,
		InputDirectory:   "/i18n",
		InputFilePattern: ".i18n.json",
		ReportPrefix:     config.DefaultReportPrefix,
	}
}

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile(%s): %v", path, err)
		}
	}
	return fs
}

func TestStripPattern(t *testing.T) {
	tests := []struct {
		path, pattern, want string
	}{
		{"/i18n/strings_de.i18n.json", ".i18n.json", "strings_de"},
		{"/i18n/strings_de.json", ".i18n.json", "strings_de"},
		{"/i18n/common.yaml", ".yaml", "common"},
		{"/i18n/.i18n.json", ".i18n.json", ".i18n"},
	}
	for _, tt := range tests {
		if got := StripPattern(tt.path, tt.pattern); got != tt.want {
			t.Fatalf("StripPattern(%q, %q) = %q, want %q", tt.path, tt.pattern, got, tt.want)
		}
	}
}

func TestDiscover(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/i18n/strings_de.i18n.json":  "{}",
		"/i18n/strings.i18n.json":     "{}",
		"/i18n/sub/x_fr.i18n.json":    "{}",
		"/i18n/readme.md":             "",
		"/i18n/.cache/y.i18n.json":    "{}",
		"/other/strings_it.i18n.json": "{}",
	})

	got, err := Discover(fs, "/i18n", ".i18n.json")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	want := []string{
		filepath.Join("/i18n", "strings.i18n.json"),
		filepath.Join("/i18n", "strings_de.i18n.json"),
		filepath.Join("/i18n", "sub", "x_fr.i18n.json"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Discover() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Discover(fs, "", ".i18n.json"); !errors.Is(err, ErrMissingInputDirectory) {
		t.Fatalf("Discover(\"\") error = %v, want ErrMissingInputDirectory", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		namespaces bool
		path       string
		wantLocale string
		wantNS     string
		wantOK     bool
	}{
		{"base file", false, "/i18n/strings.i18n.json", "en", DefaultNamespace, true},
		{"locale file", false, "/i18n/strings_de.i18n.json", "de", DefaultNamespace, true},
		{"locale file with country", false, "/i18n/strings_pt-BR.i18n.json", "pt-BR", DefaultNamespace, true},
		{"namespace in base dir", true, "/i18n/common.i18n.json", "en", "common", true},
		{"namespace in locale dir", true, "/i18n/de/common.i18n.json", "de", "common", true},
		{"namespace locale file", true, "/i18n/dialogs_fr.i18n.json", "fr", "dialogs", true},
		{"unrecognised name", true, "/i18n/my file.i18n.json", "", "", false},
		{"unsupported extension", false, "/i18n/strings.i18n.txt", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Classify(tt.path, newConfig(tt.namespaces))
			if ok != tt.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if f.Locale.Tag() != tt.wantLocale {
				t.Fatalf("Classify(%q) locale = %q, want %q", tt.path, f.Locale.Tag(), tt.wantLocale)
			}
			if f.Namespace != tt.wantNS {
				t.Fatalf("Classify(%q) namespace = %q, want %q", tt.path, f.Namespace, tt.wantNS)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/i18n/en/common.i18n.json":             `{"hello": "Hello", "bye": "Bye"}`,
		"/i18n/en/dialogs.i18n.json":            `{"ok": "OK"}`,
		"/i18n/de/common.i18n.json":             `{"hello": "Hallo"}`,
		"/i18n/dialogs_fr.i18n.json":            `{"ok": "D'accord"}`,
		"/i18n/_missing_translations.i18n.json": `{"@@info": ["generated"]}`,
	})

	m, err := Load(fs, newConfig(true))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var tags []string
	for _, l := range m.Locales() {
		tags = append(tags, l.Tag())
	}
	if diff := cmp.Diff([]string{"en", "de", "fr"}, tags); diff != "" {
		t.Fatalf("Locales() mismatch (-want +got):\n%s", diff)
	}

	base := m.Base()
	if len(base) != 2 || base["common"].Len() != 2 || base["dialogs"].Len() != 1 {
		t.Fatalf("Base() = %v, want common(2) and dialogs(1)", base)
	}
	de := m.Translations[locale.MustParse("de")]
	if v, _ := de["common"].Get("hello"); v.Scalar() != "Hallo" {
		t.Fatalf("de/common.hello = %v, want Hallo", v.Scalar())
	}
	if len(m.Paths()) != 4 {
		t.Fatalf("Paths() = %v, want 4 source files (report file excluded)", m.Paths())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		fs := writeFiles(t, map[string]string{
			"/i18n/strings.i18n.json":    `{}`,
			"/i18n/strings_de.i18n.json": `{}`,
			"/i18n/other_de.i18n.json":   `{}`,
		})
		_, err := Load(fs, newConfig(false))
		if err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Fatalf("Load() error = %v, want duplicate error", err)
		}
	})

	t.Run("no base locale", func(t *testing.T) {
		fs := writeFiles(t, map[string]string{"/i18n/strings_de.i18n.json": `{}`})
		if _, err := Load(fs, newConfig(false)); err == nil {
			t.Fatal("expected error without base locale translations")
		}
	})

	t.Run("malformed source", func(t *testing.T) {
		fs := writeFiles(t, map[string]string{"/i18n/strings.i18n.json": `{"a":`})
		_, err := Load(fs, newConfig(false))
		if err == nil || !strings.Contains(err.Error(), "strings.i18n.json") {
			t.Fatalf("Load() error = %v, want error naming the file", err)
		}
	})
}
