package locale

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		tag  string
	}{
		{in: "de", want: Locale{Language: "de"}, tag: "de"},
		{in: "pt_BR", want: Locale{Language: "pt", Country: "BR"}, tag: "pt-BR"},
		{in: "PT-br", want: Locale{Language: "pt", Country: "BR"}, tag: "pt-BR"},
		{in: "zh-Hant-TW", want: Locale{Language: "zh", Script: "Hant", Country: "TW"}, tag: "zh-Hant-TW"},
		{in: "zh_hant", want: Locale{Language: "zh", Script: "Hant"}, tag: "zh-Hant"},
		{in: "es-419", want: Locale{Language: "es", Country: "419"}, tag: "es-419"},
	}

	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
		if got.Tag() != tc.tag {
			t.Fatalf("Parse(%q).Tag() = %q, want %q", tc.in, got.Tag(), tc.tag)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "english", "de-DE-x", "1de", "d"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidLocale) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidLocale", in, err)
		}
	}
}

func TestLocaleIsComparable(t *testing.T) {
	m := map[Locale]int{MustParse("pt_BR"): 1}
	if m[MustParse("pt-BR")] != 1 {
		t.Fatal("equal locales must address the same map entry")
	}
	if !Contains([]Locale{MustParse("de"), MustParse("fr")}, MustParse("fr")) {
		t.Fatal("Contains(fr) = false, want true")
	}
	if Contains(nil, MustParse("fr")) {
		t.Fatal("Contains(nil) = true, want false")
	}
}

func TestClassifyFileName(t *testing.T) {
	tests := []struct {
		name string
		want NameMatch
	}{
		{name: "strings", want: NameMatch{Kind: NameBase, Namespace: "strings"}},
		{name: "strings_de", want: NameMatch{Kind: NameWithLocale, Namespace: "strings", Locale: MustParse("de")}},
		{name: "common-pt-BR", want: NameMatch{Kind: NameWithLocale, Namespace: "common", Locale: MustParse("pt-BR")}},
		{name: "app_zh_Hant_TW", want: NameMatch{Kind: NameWithLocale, Namespace: "app", Locale: MustParse("zh-Hant-TW")}},
		{name: "pt_BR", want: NameMatch{Kind: NameWithLocale, Locale: MustParse("pt-BR")}},
		{name: "de_AT", want: NameMatch{Kind: NameWithLocale, Locale: MustParse("de-AT")}},
		{name: "zh-Hant", want: NameMatch{Kind: NameWithLocale, Locale: MustParse("zh-Hant")}},
		{name: "strings_de_AT", want: NameMatch{Kind: NameWithLocale, Namespace: "strings", Locale: MustParse("de-AT")}},
		{name: "strings_pt_BR", want: NameMatch{Kind: NameWithLocale, Namespace: "strings", Locale: MustParse("pt-BR")}},
		{name: "strings_DE", want: NameMatch{Kind: NameUnknown}},
		{name: "my.strings", want: NameMatch{Kind: NameUnknown}},
		{name: "strings_german", want: NameMatch{Kind: NameUnknown}},
	}

	for _, tc := range tests {
		if got := ClassifyFileName(tc.name); got != tc.want {
			t.Fatalf("ClassifyFileName(%q) = %#v, want %#v", tc.name, got, tc.want)
		}
	}
}

func TestDirectoryLocale(t *testing.T) {
	root := filepath.Join("project", "i18n")

	t.Run("nearest locale directory wins", func(t *testing.T) {
		path := filepath.Join(root, "de", "fr", "common.json")
		got, ok := DirectoryLocale(path, root)
		if !ok || got != MustParse("fr") {
			t.Fatalf("DirectoryLocale() = %v, %v, want fr, true", got, ok)
		}
	})

	t.Run("skips non-locale directories", func(t *testing.T) {
		path := filepath.Join(root, "pt_BR", "screens", "home.json")
		got, ok := DirectoryLocale(path, root)
		if !ok || got != MustParse("pt-BR") {
			t.Fatalf("DirectoryLocale() = %v, %v, want pt-BR, true", got, ok)
		}
	})

	t.Run("file directly in input directory", func(t *testing.T) {
		if _, ok := DirectoryLocale(filepath.Join(root, "common.json"), root); ok {
			t.Fatal("DirectoryLocale() ok = true, want false")
		}
	})

	t.Run("does not look above input directory", func(t *testing.T) {
		path := filepath.Join("de", "i18n", "common.json")
		if _, ok := DirectoryLocale(path, filepath.Join("de", "i18n")); ok {
			t.Fatal("DirectoryLocale() ok = true, want false")
		}
	})
}
