package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

//go:embed locales/*.toml
var locales embed.FS

// Supported lists the languages shipped with the binary, default first.
var Supported = []language.Tag{language.English, language.French}

// New builds a message bundle from every *.toml file found in dir of fsys.
// File names follow go-i18n conventions (en.toml, fr.toml).
func New(fsys fs.FS, dir string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("list translation folder %q: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".toml" {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(fsys, path.Join(dir, entry.Name())); err != nil {
			return nil, fmt.Errorf("load translation file %q: %w", entry.Name(), err)
		}
	}
	return bundle, nil
}

// Default returns the bundle built from the embedded locales.
func Default() (*i18n.Bundle, error) {
	return New(locales, "locales")
}

// Match picks the best supported language for an Accept-Language header
// value. Empty or unparsable headers yield LanguageEn.
func Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, idx, _ := matcher.Match(tags...)
	base, _ := Supported[idx].Base()
	return base.String()
}

var matcher = language.NewMatcher(Supported)
