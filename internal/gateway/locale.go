package gateway

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported interpretation locales.
const (
	LocaleEN = "en"
	LocaleFR = "fr"
)

var (
	supportedTags = []language.Tag{language.English, language.French}
	supportedCode = []string{LocaleEN, LocaleFR}
	localeMatcher = language.NewMatcher(supportedTags)
)

// MatchLocale returns the first supported locale matched by the given
// preferences, each either a plain tag ("fr-CA") or an Accept-Language
// header value. It falls back to English.
func MatchLocale(prefs ...string) string {
	for _, p := range prefs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := localeMatcher.Match(tags...)
		if conf != language.No {
			return supportedCode[idx]
		}
	}
	return LocaleEN
}
