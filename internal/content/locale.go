package content

import "strings"

// Supported locales. Anything unrecognized falls back to English.
const (
	LocaleEN = "en"
	LocalePL = "pl"
)

// NormalizeLocale maps a request locale onto a supported one.
func NormalizeLocale(locale string) string {
	if strings.EqualFold(strings.TrimSpace(locale), LocalePL) {
		return LocalePL
	}
	return LocaleEN
}

func pick(locale, en, pl string) string {
	if locale == LocalePL {
		return pl
	}
	return en
}

func pickList(locale string, en, pl []string) []string {
	if locale == LocalePL {
		return pl
	}
	return en
}
