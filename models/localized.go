package models

import "strings"

const (
	LocaleHe = "he"
	LocaleEn = "en"
)

// Localized holds a Hebrew/English pair of the same text.
type Localized struct {
	He string `gorm:"not null;default:''" json:"he"`
	En string `gorm:"not null;default:''" json:"en"`
}

// Pick returns the text for locale, falling back to the other locale when empty.
func (l Localized) Pick(locale string) string {
	if locale == LocaleEn {
		if l.En != "" {
			return l.En
		}
		return l.He
	}
	if l.He != "" {
		return l.He
	}
	return l.En
}

func (l Localized) IsEmpty() bool {
	return strings.TrimSpace(l.He) == "" && strings.TrimSpace(l.En) == ""
}

// NormalizeLocale maps anything other than "en" to the default locale.
func NormalizeLocale(locale string) string {
	if strings.EqualFold(strings.TrimSpace(locale), LocaleEn) {
		return LocaleEn
	}
	return LocaleHe
}
