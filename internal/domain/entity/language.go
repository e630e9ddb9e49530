package entity

// Language identifies one of the two platform locales.
type Language string

const (
	// LanguageES is Spanish, the platform's primary locale.
	LanguageES Language = "es"
	// LanguageZhHans is Simplified Chinese.
	LanguageZhHans Language = "zh-hans"
)

// String returns the string representation of the Language.
func (l Language) String() string {
	return string(l)
}

// IsValid checks if the Language is a valid value.
func (l Language) IsValid() bool {
	switch l {
	case LanguageES, LanguageZhHans:
		return true
	default:
		return false
	}
}

// ResolveLanguage applies the locale fallback chain:
// user language -> platform default -> Spanish.
func ResolveLanguage(userLang, platformDefault Language) Language {
	if userLang.IsValid() {
		return userLang
	}
	if platformDefault.IsValid() {
		return platformDefault
	}

	return LanguageES
}
