package domain

import "time"

// Language is the UI language preference.
type Language string

// Languages.
const (
	LanguageEnglish Language = "english"
	LanguageRussian Language = "russian"
)

// Valid returns true if the language is a recognized value.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageRussian
}

// Theme is the UI theme preference.
type Theme string

// Themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid returns true if the theme is a recognized value.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// TextSize is the UI text size preference.
type TextSize string

// Text sizes.
const (
	TextSizeSmall    TextSize = "small"
	TextSizeStandard TextSize = "standard"
	TextSizeLarge    TextSize = "large"
)

// Valid returns true if the text size is a recognized value.
func (s TextSize) Valid() bool {
	return s == TextSizeSmall || s == TextSizeStandard || s == TextSizeLarge
}

// Profile is the local user's display identity.
type Profile struct {
	DisplayName  string    `json:"display_name"`
	AvatarSymbol string    `json:"avatar_symbol"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSettings is configuration state. It carries no business invariants
// beyond enum membership and is replaced wholesale on update.
type UserSettings struct {
	Language Language `json:"language"`
	Theme    Theme    `json:"theme"`
	TextSize TextSize `json:"text_size"`
	Profile  Profile  `json:"profile"`
}

// DefaultSettings returns the settings seeded on first run.
func DefaultSettings(now time.Time) UserSettings {
	return UserSettings{
		Language: LanguageEnglish,
		Theme:    ThemeSystem,
		TextSize: TextSizeStandard,
		Profile: Profile{
			DisplayName:  "Book Lover",
			AvatarSymbol: "person.circle",
			CreatedAt:    now,
		},
	}
}
