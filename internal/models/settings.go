// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Settings is the single user profile of the dashboard.
type Settings struct {
	Theme       Theme  `json:"theme" yaml:"theme"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	FocusText   string `json:"focusText" yaml:"focusText"`
}

// Default settings values.
const (
	DefaultDisplayName = "Zeynep"
	DefaultFocusText   = "Bugünkü odak: portfolyo & içerik."

	// UnnamedDisplayName replaces a display name saved blank.
	UnnamedDisplayName = "Kullanıcı"
)

// DefaultSettings returns the fixed default settings record.
func DefaultSettings() Settings {
	return Settings{
		Theme:       ThemeDark,
		DisplayName: DefaultDisplayName,
		FocusText:   DefaultFocusText,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	Theme       *Theme  `json:"theme,omitempty" yaml:"theme,omitempty"`
	DisplayName *string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	FocusText   *string `json:"focusText,omitempty" yaml:"focusText,omitempty"`
}
