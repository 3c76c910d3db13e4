package model

import (
	"regexp"
	"strings"
	"time"
)

// Theme is one of the preset page themes.
type Theme string

const (
	ThemeNeonPurple Theme = "neon-purple"
	ThemeDark       Theme = "dark"
	ThemeCyanNeon   Theme = "cyan-neon"
	ThemeSunset     Theme = "sunset"

	DefaultTheme = ThemeNeonPurple
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeNeonPurple, ThemeDark, ThemeCyanNeon, ThemeSunset:
		return true
	}
	return false
}

type Profile struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url"`
	Theme        Theme     `json:"theme"`
	ThemeSongURL string    `json:"theme_song_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate carries the fields a user may change. Nil means unchanged.
type ProfileUpdate struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	Theme       *Theme  `json:"theme"`
}

const (
	MaxDisplayNameLength = 60
	MaxBioLength         = 300
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// NormalizeUsername lowercases and trims a username.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidUsername reports whether s is 3 to 30 of a-z, 0-9 and underscore.
func ValidUsername(s string) bool { return usernamePattern.MatchString(s) }

// Apply validates u and copies its set fields onto p.
func (u ProfileUpdate) Apply(p *Profile) error {
	if u.Username != nil {
		name := NormalizeUsername(*u.Username)
		if !ValidUsername(name) {
			return ErrInvalidUsername
		}
		p.Username = name
	}
	if u.DisplayName != nil {
		if len([]rune(*u.DisplayName)) > MaxDisplayNameLength {
			return ErrInvalidUpdate
		}
		p.DisplayName = strings.TrimSpace(*u.DisplayName)
	}
	if u.Bio != nil {
		if len([]rune(*u.Bio)) > MaxBioLength {
			return ErrInvalidUpdate
		}
		p.Bio = strings.TrimSpace(*u.Bio)
	}
	if u.AvatarURL != nil {
		if *u.AvatarURL != "" && !IsWebURL(*u.AvatarURL) {
			return ErrInvalidURL
		}
		p.AvatarURL = *u.AvatarURL
	}
	if u.Theme != nil {
		if !u.Theme.Valid() {
			return ErrInvalidTheme
		}
		p.Theme = *u.Theme
	}
	return nil
}
