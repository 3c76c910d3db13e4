package model

import (
	"net/url"
	"strings"
	"time"
)

const DefaultLinkIcon = "🔗"

type Link struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Icon       string    `json:"icon"`
	Position   int       `json:"position"`
	ClickCount int64     `json:"click_count"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LinkUpdate carries the link fields an owner may change.
type LinkUpdate struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Icon     *string `json:"icon"`
	Position *int    `json:"position"`
	IsActive *bool   `json:"is_active"`
}

const MaxLinkTitleLength = 100

// ValidateNew checks a link before insert and fills its defaults.
func (l *Link) ValidateNew() error {
	l.Title = strings.TrimSpace(l.Title)
	l.URL = strings.TrimSpace(l.URL)
	if l.Title == "" || len([]rune(l.Title)) > MaxLinkTitleLength {
		return ErrInvalidLink
	}
	if !IsWebURL(l.URL) {
		return ErrInvalidURL
	}
	if l.Icon == "" {
		l.Icon = DefaultLinkIcon
	}
	l.IsActive = true
	return nil
}

// Apply validates u and copies its set fields onto l.
func (u LinkUpdate) Apply(l *Link) error {
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		if t == "" || len([]rune(t)) > MaxLinkTitleLength {
			return ErrInvalidLink
		}
		l.Title = t
	}
	if u.URL != nil {
		if !IsWebURL(strings.TrimSpace(*u.URL)) {
			return ErrInvalidURL
		}
		l.URL = strings.TrimSpace(*u.URL)
	}
	if u.Icon != nil {
		l.Icon = *u.Icon
		if l.Icon == "" {
			l.Icon = DefaultLinkIcon
		}
	}
	if u.Position != nil {
		if *u.Position < 0 {
			return ErrInvalidLink
		}
		l.Position = *u.Position
	}
	if u.IsActive != nil {
		l.IsActive = *u.IsActive
	}
	return nil
}

// IsWebURL reports whether s is an absolute http or https URL with a host.
func IsWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
