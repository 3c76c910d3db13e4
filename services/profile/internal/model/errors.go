package model

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidUpdate   = errors.New("invalid profile update")
	ErrInvalidUsername = errors.New("username must be 3-30 lowercase letters, digits or underscores")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidTheme    = errors.New("unknown theme")

	ErrLinkNotFound = errors.New("link not found")
	ErrInvalidLink  = errors.New("invalid link")
	ErrInvalidURL   = errors.New("url must be an absolute http or https address")

	ErrCustomThemeNotFound = errors.New("no custom theme saved")
	ErrInvalidCustomTheme  = errors.New("invalid custom theme")

	ErrInvalidCard = errors.New("invalid business card")

	ErrUnsupportedMedia = errors.New("file must be an audio file")
	ErrFileTooLarge     = errors.New("file too large")
)
