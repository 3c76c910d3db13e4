package theme

import (
	"regexp"
	"strings"
)

// Styles is the flat styling contract some clients still read. It is
// derived from a Descriptor so both shapes always agree.
type Styles struct {
	BackgroundColor    string `json:"backgroundColor"`
	BackgroundGradient string `json:"backgroundGradient,omitempty"`
	TextColor          string `json:"textColor"`
	AccentColor        string `json:"accentColor"`
	CardBackground     string `json:"cardBackground"`
	CardBorder         string `json:"cardBorder"`
	FontFamily         string `json:"fontFamily"`
	BorderRadius       string `json:"borderRadius"`
	ButtonStyle        string `json:"buttonStyle"`
}

var firstColor = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b|rgba?\([^)]*\)`)

// StylesFrom flattens d.
func StylesFrom(d Descriptor) Styles {
	s := Styles{
		BackgroundColor: d.Colors.Background,
		TextColor:       d.Colors.Text,
		AccentColor:     d.Colors.Accent,
		CardBackground:  d.Colors.CardBg,
		CardBorder:      d.Colors.CardBorder,
		FontFamily:      d.Fonts.Body,
		BorderRadius:    d.Layout.CardRadius,
		ButtonStyle:     d.Layout.CardStyle,
	}

	if strings.Contains(d.Colors.Background, "gradient(") {
		s.BackgroundGradient = d.Colors.Background
		s.BackgroundColor = firstColor.FindString(d.Colors.Background)
		if s.BackgroundColor == "" {
			s.BackgroundColor = d.Colors.Secondary
		}
	}

	return s
}
