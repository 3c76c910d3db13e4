package model

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// CardTemplate selects the layout of a printable business card.
type CardTemplate string

const (
	CardMedical   CardTemplate = "medical"
	CardModern    CardTemplate = "modern"
	CardGradient  CardTemplate = "gradient"
	CardCorporate CardTemplate = "corporate"
	CardCreative  CardTemplate = "creative"
)

const (
	DefaultCardTemplate  = CardGradient
	DefaultCardPrimary   = "#a855f7"
	DefaultCardSecondary = "#06b6d4"

	MaxCardFieldLength = 120
	// MaxCardLogoLength bounds the logo, which is usually an inline data URL.
	MaxCardLogoLength = 512 << 10
)

func (t CardTemplate) Valid() bool {
	switch t {
	case CardMedical, CardModern, CardGradient, CardCorporate, CardCreative:
		return true
	}
	return false
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Card is the data behind a user's business card.
type Card struct {
	FullName       string       `json:"full_name"`
	Profession     string       `json:"profession"`
	Company        string       `json:"company"`
	PrimaryPhone   string       `json:"primary_phone"`
	SecondaryPhone string       `json:"secondary_phone"`
	Email          string       `json:"email"`
	Website        string       `json:"website"`
	Address        string       `json:"address"`
	Logo           string       `json:"logo"`
	Template       CardTemplate `json:"template"`
	PrimaryColor   string       `json:"primary_color"`
	SecondaryColor string       `json:"secondary_color"`
}

// DefaultCard is the card shown before the owner saves one.
func DefaultCard(p *Profile) Card {
	c := Card{
		Template:       DefaultCardTemplate,
		PrimaryColor:   DefaultCardPrimary,
		SecondaryColor: DefaultCardSecondary,
	}
	if p != nil {
		c.FullName = p.DisplayName
	}
	return c
}

// Normalize trims c, fills unset style fields with defaults and validates
// the result.
func (c *Card) Normalize() error {
	for _, f := range []*string{
		&c.FullName, &c.Profession, &c.Company, &c.PrimaryPhone, &c.SecondaryPhone,
		&c.Email, &c.Website, &c.Address,
	} {
		*f = strings.TrimSpace(*f)
		if len([]rune(*f)) > MaxCardFieldLength {
			return fmt.Errorf("%w: field longer than %d characters", ErrInvalidCard, MaxCardFieldLength)
		}
	}

	if c.Template == "" {
		c.Template = DefaultCardTemplate
	}
	if !c.Template.Valid() {
		return fmt.Errorf("%w: unknown template %q", ErrInvalidCard, c.Template)
	}
	if c.PrimaryColor == "" {
		c.PrimaryColor = DefaultCardPrimary
	}
	if c.SecondaryColor == "" {
		c.SecondaryColor = DefaultCardSecondary
	}
	if !hexColor.MatchString(c.PrimaryColor) || !hexColor.MatchString(c.SecondaryColor) {
		return fmt.Errorf("%w: colors must be #rrggbb", ErrInvalidCard)
	}

	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: bad email", ErrInvalidCard)
		}
	}
	if len(c.Logo) > MaxCardLogoLength {
		return fmt.Errorf("%w: logo too large", ErrInvalidCard)
	}
	if c.Logo != "" && !strings.HasPrefix(c.Logo, "data:image/") && !IsWebURL(c.Logo) {
		return fmt.Errorf("%w: logo must be an image data URL or a web address", ErrInvalidCard)
	}
	return nil
}
