// Package theme holds the typed theme descriptor returned by the generator
// and the rules that fill in whatever a model left out.
package theme

// Descriptor describes the visual styling of a public page.
type Descriptor struct {
	Name        string   `json:"name"`
	NameAr      string   `json:"nameAr"`
	Description string   `json:"description"`
	Mood        string   `json:"mood"`
	Colors      Colors   `json:"colors"`
	Fonts       Fonts    `json:"fonts"`
	Layout      Layout   `json:"layout"`
	Effects     Effects  `json:"effects"`
	Tags        []string `json:"tags"`
}

type Colors struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	CardBg        string `json:"cardBg"`
	CardBorder    string `json:"cardBorder"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Accent        string `json:"accent"`
	Hover         string `json:"hover"`
}

type Fonts struct {
	Heading       string `json:"heading"`
	HeadingWeight string `json:"headingWeight"`
	Body          string `json:"body"`
	BodyWeight    string `json:"bodyWeight"`
}

type Layout struct {
	CardRadius  string `json:"cardRadius"`
	CardSpacing string `json:"cardSpacing"`
	CardStyle   string `json:"cardStyle"`
}

type Effects struct {
	BackdropBlur    string          `json:"backdropBlur"`
	CardShadow      string          `json:"cardShadow"`
	GlassEffect     bool            `json:"glassEffect"`
	ProfileGlow     ProfileGlow     `json:"profileGlow"`
	BackgroundBlobs BackgroundBlobs `json:"backgroundBlobs"`
	Animations      Animations      `json:"animations"`
}

type ProfileGlow struct {
	Enabled bool   `json:"enabled"`
	Color   string `json:"color"`
	Size    string `json:"size"`
}

type BackgroundBlobs struct {
	Enabled bool   `json:"enabled"`
	Count   int    `json:"count"`
	Blobs   []Blob `json:"blobs"`
}

type Blob struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

type Animations struct {
	BlobsMove    bool   `json:"blobsMove"`
	ProfilePulse bool   `json:"profilePulse"`
	CardHover    string `json:"cardHover"`
}

// RequiredKeys are the top-level sections a page needs to render.
var RequiredKeys = []string{"colors", "fonts", "layout", "effects"}

// Default returns the fallback theme used for every missing field.
func Default() Descriptor {
	return Descriptor{
		Name:        "Neon Purple",
		NameAr:      "بنفسجي نيون",
		Description: "Dark background with glowing purple accents",
		Mood:        "modern",
		Colors: Colors{
			Primary:       "#a855f7",
			Secondary:     "#6366f1",
			Background:    "linear-gradient(180deg, #0f0a1f, #1a1033)",
			CardBg:        "rgba(255,255,255,0.05)",
			CardBorder:    "rgba(255,255,255,0.1)",
			Text:          "#ffffff",
			TextSecondary: "rgba(255,255,255,0.7)",
			Accent:        "#c084fc",
			Hover:         "#9333ea",
		},
		Fonts: Fonts{
			Heading:       "Cairo",
			HeadingWeight: "700",
			Body:          "Tajawal",
			BodyWeight:    "400",
		},
		Layout: Layout{
			CardRadius:  "16px",
			CardSpacing: "12px",
			CardStyle:   "glass",
		},
		Effects: Effects{
			BackdropBlur: "20px",
			CardShadow:   "0 8px 32px rgba(0,0,0,0.3)",
			GlassEffect:  true,
			ProfileGlow: ProfileGlow{
				Enabled: true,
				Color:   "rgba(168,85,247,0.5)",
				Size:    "60px",
			},
			BackgroundBlobs: BackgroundBlobs{
				Enabled: true,
				Count:   3,
				Blobs: []Blob{
					{X: "20%", Y: "30%", Size: "500px", Color: "rgba(168,85,247,0.15)"},
					{X: "80%", Y: "70%", Size: "600px", Color: "rgba(99,102,241,0.12)"},
					{X: "50%", Y: "50%", Size: "450px", Color: "rgba(192,132,252,0.1)"},
				},
			},
			Animations: Animations{
				BlobsMove:    true,
				ProfilePulse: true,
				CardHover:    "translateY(-4px)",
			},
		},
		Tags: []string{},
	}
}
