package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrNotObject is returned when the payload is not a JSON object.
var ErrNotObject = errors.New("theme payload is not a JSON object")

// Result is a decoded descriptor plus what had to be filled in.
type Result struct {
	Theme Descriptor
	// Missing lists required top-level keys that were absent.
	Missing []string
	// Invalid lists fields whose value had the wrong type and kept the default.
	Invalid []string
}

// Complete reports whether every required section was supplied as-is.
func (r Result) Complete() bool { return len(r.Missing) == 0 && len(r.Invalid) == 0 }

// Decode reads raw as a Descriptor on top of Default, so any field the
// payload omits keeps its fallback value. Wrongly typed fields are skipped
// and reported rather than failing the whole theme.
func Decode(raw []byte) (Result, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return Result{}, ErrNotObject
	}

	res := Result{Theme: Default()}
	for _, k := range RequiredKeys {
		if _, ok := top[k]; !ok {
			res.Missing = append(res.Missing, k)
		}
	}

	invalid, err := decodeLenient(raw, &res.Theme)
	if err != nil {
		return Result{}, err
	}
	res.Invalid = invalid
	res.Theme.normalize()

	return res, nil
}

// decodeLenient unmarshals into dst, collecting type mismatches instead of
// failing on them. encoding/json already skips a mistyped field and keeps
// going, but it only reports the first one, so the object is walked again
// per field to name all of them.
func decodeLenient(raw []byte, dst any) ([]string, error) {
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return nil, fmt.Errorf("decode theme: %w", err)
	}

	return mistypedFields(raw), nil
}

// mistypedFields decodes each section separately against its own type.
func mistypedFields(raw []byte) []string {
	var top map[string]json.RawMessage
	_ = json.Unmarshal(raw, &top)

	targets := map[string]any{
		"name":        new(string),
		"nameAr":      new(string),
		"description": new(string),
		"mood":        new(string),
		"colors":      new(Colors),
		"fonts":       new(Fonts),
		"layout":      new(Layout),
		"effects":     new(Effects),
		"tags":        new([]string),
	}

	var out []string
	for _, k := range slices.Sorted(maps.Keys(targets)) {
		v, ok := top[k]
		if !ok {
			continue
		}
		var typeErr *json.UnmarshalTypeError
		if err := json.Unmarshal(v, targets[k]); errors.As(err, &typeErr) {
			field := k
			if typeErr.Field != "" {
				field = k + "." + typeErr.Field
			}
			out = append(out, field)
		}
	}
	return out
}

// normalize treats empty strings like absent fields, which is how the page
// renderer has always read them.
func (d *Descriptor) normalize() {
	def := Default()

	fill(&d.Name, def.Name)
	fill(&d.Colors.Primary, def.Colors.Primary)
	fill(&d.Colors.Secondary, def.Colors.Secondary)
	fill(&d.Colors.Background, def.Colors.Background)
	fill(&d.Colors.CardBg, def.Colors.CardBg)
	fill(&d.Colors.CardBorder, def.Colors.CardBorder)
	fill(&d.Colors.Text, def.Colors.Text)
	fill(&d.Colors.TextSecondary, def.Colors.TextSecondary)
	fill(&d.Colors.Accent, def.Colors.Accent)
	fill(&d.Colors.Hover, def.Colors.Hover)
	fill(&d.Fonts.Heading, def.Fonts.Heading)
	fill(&d.Fonts.HeadingWeight, def.Fonts.HeadingWeight)
	fill(&d.Fonts.Body, def.Fonts.Body)
	fill(&d.Fonts.BodyWeight, def.Fonts.BodyWeight)
	fill(&d.Layout.CardRadius, def.Layout.CardRadius)
	fill(&d.Layout.CardSpacing, def.Layout.CardSpacing)
	fill(&d.Layout.CardStyle, def.Layout.CardStyle)
	fill(&d.Effects.BackdropBlur, def.Effects.BackdropBlur)
	fill(&d.Effects.CardShadow, def.Effects.CardShadow)
	fill(&d.Effects.ProfileGlow.Color, def.Effects.ProfileGlow.Color)
	fill(&d.Effects.ProfileGlow.Size, def.Effects.ProfileGlow.Size)
	fill(&d.Effects.Animations.CardHover, def.Effects.Animations.CardHover)

	if d.Tags == nil {
		d.Tags = []string{}
	}

	blobs := &d.Effects.BackgroundBlobs
	if len(blobs.Blobs) == 0 {
		blobs.Blobs = def.Effects.BackgroundBlobs.Blobs
	}
	if blobs.Count <= 0 || blobs.Count > len(blobs.Blobs) {
		blobs.Count = len(blobs.Blobs)
	}
}

func fill(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}
