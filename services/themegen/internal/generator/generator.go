// Package generator runs one theme generation end to end: prompt, single
// provider call, recovery of the structured output, and merging with the
// caller's data.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/linkiq/linkiq/services/themegen/internal/extract"
	"github.com/linkiq/linkiq/services/themegen/internal/llm"
	"github.com/linkiq/linkiq/services/themegen/internal/observability"
	"github.com/linkiq/linkiq/services/themegen/internal/placeholder"
	"github.com/linkiq/linkiq/services/themegen/internal/theme"
	"go.uber.org/zap"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrPromptTooLong = errors.New("prompt is too long")
	ErrMissingUser   = errors.New("user data is missing name or username")
	ErrParse         = errors.New("failed to parse generated output")
)

const (
	EndpointTheme  = "theme"
	EndpointPage   = "page"
	EndpointStyles = "styles"
)

type Config struct {
	ThemeMaxTokens   int
	PageMaxTokens    int
	ThemeTemperature float64
	MaxPromptLength  int
}

func DefaultConfig() Config {
	return Config{
		ThemeMaxTokens:   6000,
		PageMaxTokens:    8000,
		ThemeTemperature: 0.2,
		MaxPromptLength:  2000,
	}
}

type Generator struct {
	themeLLM llm.Completer
	pageLLM  llm.Completer
	cfg      Config
}

// New wires a Generator. themeLLM serves the theme and styles endpoints,
// pageLLM the full-page endpoint.
func New(themeLLM, pageLLM llm.Completer, cfg Config) *Generator {
	return &Generator{themeLLM: themeLLM, pageLLM: pageLLM, cfg: cfg}
}

// GenerateTheme returns a theme descriptor for prompt. Sections the model
// left out are filled from theme.Default and listed in the result.
func (g *Generator) GenerateTheme(ctx context.Context, prompt string) (theme.Result, error) {
	return g.generateTheme(ctx, EndpointTheme, prompt)
}

// GenerateStyles returns the flat styles projection of a generated theme.
func (g *Generator) GenerateStyles(ctx context.Context, prompt string) (theme.Styles, error) {
	res, err := g.generateTheme(ctx, EndpointStyles, prompt)
	if err != nil {
		return theme.Styles{}, err
	}
	return theme.StylesFrom(res.Theme), nil
}

func (g *Generator) generateTheme(ctx context.Context, endpoint, prompt string) (theme.Result, error) {
	inv := begin(ctx, endpoint)

	prompt, err := g.checkPrompt(prompt)
	if err != nil {
		return theme.Result{}, inv.fail(err)
	}

	system, err := render("theme_system.tmpl", promptData{})
	if err != nil {
		return theme.Result{}, inv.fail(fmt.Errorf("render prompt: %w", err))
	}
	user, err := render("theme_user.tmpl", promptData{Prompt: prompt})
	if err != nil {
		return theme.Result{}, inv.fail(fmt.Errorf("render prompt: %w", err))
	}

	text, err := inv.call(ctx, g.themeLLM, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   g.cfg.ThemeMaxTokens,
		Temperature: g.cfg.ThemeTemperature,
	})
	if err != nil {
		return theme.Result{}, inv.fail(err)
	}

	inv.to(StateExtracting)

	var raw json.RawMessage
	if err := extract.DecodeObject(text, &raw); err != nil {
		inv.log.Warn("theme_extract_failed", zap.Error(err), zap.String("head", head(text)))
		return theme.Result{}, inv.fail(fmt.Errorf("%w: %w", ErrParse, err))
	}

	res, err := theme.Decode(raw)
	if err != nil {
		return theme.Result{}, inv.fail(fmt.Errorf("%w: %w", ErrParse, err))
	}

	if !res.Complete() {
		for _, k := range append(append([]string{}, res.Missing...), res.Invalid...) {
			observability.IncompleteThemesTotal.WithLabelValues(k).Inc()
		}
		inv.log.Info("theme_filled_with_defaults",
			zap.Strings("missing", res.Missing),
			zap.Strings("invalid", res.Invalid),
		)
	}

	inv.succeed(zap.String("theme", res.Theme.Name))
	return res, nil
}

// GeneratePage asks for a full HTML document and fills its placeholders
// with values. Values are HTML-escaped; the links list is rendered as
// anchor markup. values must carry a name and a username.
func (g *Generator) GeneratePage(ctx context.Context, prompt string, values placeholder.Values) (string, error) {
	inv := begin(ctx, EndpointPage)

	prompt, err := g.checkPrompt(prompt)
	if err != nil {
		return "", inv.fail(err)
	}
	if strings.TrimSpace(values.Name) == "" || strings.TrimSpace(values.Username) == "" {
		return "", inv.fail(ErrMissingUser)
	}

	system, err := render("page_system.tmpl", promptData{})
	if err != nil {
		return "", inv.fail(fmt.Errorf("render prompt: %w", err))
	}
	user, err := render("page_user.tmpl", promptData{Prompt: prompt, Placeholders: pagePlaceholders})
	if err != nil {
		return "", inv.fail(fmt.Errorf("render prompt: %w", err))
	}

	text, err := inv.call(ctx, g.pageLLM, llm.Request{
		System:    system,
		User:      user,
		MaxTokens: g.cfg.PageMaxTokens,
	})
	if err != nil {
		return "", inv.fail(err)
	}

	inv.to(StateExtracting)

	page := strings.TrimSpace(extract.TrimToDoctype(extract.StripFences(text)))
	if page == "" {
		return "", inv.fail(fmt.Errorf("%w: empty page", ErrParse))
	}

	inv.to(StateSubstituting)

	page = placeholder.Substitute(page, values, placeholder.Options{})

	inv.succeed(zap.Int("html_length", len(page)), zap.Int("links", len(values.Links)))
	return page, nil
}

func (g *Generator) checkPrompt(prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if g.cfg.MaxPromptLength > 0 && len([]rune(prompt)) > g.cfg.MaxPromptLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrPromptTooLong, g.cfg.MaxPromptLength)
	}
	return prompt, nil
}

func head(s string) string {
	const n = 300
	if len(s) <= n {
		return s
	}
	return s[:n]
}
