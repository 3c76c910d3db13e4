package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkiq/linkiq/services/themegen/internal/generator"
	"github.com/linkiq/linkiq/services/themegen/internal/placeholder"
	"github.com/linkiq/linkiq/services/themegen/internal/theme"
	"github.com/linkiq/linkiq/services/themegen/internal/transport"
)

const maxBodyBytes = 1 << 20

// Generator is what the handlers need from the generator package.
type Generator interface {
	GenerateTheme(ctx context.Context, prompt string) (theme.Result, error)
	GenerateStyles(ctx context.Context, prompt string) (theme.Styles, error)
	GeneratePage(ctx context.Context, prompt string, values placeholder.Values) (string, error)
}

// ThemeHandler exposes the three generation endpoints.
type ThemeHandler struct {
	gen  Generator
	msgs transport.Messages
}

func NewThemeHandler(gen Generator, msgs transport.Messages) *ThemeHandler {
	return &ThemeHandler{gen: gen, msgs: msgs}
}

type themeRequest struct {
	UserPrompt string `json:"userPrompt"`
}

type themeResponse struct {
	Theme     theme.Descriptor `json:"theme"`
	Fallbacks []string         `json:"fallbacks,omitempty"`
}

// GenerateTheme handles POST /functions/v1/generate-theme.
func (h *ThemeHandler) GenerateTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.gen.GenerateTheme(r.Context(), req.UserPrompt)
	if err != nil {
		h.fail(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, themeResponse{
		Theme:     res.Theme,
		Fallbacks: append(res.Missing, res.Invalid...),
	})
}

type pageRequest struct {
	Prompt   string             `json:"prompt"`
	UserData *placeholder.Values `json:"userData"`
}

type pageResponse struct {
	HTML    string `json:"html"`
	Success bool   `json:"success"`
}

// GeneratePage handles POST /functions/v1/generate-theme-html.
func (h *ThemeHandler) GeneratePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.UserData == nil {
		h.fail(w, generator.ErrMissingUser)
		return
	}

	html, err := h.gen.GeneratePage(r.Context(), req.Prompt, *req.UserData)
	if err != nil {
		h.fail(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, pageResponse{HTML: html, Success: true})
}

type stylesRequest struct {
	Prompt string `json:"prompt"`
}

type stylesResponse struct {
	Styles theme.Styles `json:"styles"`
}

// GenerateStyles handles POST /functions/v1/generate-theme-styles.
func (h *ThemeHandler) GenerateStyles(w http.ResponseWriter, r *http.Request) {
	var req stylesRequest
	if !h.decode(w, r, &req) {
		return
	}

	styles, err := h.gen.GenerateStyles(r.Context(), req.Prompt)
	if err != nil {
		h.fail(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, stylesResponse{Styles: styles})
}

func (h *ThemeHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		transport.WriteFailure(w, http.StatusBadRequest, h.msgs.Get(transport.MsgInvalidInput))
		return false
	}
	return true
}

func (h *ThemeHandler) fail(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	transport.WriteFailure(w, status, h.msgs.Get(code))
}

// StatusFor maps a generation error to its HTTP status and message code.
func StatusFor(err error) (int, string) {
	switch generator.Outcome(err) {
	case "invalid_input":
		if errors.Is(err, generator.ErrPromptTooLong) {
			return http.StatusBadRequest, transport.MsgPromptTooLong
		}
		if errors.Is(err, generator.ErrMissingUser) {
			return http.StatusBadRequest, transport.MsgMissingUser
		}
		return http.StatusBadRequest, transport.MsgInvalidInput
	case "rate_limited":
		return http.StatusTooManyRequests, transport.MsgRateLimited
	case "payment_required":
		return http.StatusPaymentRequired, transport.MsgPaymentRequired
	case "not_configured":
		return http.StatusInternalServerError, transport.MsgNotConfigured
	case "invalid_response":
		return http.StatusInternalServerError, transport.MsgInvalidResponse
	case "upstream_error":
		return http.StatusInternalServerError, transport.MsgUpstreamError
	case "parse_error":
		return http.StatusInternalServerError, transport.MsgParseError
	default:
		return http.StatusInternalServerError, transport.MsgUnexpected
	}
}
