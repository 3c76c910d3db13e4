// Package extract recovers structured payloads from free-form model
// completions: fenced code blocks, prose around a JSON object, smart quotes
// and trailing commas.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoObject is returned when the text holds no balanced {...} span.
	ErrNoObject = errors.New("no JSON object found in completion")
	// ErrMalformed is returned when the recovered span is not valid JSON.
	ErrMalformed = errors.New("malformed JSON object")
)

// ExtractFirstObject returns the first brace-balanced {...} span of s.
// Braces inside string literals are ignored and a backslash escapes the
// byte that follows it. ok is false when s has no '{' or when the depth
// never returns to zero, which is what a truncated completion looks like.
func ExtractFirstObject(s string) (span string, ok bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// DecodeObject runs the full recovery pipeline on a completion and decodes
// the result into dst: fence strip, brace-balanced extraction, sanitize,
// then json.Unmarshal.
func DecodeObject(text string, dst any) error {
	span, ok := ExtractFirstObject(StripFences(text))
	if !ok {
		return ErrNoObject
	}

	if err := json.Unmarshal([]byte(Sanitize(span)), dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}
