package extract

import "strings"

const fence = "```"

// StripFences returns the contents of the first markdown code block in s,
// dropping the optional language tag on the opening fence. A missing
// closing fence is tolerated. Text without a fence is returned unchanged.
func StripFences(s string) string {
	open := strings.Index(s, fence)
	if open < 0 {
		return s
	}

	body := s[open+len(fence):]

	nl := strings.IndexByte(body, '\n')
	switch {
	case nl >= 0 && isLangTag(body[:nl]):
		body = body[nl+1:]
	case nl < 0:
		body = strings.TrimLeft(body, langTagChars)
	}

	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}

	return strings.TrimSpace(body)
}

const langTagChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_+-."

func isLangTag(line string) bool {
	line = strings.TrimSpace(line)
	for _, r := range line {
		if !strings.ContainsRune(langTagChars, r) {
			return false
		}
	}
	return true
}

// TrimToDoctype drops anything a model wrote before "<!DOCTYPE". The match
// is case-insensitive; text without a doctype is returned unchanged.
func TrimToDoctype(s string) string {
	const marker = "<!doctype"

	for i := 0; i+len(marker) <= len(s); i++ {
		if s[i] == '<' && strings.EqualFold(s[i:i+len(marker)], marker) {
			return s[i:]
		}
	}
	return s
}
