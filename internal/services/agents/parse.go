package agents

import (
	"strconv"
	"strings"
)

// extractJSONObject returns the first balanced {...} substring of a
// completion, tolerating surrounding prose and markdown fences. Returns ""
// when no object-shaped substring exists.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
				return text[start : i+1]
			}
		}
	}
	return ""
}

// extractIndexList returns the first bracketed numeric list in a completion
// as integers. Returns nil when no bracketed list is found or the bracketed
// content contains anything other than comma-separated integers.
func extractIndexList(text string) []int {
	start := strings.Index(text, "[")
	if start < 0 {
		return nil
	}
	end := strings.Index(text[start:], "]")
	if end < 0 {
		return nil
	}

	inner := strings.TrimSpace(text[start+1 : start+end])
	if inner == "" {
		return nil
	}

	parts := strings.Split(inner, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil
		}
		indices = append(indices, value)
	}
	return indices
}
