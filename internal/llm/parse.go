package llm

import (
	"encoding/json"
	"strings"
)

const maxTags = 5

// decodeList decodes a JSON array of strings, tolerating a markdown code fence around it.
func decodeList(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}, true
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, false
	}
	if out == nil {
		out = []string{}
	}
	return out, true
}

// ParseList reads a model reply as a list. Replies that are not a JSON string
// array degrade to their non-blank lines.
func ParseList(s string) []string {
	if out, ok := decodeList(s); ok {
		return out
	}
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

var tagNoise = strings.NewReplacer("[", "", "]", "", `"`, "", "'", "")

// ParseTags reads a model reply as tags. Replies that are not a JSON string
// array are stripped of brackets and quotes, split on commas and line breaks,
// and capped at five tags.
func ParseTags(s string) []string {
	if out, ok := decodeList(s); ok {
		return out
	}
	fields := strings.FieldsFunc(tagNoise.Replace(s), func(r rune) bool { return r == ',' || r == '\n' })
	out := []string{}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
		if len(out) == maxTags {
			break
		}
	}
	return out
}
