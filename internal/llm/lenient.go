package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var reFenced = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ErrNoJSONObject means the response held no structured fragment at
// all; only this is a total parse failure.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject pulls the largest well-formed JSON object out of a
// model response that may carry markdown fences, prose, or partial
// JSON. Tried in order: the whole response, fenced blocks, then the
// largest balanced {...} substring.
func ExtractJSONObject(text string) ([]byte, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, ErrNoJSONObject
	}

	if isJSONObject(s) {
		return []byte(s), nil
	}

	for _, m := range reFenced.FindAllStringSubmatch(s, -1) {
		candidate := strings.TrimSpace(m[1])
		if isJSONObject(candidate) {
			return []byte(candidate), nil
		}
	}

	if best := largestBalancedObject(s); best != "" {
		return []byte(best), nil
	}
	return nil, ErrNoJSONObject
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

// largestBalancedObject scans for top-level {...} spans, tracking
// string and escape state, and returns the longest span that parses.
func largestBalancedObject(s string) string {
	var (
		best     string
		start    = -1
		depth    = 0
		inString = false
		escaped  = false
	)
	for i := 0; i < len(s); i++ {
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
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				candidate := s[start : i+1]
				if len(candidate) > len(best) && json.Valid([]byte(candidate)) {
					best = candidate
				}
				start = -1
			}
		}
	}
	return best
}
