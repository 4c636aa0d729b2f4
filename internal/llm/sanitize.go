package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"jobscout/constants"
)

// NormalizeJobJSON repairs a model response into the JobFields shape:
// - renames known synonyms (company -> company_name, title -> role_name)
// - flattens the location {exact, city} object to one string
// - coerces match_score strings to numbers and clamps the range
// - drops null/empty values and unknown keys
func NormalizeJobJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to our schema
	renamed("company", "company_name")
	renamed("employer", "company_name")
	renamed("role", "role_name")
	renamed("title", "role_name")
	renamed("role_title", "role_name")
	renamed("experience", "experience_required")
	renamed("level", "experience_type")

	// 2) flatten location: the model may answer {exact, city} or a string
	if v, ok := m["location"]; ok {
		switch t := v.(type) {
		case map[string]any:
			loc, _ := t["city"].(string)
			if strings.TrimSpace(loc) == "" {
				loc, _ = t["exact"].(string)
			}
			if strings.TrimSpace(loc) == "" {
				delete(m, "location")
				dropped = append(dropped, "location(empty)")
			} else {
				m["location"] = strings.TrimSpace(loc)
			}
		case string:
			if strings.TrimSpace(t) == "" {
				delete(m, "location")
				dropped = append(dropped, "location(empty)")
			} else {
				m["location"] = strings.TrimSpace(t)
			}
		case nil:
			delete(m, "location")
			dropped = append(dropped, "location(null)")
		default:
			delete(m, "location")
			dropped = append(dropped, "location(type)")
		}
	}

	// 3) match_score: accept numbers or numeric strings, clamp to 0..10
	if v, ok := m["match_score"]; ok {
		score, valid := coerceFloat(v)
		if !valid {
			delete(m, "match_score")
			dropped = append(dropped, "match_score(type)")
		} else {
			if score < 0 {
				score = 0
			}
			if score > constants.MatchScoreMax {
				score = constants.MatchScoreMax
			}
			m["match_score"] = score
		}
	}

	// 4) remaining string fields: trim, drop empties/nulls/non-strings
	for _, k := range []string{"company_name", "role_name", "experience_required", "experience_type", "remote", "hybrid_or_flexible"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "unknown") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case bool:
			// remote/hybrid sometimes come back as booleans
			m[k] = strconv.FormatBool(t)
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	// 5) remove unknown keys (additionalProperties=false friendliness)
	allowed := map[string]struct{}{
		"company_name": {}, "role_name": {}, "experience_required": {},
		"experience_type": {}, "location": {}, "remote": {},
		"hybrid_or_flexible": {}, "match_score": {},
	}
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// NormalizeReviewJSON repairs one review-source response: numeric
// coercions, a single comment string promoted to a list, unknown keys
// removed.
func NormalizeReviewJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string

	if v, ok := m["rating"]; ok {
		if f, valid := coerceFloat(v); valid {
			m["rating"] = f
		} else {
			delete(m, "rating")
			dropped = append(dropped, "rating(type)")
		}
	}

	if v, ok := m["review_count"]; ok {
		if f, valid := coerceFloat(v); valid && f >= 0 {
			m["review_count"] = int(f)
		} else {
			delete(m, "review_count")
			dropped = append(dropped, "review_count(type)")
		}
	}

	if v, ok := m["comments"]; ok {
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				m["comments"] = []string{s}
			} else {
				delete(m, "comments")
				dropped = append(dropped, "comments(empty)")
			}
		case []any:
			var cs []string
			for _, c := range t {
				if s, ok := c.(string); ok && strings.TrimSpace(s) != "" {
					cs = append(cs, strings.TrimSpace(s))
				}
			}
			if len(cs) == 0 {
				delete(m, "comments")
				dropped = append(dropped, "comments(empty)")
			} else {
				m["comments"] = cs
			}
		default:
			delete(m, "comments")
			dropped = append(dropped, "comments(type)")
		}
	}

	// single review object sometimes arrives under a "reviews" array;
	// keep only the fields we asked for
	allowed := map[string]struct{}{
		"source": {}, "rating": {}, "review_count": {}, "comments": {}, "url": {},
	}
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.reviews.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
