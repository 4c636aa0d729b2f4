package llm

// BuildJobJSONSchema returns a JSON-Schema (draft 2020-12 subset) for
// the extraction target. Every field is optional: partial extraction
// degrades to empty fields, it never fails the record. The location
// property accepts the model's {exact, city} object or a plain string;
// sanitization flattens it before unmarshalling.
func BuildJobJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"company_name":        map[string]any{"type": "string"},
			"role_name":           map[string]any{"type": "string"},
			"experience_required": map[string]any{"type": "string"},
			"experience_type":     map[string]any{"type": "string"},
			"location":            map[string]any{"type": "string"},
			"remote":              map[string]any{"type": "string"},
			"hybrid_or_flexible":  map[string]any{"type": "string"},
			"match_score":         map[string]any{"type": "number", "minimum": 0.0, "maximum": 10.0},
		},
	}
}

// BuildReviewJSONSchema constrains one source's review answer. Source
// and rating are required; a response without a rating is treated as
// source-unavailable rather than a zero rating.
func BuildReviewJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"source":       map[string]any{"type": "string", "minLength": 1},
			"rating":       map[string]any{"type": "number", "minimum": 0.0},
			"review_count": map[string]any{"type": "integer", "minimum": 0},
			"comments":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"url":          map[string]any{"type": "string"},
		},
		"required": []string{"source", "rating"},
	}
}
