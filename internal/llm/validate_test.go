package llm

import "testing"

func TestValidateJobSchema(t *testing.T) {
	schema := BuildJobJSONSchema()

	ok := []byte(`{"company_name": "Acme", "match_score": 7.5}`)
	if err := ValidateJSONAgainstSchema(schema, ok); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	// all fields optional
	if err := ValidateJSONAgainstSchema(schema, []byte(`{}`)); err != nil {
		t.Fatalf("empty object rejected: %v", err)
	}

	bad := [][]byte{
		[]byte(`{"match_score": 11}`),
		[]byte(`{"match_score": "high"}`),
		[]byte(`{"salary": "1cr"}`),
	}
	for _, b := range bad {
		if err := ValidateJSONAgainstSchema(schema, b); err == nil {
			t.Errorf("payload %s should fail validation", b)
		}
	}
}

func TestValidateReviewSchema(t *testing.T) {
	schema := BuildReviewJSONSchema()

	ok := []byte(`{"source": "Glassdoor", "rating": 4.2, "review_count": 1200, "comments": ["Great"]}`)
	if err := ValidateJSONAgainstSchema(schema, ok); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	// rating is required so a ratingless answer is unavailable, not zero
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"source": "Glassdoor"}`)); err == nil {
		t.Error("payload without rating should fail validation")
	}
}
