package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobscout/internal/common"
	"jobscout/internal/llm"
)

func candidateResponse(text string) string {
	body := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.0-flash",
	}, nil)
	return srv, client
}

func TestExtractFieldsParsesFencedResponse(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.0-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["tools"]; ok {
			t.Error("extraction request must not carry search tools")
		}
		if _, ok := body["system_instruction"]; !ok {
			t.Error("missing system_instruction")
		}

		text := "```json\n{\"company\": \"Acme\", \"title\": \"Backend Engineer\", \"match_score\": \"8\"}\n```"
		_, _ = w.Write([]byte(candidateResponse(text)))
	})

	fields, _, err := client.ExtractFields(context.Background(), llm.ExtractRequest{
		Content: "posting text", URL: "https://jobs.lever.co/acme/1",
	})
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if fields.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q", fields.CompanyName)
	}
	if fields.RoleName != "Backend Engineer" {
		t.Errorf("RoleName = %q", fields.RoleName)
	}
	if fields.MatchScore != 8 {
		t.Errorf("MatchScore = %v", fields.MatchScore)
	}
}

func TestExtractFieldsUnparseableResponse(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateResponse("I could not find any structured data, sorry.")))
	})

	_, _, err := client.ExtractFields(context.Background(), llm.ExtractRequest{Content: "x"})
	if common.CodeOf(err) != common.CodeUnparseableResponse {
		t.Fatalf("expected UNPARSEABLE_RESPONSE, got %v", err)
	}
}

func TestExtractFieldsHTTPError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota"}`, http.StatusTooManyRequests)
	})

	_, _, err := client.ExtractFields(context.Background(), llm.ExtractRequest{Content: "x"})
	if common.CodeOf(err) != common.CodeModelError {
		t.Fatalf("expected MODEL_ERROR, got %v", err)
	}
}

func TestSearchReviewsUsesGroundedSearch(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["tools"]; !ok {
			t.Error("review request must carry search tools")
		}
		text := `{"source": "Glassdoor", "rating": 4.2, "review_count": 1200, "comments": ["good pay"]}`
		_, _ = w.Write([]byte(candidateResponse(text)))
	})

	fields, _, err := client.SearchReviews(context.Background(), "Acme", "Glassdoor")
	if err != nil {
		t.Fatalf("SearchReviews: %v", err)
	}
	if fields.Rating != 4.2 || fields.ReviewCount != 1200 {
		t.Errorf("fields = %+v", fields)
	}
}

func TestSearchReviewsRequiresRating(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateResponse(`{"source": "Glassdoor", "comments": ["nice"]}`)))
	})

	_, _, err := client.SearchReviews(context.Background(), "Acme", "Glassdoor")
	if err == nil {
		t.Fatal("expected error for ratingless answer")
	}
	var ae *common.AppError
	if !errors.As(err, &ae) || ae.Code != common.CodeUnparseableResponse {
		t.Fatalf("expected UNPARSEABLE_RESPONSE, got %v", err)
	}
}

func TestFindCareerPage(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(candidateResponse("  https://acme.com/careers\n")))
	})

	url, err := client.FindCareerPage(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("FindCareerPage: %v", err)
	}
	if url != "https://acme.com/careers" {
		t.Errorf("url = %q", url)
	}
}
