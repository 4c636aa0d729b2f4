package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobscout/internal/common"
	"jobscout/internal/llm"
)

var (
	_ llm.FieldExtractor   = (*Client)(nil)
	_ llm.ReviewSearcher   = (*Client)(nil)
	_ llm.CareerPageFinder = (*Client)(nil)
)

// ExtractFields implements llm.FieldExtractor against the Gemini
// generateContent endpoint. The response is treated as untrusted text:
// fragment extraction, sanitization, and schema validation run before
// anything is accepted, and partial field absence never fails the
// record.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (llm.JobFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"url", req.URL,
		"origin", req.Origin,
		"text_len", len(req.Content),
	)

	sys := llm.BuildExtractionSystemPrompt(req)
	user := llm.BuildExtractionUserPrompt(req)

	text, err := c.generate(ctx, sys, user, false)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.JobFields{}, nil, common.NewAppError(common.CodeModelError, "gemini generate", err)
	}

	frag, err := llm.ExtractJSONObject(text)
	if err != nil {
		c.log.Error("llm.extract.unparseable",
			"req_id", rid, "response_len", len(text),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.JobFields{}, []byte(text), common.NewAppError(common.CodeUnparseableResponse, "no structured fragment", err)
	}

	cleaned, _, err := llm.NormalizeJobJSON(frag, c.log)
	if err != nil {
		return llm.JobFields{}, frag, common.NewAppError(common.CodeUnparseableResponse, "sanitize", err)
	}

	// Validation failures after sanitize are logged, not fatal: a
	// record with missing fields still beats a dropped record.
	if vErr := llm.ValidateJSONAgainstSchema(llm.BuildJobJSONSchema(), cleaned); vErr != nil {
		c.log.Warn("llm.extract.schema_validation_failed",
			"req_id", rid, "error", vErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}

	var out llm.JobFields
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return llm.JobFields{}, cleaned, common.NewAppError(common.CodeUnparseableResponse, "unmarshal fields", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"company", out.CompanyName,
		"role", out.RoleName,
		"match_score", out.MatchScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

// SearchReviews implements llm.ReviewSearcher with one grounded search
// per (company, source) pair.
func (c *Client) SearchReviews(ctx context.Context, company, source string) (llm.ReviewFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	sys := llm.BuildReviewSystemPrompt(source)
	user := llm.BuildReviewUserPrompt(company, source)

	text, err := c.generate(ctx, sys, user, true)
	if err != nil {
		c.log.Warn("llm.reviews.http_error",
			"req_id", rid, "company", company, "source", source, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ReviewFields{}, nil, common.NewAppError(common.CodeModelError, "gemini search", err)
	}

	frag, err := llm.ExtractJSONObject(text)
	if err != nil {
		return llm.ReviewFields{}, []byte(text), common.NewAppError(common.CodeUnparseableResponse, "no structured fragment", err)
	}

	cleaned, _, err := llm.NormalizeReviewJSON(frag, c.log)
	if err != nil {
		return llm.ReviewFields{}, frag, common.NewAppError(common.CodeUnparseableResponse, "sanitize", err)
	}

	// Rating is required here: without it the source has nothing to
	// contribute and must not dilute the weighted mean with a zero.
	if vErr := llm.ValidateJSONAgainstSchema(llm.BuildReviewJSONSchema(), cleaned); vErr != nil {
		return llm.ReviewFields{}, cleaned, common.NewAppError(common.CodeUnparseableResponse, "schema validation", vErr)
	}

	var out llm.ReviewFields
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return llm.ReviewFields{}, cleaned, common.NewAppError(common.CodeUnparseableResponse, "unmarshal fields", err)
	}
	if out.Source == "" {
		out.Source = source
	}

	c.log.Info("llm.reviews.ok",
		"req_id", rid,
		"company", company,
		"source", source,
		"rating", out.Rating,
		"review_count", out.ReviewCount,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

// FindCareerPage implements llm.CareerPageFinder via grounded search.
// The caller interprets "NOT_FOUND" and non-URL responses.
func (c *Client) FindCareerPage(ctx context.Context, company string) (string, error) {
	text, err := c.generate(ctx, llm.BuildCareerPageSystemPrompt(), llm.BuildCareerPageUserPrompt(company), true)
	if err != nil {
		return "", common.NewAppError(common.CodeModelError, "gemini search", err)
	}
	return strings.TrimSpace(text), nil
}

// generate posts one request to the generateContent endpoint and
// returns the first candidate's text.
func (c *Client) generate(ctx context.Context, system, user string, useSearch bool) (string, error) {
	body := map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]any{{"text": system}},
		},
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": user}}},
		},
		"generationConfig": map[string]any{
			"temperature": c.cfg.Temperature,
		},
	}
	if useSearch {
		body["tools"] = []map[string]any{{"google_search": map[string]any{}}}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		return "", err
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http error: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("gemini response body close error", "error", err)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
