package llm

import (
	"encoding/json"
	"strings"
)

// maxContentChars caps how much posting text is embedded in the user
// prompt; job pages past this are navigation and boilerplate anyway.
const maxContentChars = 100_000

// BuildExtractionSystemPrompt composes the system message: target
// schema, scoring guidance, and strict-but-practical formatting rules.
func BuildExtractionSystemPrompt(req ExtractRequest) string {
	parts := []string{
		"You are a JSON data extractor for job postings.",
		"Extract these fields from the page text: company_name, role_name, experience_required, experience_type, location (object with exact and city), remote, hybrid_or_flexible, match_score.",
		"Ignore navigation menus, footers, similar-jobs lists, and advertisements.",
		"Score match_score from 0 to 10 against the candidate preferences provided in the user message.",
		"If a piece of information is missing, omit the field. Never output null. Do not guess.",
		"Return ONLY valid JSON. No markdown, no code blocks, no extra text.",
	}
	return strings.Join(parts, " ")
}

// BuildExtractionUserPrompt packages the page text plus the match
// preferences. Content is truncated, not summarized.
func BuildExtractionUserPrompt(req ExtractRequest) string {
	content := req.Content
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var b strings.Builder
	if req.URL != "" {
		b.WriteString("URL: ")
		b.WriteString(req.URL)
		b.WriteString("\n")
	}
	if req.Origin != "" {
		b.WriteString("Job board: ")
		b.WriteString(req.Origin)
		b.WriteString("\n")
	}
	b.WriteString("\nPage text:\n")
	b.WriteString(content)
	b.WriteString("\n\nCandidate preferences:\n")
	b.WriteString(mustJSON(req.Match))
	b.WriteString("\n\nReturn JSON only:")
	return b.String()
}

// BuildReviewSystemPrompt targets one review site per query so each
// (company, source) pair is an independent lookup.
func BuildReviewSystemPrompt(source string) string {
	parts := []string{
		"You search for employer reviews of a company on " + source + ".",
		"Report the overall rating on " + source + "'s own scale, the number of reviews it is based on, and up to five short representative comment snippets.",
		`Format: {"source":"` + source + `","rating":0,"review_count":0,"comments":[""],"url":""}.`,
		"If " + source + " has no reviews for the company, omit rating entirely.",
		"Return ONLY valid JSON. No markdown, no extra text.",
	}
	return strings.Join(parts, " ")
}

func BuildReviewUserPrompt(company, source string) string {
	return "Company: " + company + "\n\nSearch " + source + " reviews and return JSON only:"
}

// BuildCareerPageSystemPrompt instructs a grounded search for the
// official careers page only.
func BuildCareerPageSystemPrompt() string {
	parts := []string{
		"You are a career page URL finder. Your ONLY task is to find the official careers/jobs page URL for companies.",
		"Return ONLY the direct career page URL (e.g., https://company.com/careers).",
		"Do NOT return the company homepage, LinkedIn, Indeed, or job board URLs.",
		"Do NOT return any explanation or additional text.",
		`If no career page exists, return "NOT_FOUND".`,
		"Return only ONE URL per company.",
	}
	return strings.Join(parts, " ")
}

func BuildCareerPageUserPrompt(company string) string {
	return "Find the official career page URL for: " + company
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
