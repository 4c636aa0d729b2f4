package llm

import "context"

// MatchProfile is the candidate-preference context embedded in the
// extraction prompt; the model scores each posting against it.
type MatchProfile struct {
	PreferredLocations  []string `json:"preferred_locations,omitempty"`
	PreferredExperience string   `json:"preferred_experience,omitempty"`
	PreferredSkills     []string `json:"preferred_skills,omitempty"`
	JobType             string   `json:"job_type,omitempty"`
}

// JobFields is the normalized shape we want from the model.
type JobFields struct {
	CompanyName        string  `json:"company_name"`
	RoleName           string  `json:"role_name"`
	ExperienceRequired string  `json:"experience_required,omitempty"`
	ExperienceType     string  `json:"experience_type,omitempty"` // junior/mid/senior style label
	Location           string  `json:"location,omitempty"`
	Remote             string  `json:"remote,omitempty"`
	HybridOrFlexible   string  `json:"hybrid_or_flexible,omitempty"`
	MatchScore         float64 `json:"match_score,omitempty"` // 0..10
}

type ExtractRequest struct {
	Content string
	URL     string
	Origin  string
	Match   MatchProfile
}

// FieldExtractor is the interface the pipeline depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (JobFields, []byte /*rawJSON*/, error)
}

// ReviewFields is one review source's answer for one company, still on
// the source's native rating scale.
type ReviewFields struct {
	Source      string   `json:"source"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count,omitempty"`
	Comments    []string `json:"comments,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// ReviewSearcher runs one grounded search per (company, source) pair.
type ReviewSearcher interface {
	SearchReviews(ctx context.Context, company, source string) (ReviewFields, []byte, error)
}

// CareerPageFinder resolves a company's official careers URL, or
// "NOT_FOUND" when none exists.
type CareerPageFinder interface {
	FindCareerPage(ctx context.Context, company string) (string, error)
}
