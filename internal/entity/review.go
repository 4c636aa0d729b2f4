package entity

// ReviewObservation is one (company, source) rating already normalized
// onto the common 0..5 scale at the source boundary.
type ReviewObservation struct {
	Company     string
	Source      string
	Rating      float64
	ReviewCount int
	Comments    []string
	URL         string
}

// CompanyReviewAggregate merges every observation sharing a company
// key. AverageRating is the review-count-weighted mean across sources.
// SourceBreakdown is present-but-empty for companies with zero
// successful lookups so the report join always succeeds.
type CompanyReviewAggregate struct {
	Company          string
	CompanyKey       string
	AverageRating    float64
	TotalReviewCount int
	SourceBreakdown  map[string]ReviewObservation
	TopComments      []string
}
