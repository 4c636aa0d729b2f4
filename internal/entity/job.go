package entity

import (
	"strings"
	"time"

	"jobscout/constants"
)

// JobSource is one input URL plus its derived origin tag. Immutable
// once read; Index is the position in the input list and fixes row
// ordering in the final report.
type JobSource struct {
	Index  int
	URL    string
	Origin constants.Origin
}

// StageStatus is the Ok/Failed(reason) outcome of one pipeline stage.
// Failures are carried on records instead of unwinding the batch.
type StageStatus struct {
	OK     bool
	Reason string
}

func StatusOK() StageStatus { return StageStatus{OK: true} }

func StatusFailed(reason string) StageStatus { return StageStatus{Reason: reason} }

// RawPosting is the fetch stage output for one source. Content is
// empty whenever FetchStatus reports a failure.
type RawPosting struct {
	Source      JobSource
	Content     string
	FetchStatus StageStatus
	FetchedAt   time.Time
}

// JobRecord is the extraction stage output; never mutated after the
// producing stage returns. Fields are best-effort: a record with every
// field empty is still kept for the report.
type JobRecord struct {
	Source             JobSource
	Company            string // original casing, for display
	CompanyKey         string // normalized join key into reviews
	Role               string
	ExperienceRequired string
	ExperienceType     string
	Location           string
	Remote             string
	HybridOrFlexible   string
	MatchScore         float64
	ExtractionStatus   StageStatus
	Raw                *RawPosting // audit reference back to the fetch output
}

// CompanyKey folds case and whitespace so the extractor, the review
// aggregator, and the report join all agree on one key.
func CompanyKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
