package entity

import "time"

// SummaryRow is one distinct company observed in the job records.
type SummaryRow struct {
	Company       string
	JobCount      int
	AvgMatchScore float64
	AvgRating     float64
}

// JobsDetailRow is one job record; rows stay in input order and failed
// records are kept with their status reasons, never dropped.
type JobsDetailRow struct {
	URL              string
	Origin           string
	Company          string
	Role             string
	Experience       string
	Level            string
	Location         string
	Remote           string
	MatchScore       float64
	ReviewRating     string // blank when no aggregate joins
	FetchStatus      string
	ExtractionStatus string
}

// ReviewsDetailRow is one company review aggregate.
type ReviewsDetailRow struct {
	Company       string
	AverageRating float64
	TotalReviews  int
	Sources       string
	TopComments   string
}

// Report is built once per run from the full in-memory collections.
// GeneratedAt is the only timestamp and renders into a dedicated
// metadata cell, never into data rows.
type Report struct {
	GeneratedAt   time.Time
	Summary       []SummaryRow
	JobsDetail    []JobsDetailRow
	ReviewsDetail []ReviewsDetailRow
}
