package constants

// Origin classifies which job-board URL shape a posting source matches.
// Unmatched sources carry OriginUnknown and are fetched generically.
type Origin string

const (
	OriginLever           Origin = "lever"
	OriginGreenhouse      Origin = "greenhouse"
	OriginWorkday         Origin = "workday"
	OriginLinkedIn        Origin = "linkedin"
	OriginSmartRecruiters Origin = "smartrecruiters"
	OriginIndeed          Origin = "indeed"
	OriginNaukri          Origin = "naukri"
	OriginUnknown         Origin = "unknown"
)
