package constants

// Failure reasons carried on per-record stage statuses. These end up in
// the report verbatim, so keep them short and stable.
const (
	ReasonFetchFailed = "fetch failed"
	ReasonModelError  = "model error"
	ReasonUnparseable = "unparseable response"
	ReasonCancelled   = "cancelled"
)

const (
	// RatingScaleMax is the ceiling of the common review scale every
	// source rating is normalized onto.
	RatingScaleMax = 5.0

	// TopCommentsBound caps the comment snippets kept per company.
	TopCommentsBound = 5

	// MatchScoreMax bounds the model-assigned posting match score.
	MatchScoreMax = 10.0
)
