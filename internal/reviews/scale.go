package reviews

import "jobscout/constants"

// Scale fixes the linear mapping from a review source's native rating
// ceiling onto the common 0..5 scale: normalized = rating / Max * 5,
// clamped. Glassdoor/AmbitionBox/Indeed rate out of 5, Comparably
// reports a percentage (Max 100).
type Scale struct {
	Max float64
}

func (s Scale) Normalize(rating float64) float64 {
	max := s.Max
	if max <= 0 {
		max = constants.RatingScaleMax
	}
	v := rating / max * constants.RatingScaleMax
	if v < 0 {
		return 0
	}
	if v > constants.RatingScaleMax {
		return constants.RatingScaleMax
	}
	return v
}
