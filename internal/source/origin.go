package source

import (
	"net/url"
	"strings"

	"jobscout/constants"
)

// Classify tags a URL by job-board shape. Each board has a distinct
// host/path pattern; anything unmatched is "unknown" but still gets
// fetched generically.
func Classify(raw string) constants.Origin {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return constants.OriginUnknown
	}
	host := strings.ToLower(u.Host)
	path := strings.ToLower(u.Path)

	switch {
	case strings.Contains(host, "lever.co"):
		return constants.OriginLever
	case strings.Contains(host, "greenhouse.io"):
		return constants.OriginGreenhouse
	case strings.Contains(host, "myworkdayjobs.com") || strings.Contains(host, "workday.com"):
		return constants.OriginWorkday
	case strings.Contains(host, "linkedin.com") && strings.Contains(path, "/jobs"):
		return constants.OriginLinkedIn
	case strings.Contains(host, "smartrecruiters.com"):
		return constants.OriginSmartRecruiters
	case strings.Contains(host, "indeed."):
		return constants.OriginIndeed
	case strings.Contains(host, "naukri.com"):
		return constants.OriginNaukri
	default:
		return constants.OriginUnknown
	}
}
