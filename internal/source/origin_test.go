package source

import (
	"testing"

	"jobscout/constants"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want constants.Origin
	}{
		{"https://jobs.lever.co/acme/abc-123", constants.OriginLever},
		{"https://boards.greenhouse.io/beta/jobs/42", constants.OriginGreenhouse},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/R-1", constants.OriginWorkday},
		{"https://www.linkedin.com/jobs/view/987654", constants.OriginLinkedIn},
		{"https://jobs.smartrecruiters.com/Gamma/744000", constants.OriginSmartRecruiters},
		{"https://www.indeed.com/viewjob?jk=abc", constants.OriginIndeed},
		{"https://in.indeed.com/viewjob?jk=abc", constants.OriginIndeed},
		{"https://www.naukri.com/job-listings-backend", constants.OriginNaukri},
		{"https://www.linkedin.com/in/someone", constants.OriginUnknown},
		{"https://example.com/careers/backend", constants.OriginUnknown},
		{"not a url at all", constants.OriginUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.url); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
