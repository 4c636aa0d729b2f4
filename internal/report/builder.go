package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobscout/internal/entity"
)

// Build joins job records to review aggregates by normalized company
// key and computes the three report tables. Pure: identical inputs
// always yield an identical report.
//
// Ordering contract: Summary by descending average rating, ties broken
// by ascending company; JobsDetail in original input order;
// ReviewsDetail by company. Records with no company stay in JobsDetail
// with blank review fields.
func Build(jobs []entity.JobRecord, reviews map[string]entity.CompanyReviewAggregate, generatedAt time.Time) entity.Report {
	rep := entity.Report{
		GeneratedAt:   generatedAt,
		Summary:       []entity.SummaryRow{},
		JobsDetail:    make([]entity.JobsDetailRow, 0, len(jobs)),
		ReviewsDetail: make([]entity.ReviewsDetailRow, 0, len(reviews)),
	}

	type bucket struct {
		display  string
		count    int
		matchSum float64
	}
	buckets := make(map[string]*bucket)

	for _, j := range jobs {
		row := entity.JobsDetailRow{
			URL:              j.Source.URL,
			Origin:           string(j.Source.Origin),
			Company:          j.Company,
			Role:             j.Role,
			Experience:       j.ExperienceRequired,
			Level:            j.ExperienceType,
			Location:         j.Location,
			Remote:           j.Remote,
			MatchScore:       j.MatchScore,
			FetchStatus:      fetchStatusOf(j),
			ExtractionStatus: statusString(j.ExtractionStatus),
		}
		if j.CompanyKey != "" {
			if agg, ok := reviews[j.CompanyKey]; ok {
				row.ReviewRating = strconv.FormatFloat(agg.AverageRating, 'f', 2, 64)
			}
			b := buckets[j.CompanyKey]
			if b == nil {
				b = &bucket{display: j.Company}
				buckets[j.CompanyKey] = b
			}
			b.count++
			b.matchSum += j.MatchScore
		}
		rep.JobsDetail = append(rep.JobsDetail, row)
	}

	for key, b := range buckets {
		row := entity.SummaryRow{
			Company:       b.display,
			JobCount:      b.count,
			AvgMatchScore: b.matchSum / float64(b.count),
		}
		if agg, ok := reviews[key]; ok {
			row.AvgRating = agg.AverageRating
		}
		rep.Summary = append(rep.Summary, row)
	}
	sort.Slice(rep.Summary, func(i, j int) bool {
		if rep.Summary[i].AvgRating != rep.Summary[j].AvgRating {
			return rep.Summary[i].AvgRating > rep.Summary[j].AvgRating
		}
		return strings.ToLower(rep.Summary[i].Company) < strings.ToLower(rep.Summary[j].Company)
	})

	keys := make([]string, 0, len(reviews))
	for key := range reviews {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		agg := reviews[key]
		rep.ReviewsDetail = append(rep.ReviewsDetail, entity.ReviewsDetailRow{
			Company:       agg.Company,
			AverageRating: agg.AverageRating,
			TotalReviews:  agg.TotalReviewCount,
			Sources:       sourcesString(agg),
			TopComments:   strings.Join(agg.TopComments, "; "),
		})
	}

	return rep
}

func fetchStatusOf(j entity.JobRecord) string {
	if j.Raw == nil {
		return ""
	}
	return statusString(j.Raw.FetchStatus)
}

func statusString(s entity.StageStatus) string {
	if s.OK {
		return "ok"
	}
	return "failed: " + s.Reason
}

// sourcesString flattens the per-source breakdown into one stable cell,
// e.g. "Glassdoor 4.20 (1200); Indeed 3.90 (87)".
func sourcesString(agg entity.CompanyReviewAggregate) string {
	names := make([]string, 0, len(agg.SourceBreakdown))
	for name := range agg.SourceBreakdown {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		o := agg.SourceBreakdown[name]
		parts = append(parts, fmt.Sprintf("%s %.2f (%d)", name, o.Rating, o.ReviewCount))
	}
	return strings.Join(parts, "; ")
}
