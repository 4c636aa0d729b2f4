package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"

	"jobscout/internal/entity"
)

const (
	sheetSummary = "Summary"
	sheetJobs    = "JobsDetail"
	sheetReviews = "ReviewsDetail"

	headerFillColor = "4472C4"
)

// WriteXLSX renders the report as a three-sheet workbook and returns
// the file bytes. Table names, columns, and row order come from the
// builder; only presentation lives here.
func WriteXLSX(rep entity.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	f.SetSheetName("Sheet1", sheetSummary)
	if _, err := f.NewSheet(sheetJobs); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetReviews); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 14},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, rep, headerStyle, titleStyle); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeJobsSheet(f, rep, headerStyle); err != nil {
		return nil, fmt.Errorf("jobs sheet: %w", err)
	}
	if err := writeReviewsSheet(f, rep, headerStyle); err != nil {
		return nil, fmt.Errorf("reviews sheet: %w", err)
	}

	idx, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, rep entity.Report, headerStyle, titleStyle int) error {
	if err := setRow(f, sheetSummary, 1, "Job Scraping Report"); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheetSummary, "A1", "B1", titleStyle)

	// The only timestamp in the workbook: a dedicated metadata cell,
	// never interleaved into data rows.
	if err := setRow(f, sheetSummary, 2, "Generated", rep.GeneratedAt.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	if err := setRow(f, sheetSummary, 4, "Total Jobs Found", len(rep.JobsDetail)); err != nil {
		return err
	}
	if err := setRow(f, sheetSummary, 5, "Companies Reviewed", len(rep.ReviewsDetail)); err != nil {
		return err
	}

	const headerRow = 7
	headers := []string{"Company", "Job Count", "Avg Match Score", "Avg Review Rating"}
	if err := setHeaders(f, sheetSummary, headerRow, headers, headerStyle); err != nil {
		return err
	}
	for i, row := range rep.Summary {
		if err := setRow(f, sheetSummary, headerRow+1+i, row.Company, row.JobCount, round2(row.AvgMatchScore), round2(row.AvgRating)); err != nil {
			return err
		}
	}

	// top matches block under the company table
	top := topMatches(rep.JobsDetail, 5)
	if len(top) > 0 {
		row := headerRow + len(rep.Summary) + 2
		if err := setRow(f, sheetSummary, row, "Top Matches"); err != nil {
			return err
		}
		if err := setHeaders(f, sheetSummary, row+1, []string{"Company", "Role", "Match Score", "URL"}, headerStyle); err != nil {
			return err
		}
		for i, m := range top {
			if err := setRow(f, sheetSummary, row+2+i, m.Company, m.Role, round2(m.MatchScore), m.URL); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(sheetSummary, "A", "A", 35)
	_ = f.SetColWidth(sheetSummary, "B", "D", 18)
	return nil
}

// topMatches keeps the highest-scoring extracted rows, ties broken by
// input order so the block is stable across runs.
func topMatches(rows []entity.JobsDetailRow, bound int) []entity.JobsDetailRow {
	var ok []entity.JobsDetailRow
	for _, r := range rows {
		if r.ExtractionStatus == "ok" {
			ok = append(ok, r)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool {
		return ok[i].MatchScore > ok[j].MatchScore
	})
	if len(ok) > bound {
		ok = ok[:bound]
	}
	return ok
}

func writeJobsSheet(f *excelize.File, rep entity.Report, headerStyle int) error {
	headers := []string{
		"URL", "Origin", "Company", "Role", "Experience", "Level",
		"Location", "Remote", "Match Score", "Review Rating",
		"Fetch Status", "Extraction Status",
	}
	if err := setHeaders(f, sheetJobs, 1, headers, headerStyle); err != nil {
		return err
	}
	for i, row := range rep.JobsDetail {
		if err := setRow(f, sheetJobs, i+2,
			row.URL, row.Origin, row.Company, row.Role, row.Experience, row.Level,
			row.Location, row.Remote, round2(row.MatchScore), row.ReviewRating,
			row.FetchStatus, row.ExtractionStatus,
		); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheetJobs, "A", "A", 50)
	_ = f.SetColWidth(sheetJobs, "B", "B", 14)
	_ = f.SetColWidth(sheetJobs, "C", "D", 28)
	_ = f.SetColWidth(sheetJobs, "E", "H", 16)
	_ = f.SetColWidth(sheetJobs, "I", "J", 13)
	_ = f.SetColWidth(sheetJobs, "K", "L", 24)
	return nil
}

func writeReviewsSheet(f *excelize.File, rep entity.Report, headerStyle int) error {
	headers := []string{"Company", "Average Rating", "Total Reviews", "Sources", "Top Comments"}
	if err := setHeaders(f, sheetReviews, 1, headers, headerStyle); err != nil {
		return err
	}
	for i, row := range rep.ReviewsDetail {
		if err := setRow(f, sheetReviews, i+2,
			row.Company, round2(row.AverageRating), row.TotalReviews, row.Sources, row.TopComments,
		); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheetReviews, "A", "A", 30)
	_ = f.SetColWidth(sheetReviews, "B", "C", 15)
	_ = f.SetColWidth(sheetReviews, "D", "D", 45)
	_ = f.SetColWidth(sheetReviews, "E", "E", 60)
	return nil
}

func setHeaders(f *excelize.File, sheet string, row int, headers []string, style int) error {
	if err := setRow(f, sheet, row, toAny(headers)...); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	return f.SetCellStyle(sheet, first, last, style)
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
