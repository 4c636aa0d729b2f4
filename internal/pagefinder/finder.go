// Package pagefinder resolves company career page URLs with grounded
// model search and writes them as a plain-text table.
package pagefinder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout/internal/common"
	"jobscout/internal/llm"
)

// NotFound marks a company the model could not resolve a page for.
const NotFound = "NOT_FOUND"

// Result pairs a company with its resolved career page URL, or
// NotFound, or "ERROR: <detail>" when the lookup itself failed.
type Result struct {
	Company string
	URL     string
}

// Finder resolves career pages for a list of companies.
type Finder struct {
	finder      llm.CareerPageFinder
	maxInFlight int
	logger      *slog.Logger
}

func New(finder llm.CareerPageFinder, maxInFlight int, logger *slog.Logger) *Finder {
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{
		finder:      finder,
		maxInFlight: maxInFlight,
		logger:      logger,
	}
}

// ReadCompanies loads one company name per line, trimming blanks and
// deduplicating while preserving first-seen order.
func ReadCompanies(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, common.NewAppError(common.CodeSourceNotFound, "company list "+path, common.ErrSourceNotFound)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, common.WrapError(err, "open company list")
	}
	defer f.Close()

	var (
		companies []string
		seen      = make(map[string]struct{})
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		companies = append(companies, name)
	}
	if err := sc.Err(); err != nil {
		return nil, common.WrapError(err, "read company list")
	}
	if len(companies) == 0 {
		return nil, common.NewAppError(common.CodeEmptySource, "no companies in "+path, common.ErrEmptySource)
	}
	return companies, nil
}

// Run resolves every company concurrently under the in-flight bound.
// Results keep input order; lookup failures become ERROR rows and
// never stop the batch.
func (f *Finder) Run(ctx context.Context, companies []string) []Result {
	start := time.Now()
	results := make([]Result, len(companies))

	g := new(errgroup.Group)
	g.SetLimit(f.maxInFlight)

	for i, company := range companies {
		i, company := i, company
		g.Go(func() error {
			results[i] = f.resolve(ctx, company)
			return nil
		})
	}
	_ = g.Wait()

	f.logger.Info("pagefinder.run.ok",
		"companies", len(companies),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results
}

func (f *Finder) resolve(ctx context.Context, company string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Company: company, URL: "ERROR: " + err.Error()}
	}
	url, err := f.finder.FindCareerPage(ctx, company)
	if err != nil {
		f.logger.Warn("pagefinder.lookup.failed", "company", company, "error", err)
		return Result{Company: company, URL: "ERROR: " + err.Error()}
	}
	url = strings.TrimSpace(url)
	if url == "" || strings.EqualFold(url, NotFound) {
		return Result{Company: company, URL: NotFound}
	}
	return Result{Company: company, URL: url}
}

// WriteResults renders the results as an aligned two-column table.
func WriteResults(path string, results []Result) error {
	width := len("Company")
	for _, r := range results {
		if len(r.Company) > width {
			width = len(r.Company)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s | %s\n", width, "Company", "Career Page URL")
	fmt.Fprintf(&b, "%s-+-%s\n", strings.Repeat("-", width), strings.Repeat("-", len("Career Page URL")))
	for _, r := range results {
		fmt.Fprintf(&b, "%-*s | %s\n", width, r.Company, r.URL)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return common.WrapError(err, "write results")
	}
	return nil
}

// IsFatal reports whether a read error should abort the run rather
// than produce an empty output.
func IsFatal(err error) bool {
	return errors.Is(err, common.ErrSourceNotFound)
}
