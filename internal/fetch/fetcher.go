package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscout/constants"
	"jobscout/internal/entity"
)

// Config for the content fetcher.
type Config struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// Fetcher retrieves one posting page per call and reduces it to the
// visible text the extractor will see. Any network error, non-success
// status, or empty body yields a failed RawPosting rather than an
// error; a single bad URL must never abort the batch.
type Fetcher struct {
	cfg     Config
	hc      *http.Client
	limiter *HostLimiter
	logger  *slog.Logger
}

func New(cfg Config, limiter *HostLimiter, logger *slog.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jobscout/1.0 (+local)"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		logger:  logger,
	}
}

// Fetch performs one network retrieval for the source. Called at most
// once per source per run; retries are a caller concern.
func (f *Fetcher) Fetch(ctx context.Context, src entity.JobSource) entity.RawPosting {
	start := time.Now()

	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, src.URL); err != nil {
			return f.failed(src, fmt.Sprintf("rate wait: %v", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return f.failed(src, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	res, err := f.hc.Do(req)
	if err != nil {
		return f.failed(src, fmt.Sprintf("get: %v", err))
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode >= 400 {
		return f.failed(src, fmt.Sprintf("status %d", res.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(res.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return f.failed(src, fmt.Sprintf("parse body: %v", err))
	}

	content := extractText(doc, src.Origin)
	if content == "" {
		return f.failed(src, "empty body")
	}

	f.logger.Info("fetch.ok",
		"url", src.URL,
		"origin", string(src.Origin),
		"chars", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entity.RawPosting{
		Source:      src,
		Content:     content,
		FetchStatus: entity.StatusOK(),
		FetchedAt:   time.Now().UTC(),
	}
}

func (f *Fetcher) failed(src entity.JobSource, reason string) entity.RawPosting {
	f.logger.Warn("fetch.failed", "url", src.URL, "reason", reason)
	return entity.RawPosting{
		Source:      src,
		FetchStatus: entity.StatusFailed(reason),
		FetchedAt:   time.Now().UTC(),
	}
}

// contentSelectors narrows extraction to the posting body where the
// board's markup is known; body text is the generic fallback.
var contentSelectors = map[constants.Origin][]string{
	constants.OriginLever:      {".posting-page", ".content", "[data-qa='posting']"},
	constants.OriginGreenhouse: {"#content", ".opening", "#app_body"},
	constants.OriginWorkday:    {"[data-automation-id='jobPostingPage']", "[data-automation-id='jobPostingDescription']"},
	constants.OriginLinkedIn:   {".description", ".show-more-less-html"},
	constants.OriginIndeed:     {"#jobDescriptionText", ".jobsearch-JobComponent"},
}

func extractText(doc *goquery.Document, origin constants.Origin) string {
	doc.Find("script, style, noscript").Remove()

	for _, sel := range contentSelectors[origin] {
		if t := cleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return cleanText(doc.Find("body").Text())
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
