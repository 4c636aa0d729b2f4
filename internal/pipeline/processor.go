package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout/constants"
	"jobscout/internal/common"
	"jobscout/internal/entity"
	"jobscout/internal/llm"
	"jobscout/internal/reviews"
)

// ContentFetcher retrieves one posting per source.
type ContentFetcher interface {
	Fetch(ctx context.Context, src entity.JobSource) entity.RawPosting
}

// Processor coordinates fetch+extract per URL, then review aggregation
// over the distinct companies observed.
type Processor struct {
	logger      *slog.Logger
	fetcher     ContentFetcher
	extractor   llm.FieldExtractor
	reviews     *reviews.Aggregator
	maxInFlight int
	match       llm.MatchProfile
}

func NewProcessor(logger *slog.Logger, fetcher ContentFetcher, extractor llm.FieldExtractor, aggregator *reviews.Aggregator, maxInFlight int, match llm.MatchProfile) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	return &Processor{
		logger:      logger,
		fetcher:     fetcher,
		extractor:   extractor,
		reviews:     aggregator,
		maxInFlight: maxInFlight,
		match:       match,
	}
}

// Run processes every source and returns one JobRecord per input, in
// input order, plus the review aggregates for all distinct companies.
// Per-URL pipelines run concurrently under the in-flight bound;
// results land in slots keyed by input index, never in completion
// order. Worker failures become record statuses and never cancel
// siblings; on context cancellation the finished records are kept for
// a partial report.
func (p *Processor) Run(ctx context.Context, sources []entity.JobSource) ([]entity.JobRecord, map[string]entity.CompanyReviewAggregate) {
	start := time.Now()
	records := make([]entity.JobRecord, len(sources))

	g := new(errgroup.Group)
	g.SetLimit(p.maxInFlight)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				records[i] = cancelledRecord(src)
				return nil
			}
			posting := p.fetcher.Fetch(ctx, src)
			records[i] = p.extractRecord(ctx, posting)
			return nil
		})
	}
	_ = g.Wait()

	companies := DistinctCompanies(records)
	aggregates := map[string]entity.CompanyReviewAggregate{}
	if p.reviews != nil && len(companies) > 0 {
		aggregates = p.reviews.Aggregate(ctx, companies)
	}

	p.logger.Info("pipeline.run.ok",
		"urls", len(sources),
		"companies", len(companies),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, aggregates
}

// extractRecord turns one fetched posting into a JobRecord. A failed
// fetch short-circuits: the model is never invoked for it.
func (p *Processor) extractRecord(ctx context.Context, posting entity.RawPosting) entity.JobRecord {
	rec := entity.JobRecord{
		Source: posting.Source,
		Raw:    &posting,
	}
	if !posting.FetchStatus.OK {
		rec.ExtractionStatus = entity.StatusFailed(constants.ReasonFetchFailed)
		return rec
	}

	fields, _, err := p.extractor.ExtractFields(ctx, llm.ExtractRequest{
		Content: posting.Content,
		URL:     posting.Source.URL,
		Origin:  string(posting.Source.Origin),
		Match:   p.match,
	})
	if err != nil {
		reason := constants.ReasonModelError
		var ae *common.AppError
		if errors.As(err, &ae) && ae.Code == common.CodeUnparseableResponse {
			reason = constants.ReasonUnparseable
		}
		p.logger.Warn("pipeline.extract.failed",
			"url", posting.Source.URL, "reason", reason, "error", err)
		rec.ExtractionStatus = entity.StatusFailed(reason)
		return rec
	}

	rec.Company = strings.TrimSpace(fields.CompanyName)
	rec.CompanyKey = entity.CompanyKey(rec.Company)
	rec.Role = fields.RoleName
	rec.ExperienceRequired = fields.ExperienceRequired
	rec.ExperienceType = fields.ExperienceType
	rec.Location = fields.Location
	rec.Remote = fields.Remote
	rec.HybridOrFlexible = fields.HybridOrFlexible
	rec.MatchScore = fields.MatchScore
	rec.ExtractionStatus = entity.StatusOK()
	return rec
}

func cancelledRecord(src entity.JobSource) entity.JobRecord {
	return entity.JobRecord{
		Source: src,
		Raw: &entity.RawPosting{
			Source:      src,
			FetchStatus: entity.StatusFailed(constants.ReasonCancelled),
		},
		ExtractionStatus: entity.StatusFailed(constants.ReasonCancelled),
	}
}

// DistinctCompanies maps each normalized company key to its first-seen
// display casing, in record order.
func DistinctCompanies(records []entity.JobRecord) map[string]string {
	out := make(map[string]string)
	for _, r := range records {
		if r.CompanyKey == "" {
			continue
		}
		if _, ok := out[r.CompanyKey]; !ok {
			out[r.CompanyKey] = r.Company
		}
	}
	return out
}
