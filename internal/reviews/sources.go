package reviews

import (
	"context"
	"log/slog"

	"jobscout/internal/common"
	"jobscout/internal/entity"
	"jobscout/internal/llm"
)

// Source looks up one company's reviews on one site. Implementations
// normalize their native rating scale at this boundary; nothing
// source-specific leaks into the aggregate.
type Source interface {
	Name() string
	Lookup(ctx context.Context, company string) (entity.ReviewObservation, error)
}

// SearchSource answers lookups with one grounded model search per
// company against a single named review site.
type SearchSource struct {
	name     string
	scale    Scale
	searcher llm.ReviewSearcher
	logger   *slog.Logger
}

var _ Source = (*SearchSource)(nil)

func NewSearchSource(name string, scaleMax float64, searcher llm.ReviewSearcher, logger *slog.Logger) *SearchSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchSource{
		name:     name,
		scale:    Scale{Max: scaleMax},
		searcher: searcher,
		logger:   logger,
	}
}

func (s *SearchSource) Name() string { return s.name }

func (s *SearchSource) Lookup(ctx context.Context, company string) (entity.ReviewObservation, error) {
	fields, _, err := s.searcher.SearchReviews(ctx, company, s.name)
	if err != nil {
		return entity.ReviewObservation{}, common.NewAppError(common.CodeReviewSourceUnavailable, s.name+" lookup for "+company, err)
	}

	count := fields.ReviewCount
	if count < 0 {
		count = 0
	}
	return entity.ReviewObservation{
		Company:     company,
		Source:      s.name,
		Rating:      s.scale.Normalize(fields.Rating),
		ReviewCount: count,
		Comments:    fields.Comments,
		URL:         fields.URL,
	}, nil
}
