package reviews

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout/constants"
	"jobscout/internal/entity"
)

// Aggregator queries every configured source for each distinct company
// and merges the observations into one aggregate per company. Company
// lookups run concurrently; a failed source reduces the breakdown but
// never blocks the others.
type Aggregator struct {
	sources     []Source
	maxInFlight int
	topComments int
	logger      *slog.Logger
}

func NewAggregator(sources []Source, maxInFlight, topComments int, logger *slog.Logger) *Aggregator {
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	if topComments <= 0 {
		topComments = constants.TopCommentsBound
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		sources:     sources,
		maxInFlight: maxInFlight,
		topComments: topComments,
		logger:      logger,
	}
}

// Aggregate resolves reviews for every company in the map (normalized
// key -> display name). Every key gets an aggregate back, even when
// all source queries fail, so the report join always succeeds.
func (a *Aggregator) Aggregate(ctx context.Context, companies map[string]string) map[string]entity.CompanyReviewAggregate {
	out := make(map[string]entity.CompanyReviewAggregate, len(companies))
	if len(companies) == 0 {
		return out
	}
	start := time.Now()

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(a.maxInFlight)

	for key, display := range companies {
		key, display := key, display
		g.Go(func() error {
			agg := a.aggregateCompany(ctx, key, display)
			mu.Lock()
			out[key] = agg
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	a.logger.Info("reviews.aggregate.ok",
		"companies", len(out),
		"sources", len(a.sources),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (a *Aggregator) aggregateCompany(ctx context.Context, key, display string) entity.CompanyReviewAggregate {
	var obs []entity.ReviewObservation
	for _, src := range a.sources {
		o, err := src.Lookup(ctx, display)
		if err != nil {
			a.logger.Warn("reviews.source.unavailable",
				"company", display, "source", src.Name(), "error", err)
			continue
		}
		obs = append(obs, o)
	}
	return Merge(key, display, obs, a.topComments)
}

// Merge reduces all observations for one company into one aggregate.
// Pure and idempotent: the same observations always produce the same
// aggregate, with no accumulation across calls.
//
// The average is weighted by review count so a single low-volume bad
// review cannot over-penalize a company. When no source reported a
// count, the plain mean of ratings is used instead.
func Merge(key, display string, obs []entity.ReviewObservation, topComments int) entity.CompanyReviewAggregate {
	if topComments <= 0 {
		topComments = constants.TopCommentsBound
	}
	agg := entity.CompanyReviewAggregate{
		Company:         display,
		CompanyKey:      key,
		SourceBreakdown: make(map[string]entity.ReviewObservation, len(obs)),
	}

	var (
		weighted  float64
		ratingSum float64
		total     int
	)
	for _, o := range obs {
		agg.SourceBreakdown[o.Source] = o
		weighted += o.Rating * float64(o.ReviewCount)
		ratingSum += o.Rating
		total += o.ReviewCount
	}
	agg.TotalReviewCount = total

	switch {
	case total > 0:
		agg.AverageRating = weighted / float64(total)
	case len(obs) > 0:
		agg.AverageRating = ratingSum / float64(len(obs))
	}

	agg.TopComments = topCommentsOf(obs, topComments)
	return agg
}

// topCommentsOf keeps the longest snippets, ties broken
// lexicographically so selection is stable across runs.
func topCommentsOf(obs []entity.ReviewObservation, bound int) []string {
	var all []string
	for _, o := range obs {
		for _, c := range o.Comments {
			if s := strings.TrimSpace(c); s != "" {
				all = append(all, s)
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i]) != len(all[j]) {
			return len(all[i]) > len(all[j])
		}
		return all[i] < all[j]
	})
	if len(all) > bound {
		all = all[:bound]
	}
	return all
}
