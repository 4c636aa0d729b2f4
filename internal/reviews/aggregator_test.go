package reviews

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"jobscout/internal/entity"
	"jobscout/internal/llm"
)

type fakeSource struct {
	name string
	obs  entity.ReviewObservation
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Lookup(ctx context.Context, company string) (entity.ReviewObservation, error) {
	if f.err != nil {
		return entity.ReviewObservation{}, f.err
	}
	o := f.obs
	o.Company = company
	o.Source = f.name
	return o, nil
}

func TestMergeWeightedAverage(t *testing.T) {
	obs := []entity.ReviewObservation{
		{Source: "Glassdoor", Rating: 4.0, ReviewCount: 100},
		{Source: "Indeed", Rating: 2.0, ReviewCount: 1},
	}
	agg := Merge("acme", "Acme", obs, 5)

	want := (4.0*100 + 2.0*1) / 101
	if math.Abs(agg.AverageRating-want) > 1e-9 {
		t.Errorf("AverageRating = %v, want %v", agg.AverageRating, want)
	}
	if agg.TotalReviewCount != 101 {
		t.Errorf("TotalReviewCount = %d", agg.TotalReviewCount)
	}
	if len(agg.SourceBreakdown) != 2 {
		t.Errorf("SourceBreakdown size = %d", len(agg.SourceBreakdown))
	}
}

func TestMergeZeroCountsFallBackToPlainMean(t *testing.T) {
	obs := []entity.ReviewObservation{
		{Source: "Glassdoor", Rating: 4.0},
		{Source: "Indeed", Rating: 2.0},
	}
	agg := Merge("acme", "Acme", obs, 5)
	if agg.AverageRating != 3.0 {
		t.Errorf("AverageRating = %v, want 3.0", agg.AverageRating)
	}
}

func TestMergeNoObservations(t *testing.T) {
	agg := Merge("acme", "Acme", nil, 5)
	if agg.AverageRating != 0 || agg.TotalReviewCount != 0 {
		t.Errorf("empty merge: rating=%v count=%d", agg.AverageRating, agg.TotalReviewCount)
	}
	if agg.SourceBreakdown == nil {
		t.Error("SourceBreakdown must be non-nil")
	}
	if agg.Company != "Acme" || agg.CompanyKey != "acme" {
		t.Errorf("identity fields: %q %q", agg.Company, agg.CompanyKey)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	obs := []entity.ReviewObservation{
		{Source: "Glassdoor", Rating: 4.0, ReviewCount: 10, Comments: []string{"good pay", "great team culture"}},
		{Source: "Indeed", Rating: 3.5, ReviewCount: 5, Comments: []string{"ok"}},
	}
	first := Merge("acme", "Acme", obs, 5)
	second := Merge("acme", "Acme", obs, 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated merge diverged:\n%+v\n%+v", first, second)
	}
}

func TestTopCommentsBoundAndOrder(t *testing.T) {
	obs := []entity.ReviewObservation{
		{Source: "A", Comments: []string{"bb", "dddd", "  ", "aa"}},
		{Source: "B", Comments: []string{"ccc", "eeeee", "f"}},
	}
	agg := Merge("acme", "Acme", obs, 3)

	want := []string{"eeeee", "dddd", "ccc"}
	if !reflect.DeepEqual(agg.TopComments, want) {
		t.Errorf("TopComments = %v, want %v", agg.TopComments, want)
	}
}

func TestTopCommentsTieBreakIsStable(t *testing.T) {
	obs := []entity.ReviewObservation{
		{Source: "A", Comments: []string{"beta", "alfa"}},
	}
	agg := Merge("acme", "Acme", obs, 5)
	want := []string{"alfa", "beta"}
	if !reflect.DeepEqual(agg.TopComments, want) {
		t.Errorf("TopComments = %v, want %v", agg.TopComments, want)
	}
}

func TestAggregateSkipsFailedSources(t *testing.T) {
	sources := []Source{
		&fakeSource{name: "Glassdoor", obs: entity.ReviewObservation{Rating: 4.0, ReviewCount: 10}},
		&fakeSource{name: "Comparably", err: errors.New("quota exceeded")},
	}
	a := NewAggregator(sources, 2, 5, nil)

	out := a.Aggregate(context.Background(), map[string]string{"acme": "Acme", "beta corp": "Beta Corp"})
	if len(out) != 2 {
		t.Fatalf("expected aggregates for both companies, got %d", len(out))
	}
	for key, agg := range out {
		if len(agg.SourceBreakdown) != 1 {
			t.Errorf("%s: breakdown size = %d, want failed source skipped", key, len(agg.SourceBreakdown))
		}
		if agg.AverageRating != 4.0 {
			t.Errorf("%s: AverageRating = %v", key, agg.AverageRating)
		}
	}
}

type fakeSearcher struct {
	fields llm.ReviewFields
	err    error
}

func (f *fakeSearcher) SearchReviews(ctx context.Context, company, source string) (llm.ReviewFields, []byte, error) {
	return f.fields, nil, f.err
}

func TestSearchSourceNormalizesScale(t *testing.T) {
	s := NewSearchSource("Comparably", 100, &fakeSearcher{
		fields: llm.ReviewFields{Source: "Comparably", Rating: 80, ReviewCount: 50},
	}, nil)

	obs, err := s.Lookup(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if obs.Rating != 4.0 {
		t.Errorf("Rating = %v, want 4.0 on the common scale", obs.Rating)
	}
	if obs.Source != "Comparably" || obs.Company != "Acme" {
		t.Errorf("identity fields: %q %q", obs.Source, obs.Company)
	}
}

func TestScaleNormalizeClamps(t *testing.T) {
	cases := []struct {
		max    float64
		rating float64
		want   float64
	}{
		{5, 4.2, 4.2},
		{10, 8, 4.0},
		{100, 80, 4.0},
		{5, 7, 5.0},
		{5, -1, 0},
		{0, 3, 3},
	}
	for _, tc := range cases {
		s := Scale{Max: tc.max}
		if got := s.Normalize(tc.rating); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Scale{%v}.Normalize(%v) = %v, want %v", tc.max, tc.rating, got, tc.want)
		}
	}
}
