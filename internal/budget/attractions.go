package budget

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"tripbudget/internal/config"
	"tripbudget/internal/domain"
	"tripbudget/internal/utils"
)

// Lookup is the price collaborator contract the engine consumes. It never
// fails; an unresolvable place yields the zero quote.
type Lookup interface {
	Lookup(ctx context.Context, place string) domain.PriceQuote
}

// NormalizePlaces flattens raw place entries (each may itself be a
// separator-joined list), trims them, and deduplicates preserving
// first-seen order.
func NormalizePlaces(raw []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, entry := range raw {
		for _, p := range utils.SplitPlaces(entry) {
			p = utils.NormalizeSpace(p)
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// AttractionRows prices every distinct place once and emits a student row
// and an adult row per place, each reproducible from its own
// quantity*unit_price. Zero-headcount rows are still emitted for audit.
// The returned subtotal is cross-checked against the row sum; a mismatch
// means the breakdown is corrupt and is surfaced as an internal error.
func AttractionRows(ctx context.Context, prices Lookup, t domain.TripRecord, r config.Rates, concurrency int) ([]domain.LineItem, error) {
	places := NormalizePlaces(t.Places)
	if len(places) == 0 {
		return nil, domain.ValidationError{Field: "places", Msg: fmt.Sprintf("trip %q has no places after normalization", t.Label)}
	}

	// Warm the cache concurrently; row building below reads the settled
	// quotes in input order.
	if concurrency < 1 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, p := range places {
		p := p
		g.Go(func() error {
			prices.Lookup(gctx, p)
			return nil
		})
	}
	// Lookups never fail by contract.
	_ = g.Wait()

	studentCount := t.StudentCount
	adultCount := t.TeacherCount + r.GuideCount

	rows := make([]domain.LineItem, 0, 2*len(places))
	var subtotal, rowSum float64
	for _, p := range places {
		q := prices.Lookup(ctx, p)
		studentTotal := q.Student * float64(studentCount)
		adultTotal := q.Adult * float64(adultCount)
		subtotal += studentTotal + adultTotal

		rows = append(rows,
			domain.LineItem{
				Scope:     t.Label,
				Category:  domain.CategoryAttraction,
				Item:      p + " (student)",
				Unit:      "ticket",
				Quantity:  float64(studentCount),
				UnitPrice: q.Student,
				Total:     studentTotal,
			},
			domain.LineItem{
				Scope:     t.Label,
				Category:  domain.CategoryAttraction,
				Item:      p + " (adult)",
				Unit:      "ticket",
				Quantity:  float64(adultCount),
				UnitPrice: q.Adult,
				Total:     adultTotal,
			},
		)
		rowSum += studentTotal + adultTotal
	}

	if math.Abs(subtotal-rowSum) > 1e-9 {
		return nil, domain.InternalError{Msg: fmt.Sprintf("attraction subtotal mismatch for trip %q", t.Label)}
	}
	return rows, nil
}
