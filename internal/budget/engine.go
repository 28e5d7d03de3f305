package budget

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tripbudget/internal/config"
	"tripbudget/internal/domain"
)

// Engine turns normalized trip records into an itemized budget report. It
// holds no state across invocations; the price cache handed in as Lookup
// owns memoization.
type Engine struct {
	Rates  config.Rates
	Prices Lookup

	// LookupConcurrency bounds concurrent price lookups per trip.
	LookupConcurrency int

	// IncludeAverages appends per-person and per-student summary rows.
	// Both fail explicitly on zero headcounts.
	IncludeAverages bool
}

func New(rates config.Rates, prices Lookup, lookupConcurrency int) (*Engine, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	if prices == nil {
		return nil, domain.ConfigurationError{Field: "prices", Msg: "price lookup required"}
	}
	if lookupConcurrency < 1 {
		lookupConcurrency = 1
	}
	return &Engine{
		Rates:             rates,
		Prices:            prices,
		LookupConcurrency: lookupConcurrency,
		IncludeAverages:   true,
	}, nil
}

// Compute produces the full report or a specific error naming the
// offending trip; it never returns a partial report.
func (e *Engine) Compute(ctx context.Context, trips []domain.TripRecord) (domain.BudgetReport, error) {
	if len(trips) == 0 {
		return domain.BudgetReport{}, domain.ValidationError{Field: "trips", Msg: "at least one trip required"}
	}
	for i, t := range trips {
		if err := t.Validate(); err != nil {
			return domain.BudgetReport{}, domain.ValidationError{
				Field: fmt.Sprintf("trips[%d]", i),
				Msg:   fmt.Sprintf("trip %q invalid", t.Label),
				Err:   err,
			}
		}
	}

	// Trips are independent; row order in the final report still follows
	// input order via the indexed result slice.
	perTrip := make([][]domain.LineItem, len(trips))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range trips {
		i, t := i, t
		g.Go(func() error {
			rows, err := e.computeTrip(gctx, t)
			if err != nil {
				return err
			}
			perTrip[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.BudgetReport{}, err
	}

	return assemble(trips, perTrip, e.Rates, e.IncludeAverages)
}

// computeTrip emits one trip's rows in the fixed category order: Hotel,
// Meals, Guide, Attraction, Transport.
func (e *Engine) computeTrip(ctx context.Context, t domain.TripRecord) ([]domain.LineItem, error) {
	attraction, err := AttractionRows(ctx, e.Prices, t, e.Rates, e.LookupConcurrency)
	if err != nil {
		return nil, err
	}

	rows := []domain.LineItem{HotelRow(t, e.Rates)}
	rows = append(rows, MealRows(t, e.Rates)...)
	rows = append(rows, GuideRow(t, e.Rates))
	rows = append(rows, attraction...)
	rows = append(rows, BusRow(t, e.Rates), TransferRow(t, e.Rates))
	return rows, nil
}
