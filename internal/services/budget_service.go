package services

import (
	"context"
	"fmt"

	"tripbudget/internal/budget"
	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"
	"tripbudget/internal/utils"
)

// BudgetService sits between the HTTP layer and the engine: it resolves
// stored trips, runs the computation, and persists the result.
type BudgetService struct {
	Engine     *budget.Engine
	TripRepo   repositories.TripRepository
	ReportRepo repositories.ReportRepository
	RequestID  string
}

// Compute runs the engine over the given records without persisting.
func (s BudgetService) Compute(ctx context.Context, trips []domain.TripRecord) (domain.BudgetReport, error) {
	rep, err := s.Engine.Compute(ctx, trips)
	if err != nil {
		return domain.BudgetReport{}, err
	}
	utils.LogEvent(s.RequestID, "budget", "compute",
		fmt.Sprintf("trips=%d rows=%d grand_total=%s", len(trips), len(rep.Rows), utils.FormatMoney(rep.GrandTotal)))
	return rep, nil
}

// ComputeAndSave computes a report for all stored trips (or the selected
// IDs) and persists it with its line items.
func (s BudgetService) ComputeAndSave(ctx context.Context, tripIDs []int64) (domain.BudgetReport, error) {
	var trips []domain.TripRecord
	var err error
	if len(tripIDs) == 0 {
		trips, err = s.TripRepo.List()
	} else {
		for _, id := range tripIDs {
			var t domain.TripRecord
			t, err = s.TripRepo.GetByID(id)
			if err != nil {
				break
			}
			trips = append(trips, t)
		}
	}
	if err != nil {
		return domain.BudgetReport{}, err
	}

	rep, err := s.Compute(ctx, trips)
	if err != nil {
		return domain.BudgetReport{}, err
	}

	id, err := s.ReportRepo.Save(rep)
	if err != nil {
		return domain.BudgetReport{}, domain.InternalError{Msg: "failed to persist budget report", Err: err}
	}
	rep.ID = id
	utils.LogEvent(s.RequestID, "budget", "save", fmt.Sprintf("report_id=%d", id))
	return rep, nil
}

// Get fetches a persisted report with its rows.
func (s BudgetService) Get(id int64) (domain.BudgetReport, error) {
	return s.ReportRepo.GetByID(id)
}
