package handlers

import (
	"net/http"

	"tripbudget/internal/budget"
	"tripbudget/internal/domain"
	"tripbudget/internal/export"
	"tripbudget/internal/http/middleware"
	"tripbudget/internal/services"

	"github.com/gin-gonic/gin"
)

func budgetService(c *gin.Context) (services.BudgetService, error) {
	d := getDeps()
	eng, err := budget.New(CurrentRates(), d.Prices, d.Env.LookupConcurrency)
	if err != nil {
		return services.BudgetService{}, err
	}
	return services.BudgetService{
		Engine:    eng,
		RequestID: middleware.GetRequestID(c),
	}, nil
}

type computeRequest struct {
	Trips           []domain.TripRecord `json:"trips"`
	IncludeAverages *bool               `json:"includeAverages"`
}

// POST /api/budgets/compute — stateless computation over posted records.
func ComputeBudget(c *gin.Context) {
	var req computeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc, err := budgetService(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.IncludeAverages != nil {
		svc.Engine.IncludeAverages = *req.IncludeAverages
	}

	rep, err := svc.Compute(c.Request.Context(), req.Trips)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

type saveRequest struct {
	TripIDs []int64 `json:"tripIds"`
}

// POST /api/budgets — compute for stored trips and persist.
func CreateBudget(c *gin.Context) {
	var req saveRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if !BindJSONOrError(c, &req) {
			return
		}
	}

	svc, err := budgetService(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	rep, err := svc.ComputeAndSave(c.Request.Context(), req.TripIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

// GET /api/budgets/:id
func GetBudget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc, err := budgetService(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rep, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/budgets/:id/csv
func GetBudgetCSV(c *gin.Context) {
	rep, ok := loadBudget(c)
	if !ok {
		return
	}
	data, err := export.BudgetCSV(rep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="budget.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// GET /api/budgets/:id/pdf
func GetBudgetPDF(c *gin.Context) {
	rep, ok := loadBudget(c)
	if !ok {
		return
	}
	data, filename, err := export.BudgetPDF(rep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func loadBudget(c *gin.Context) (domain.BudgetReport, bool) {
	id, ok := pathID(c)
	if !ok {
		return domain.BudgetReport{}, false
	}
	svc, err := budgetService(c)
	if err != nil {
		RespondDomainError(c, err)
		return domain.BudgetReport{}, false
	}
	rep, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return domain.BudgetReport{}, false
	}
	return rep, true
}
