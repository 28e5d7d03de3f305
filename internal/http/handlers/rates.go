package handlers

import (
	"net/http"
	"sync"

	intconfig "tripbudget/internal/config"
	"tripbudget/internal/http/middleware"
	"tripbudget/internal/utils"

	"github.com/gin-gonic/gin"
)

// The active rate card lives in memory; every computation reads it at call
// time so a replaced card applies to the next report without a restart.
var (
	ratesMu      sync.RWMutex
	currentRates = intconfig.DefaultRates()
)

// CurrentRates returns the rate card used for the next computation.
func CurrentRates() intconfig.Rates {
	ratesMu.RLock()
	defer ratesMu.RUnlock()
	return currentRates
}

// SetRates swaps in a validated rate card.
func SetRates(r intconfig.Rates) error {
	if err := r.Validate(); err != nil {
		return err
	}
	ratesMu.Lock()
	currentRates = r
	ratesMu.Unlock()
	return nil
}

// GET /api/rates
func GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentRates())
}

// PUT /api/rates
func UpdateRates(c *gin.Context) {
	var r intconfig.Rates
	if !BindJSONOrError(c, &r) {
		return
	}
	if err := SetRates(r); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "rates", "update", "rate card replaced")
	c.JSON(http.StatusOK, gin.H{"ok": true, "rates": CurrentRates()})
}
