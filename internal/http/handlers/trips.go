package handlers

import (
	"net/http"
	"strconv"

	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/trips
func GetTrips(c *gin.Context) {
	trips, err := repositories.TripRepository{}.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trips)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var t domain.TripRecord
	if !BindJSONOrError(c, &t) {
		return
	}
	if err := t.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := repositories.TripRepository{}.Create(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var t domain.TripRecord
	if !BindJSONOrError(c, &t) {
		return
	}
	t.ID = id
	if err := t.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := (repositories.TripRepository{}).Update(t); err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
