package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/service"
)

type intakeStatusRequest struct {
	Status        string     `json:"status" binding:"required,oneof=new reviewing in_progress contracted closed"`
	ContractEndAt *time.Time `json:"contractEndAt"`
}

// ListIntakes returns all consultation requests for the admin console.
func (a *API) ListIntakes(c *gin.Context) {
	intakes, err := a.intakes.List()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intakes": intakes})
}

// UpdateIntakeStatus moves a request through the follow-up pipeline and
// recomputes its retention deadline.
func (a *API) UpdateIntakeStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req intakeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	intake, err := a.intakes.UpdateStatus(id, req.Status, req.ContractEndAt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIntakeNotFound):
			respondError(c, http.StatusNotFound, "intake not found")
		case errors.Is(err, service.ErrInvalidIntakeStatus):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        intake.ID,
		"status":    intake.Status,
		"expiresAt": intake.ExpiresAt,
	})
}
