// File: shiftdesk/handlers/demand.go
package handlers

import (
	"net/http"

	"shiftdesk/models"
	"shiftdesk/services/demand"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
)

// DemandHandler exposes per-date demand and its local draft.
type DemandHandler struct {
	Store *demand.Store
}

func NewDemandHandler(store *demand.Store) *DemandHandler {
	return &DemandHandler{Store: store}
}

// GetDemandHandler handles GET /api/app/demand/:date. It always refetches from the demand service.
func (h *DemandHandler) GetDemandHandler(c *gin.Context) {
	slots, err := h.Store.ListForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		utils.RespondError(c, "failed to load demand", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetDraftHandler handles GET /api/app/demand/:date/draft.
func (h *DemandHandler) GetDraftHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := models.ParseDate(date); err != nil {
		utils.RespondError(c, "invalid date", err)
		return
	}
	c.JSON(http.StatusOK, h.Store.Draft(date))
}

// AppendSlotHandler handles POST /api/app/demand/:date/slots.
func (h *DemandHandler) AppendSlotHandler(c *gin.Context) {
	slot, err := h.Store.AppendBlankSlot(c.Param("date"))
	if err != nil {
		utils.RespondError(c, "failed to add demand row", err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// ReplaceDemandHandler handles PUT /api/app/demand/:date with the full day of slots.
func (h *DemandHandler) ReplaceDemandHandler(c *gin.Context) {
	date := c.Param("date")
	var slots []models.DemandSlot
	if err := c.ShouldBindJSON(&slots); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Store.ReplaceForDate(c.Request.Context(), date, slots); err != nil {
		utils.RespondError(c, "failed to save demand", err)
		return
	}
	c.JSON(http.StatusOK, h.Store.Draft(date))
}
