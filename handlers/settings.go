// File: shiftdesk/handlers/settings.go
package handlers

import (
	"net/http"
	"strconv"

	"shiftdesk/models"
	"shiftdesk/services/errs"
	"shiftdesk/services/settings"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the scheduling parameters and the job catalog.
type SettingsHandler struct {
	Store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

type jobRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetSettingsHandler handles GET /api/app/settings.
func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Get())
}

// UpdateSettingsHandler handles PUT /api/app/settings. Jobs in the body are ignored.
func (h *SettingsHandler) UpdateSettingsHandler(c *gin.Context) {
	var candidate models.Settings
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updated, err := h.Store.Update(c.Request.Context(), candidate)
	if err != nil {
		utils.RespondError(c, "failed to update settings", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddJobHandler handles POST /api/app/settings/jobs.
func (h *SettingsHandler) AddJobHandler(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Store.AddJob(c.Request.Context(), req.Name); err != nil {
		utils.RespondError(c, "failed to add job", err)
		return
	}
	c.JSON(http.StatusCreated, h.Store.Get().Jobs)
}

// RenameJobHandler handles PUT /api/app/settings/jobs/:index.
func (h *SettingsHandler) RenameJobHandler(c *gin.Context) {
	index, err := jobIndex(c)
	if err != nil {
		utils.RespondError(c, "invalid job index", err)
		return
	}
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Store.RenameJob(c.Request.Context(), index, req.Name); err != nil {
		utils.RespondError(c, "failed to rename job", err)
		return
	}
	c.JSON(http.StatusOK, h.Store.Get().Jobs)
}

// RemoveJobHandler handles DELETE /api/app/settings/jobs/:index.
func (h *SettingsHandler) RemoveJobHandler(c *gin.Context) {
	index, err := jobIndex(c)
	if err != nil {
		utils.RespondError(c, "invalid job index", err)
		return
	}
	if err := h.Store.RemoveJob(c.Request.Context(), index); err != nil {
		utils.RespondError(c, "failed to remove job", err)
		return
	}
	c.JSON(http.StatusOK, h.Store.Get().Jobs)
}

func jobIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, errs.NewValidation("index", "%q is not an integer", c.Param("index"))
	}
	return index, nil
}
