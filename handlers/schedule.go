// File: shiftdesk/handlers/schedule.go
package handlers

import (
	"net/http"

	"shiftdesk/models"
	"shiftdesk/services/schedule"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DisplaySettings supplies the display window for ?window=display.
type DisplaySettings interface {
	Get() models.Settings
}

// ScheduleHandler triggers generation and serves published schedules.
type ScheduleHandler struct {
	Coordinator *schedule.Coordinator
	Settings    DisplaySettings
}

func NewScheduleHandler(coord *schedule.Coordinator, s DisplaySettings) *ScheduleHandler {
	return &ScheduleHandler{Coordinator: coord, Settings: s}
}

// GenerateScheduleHandler handles POST /api/app/schedule/:date/generate.
func (h *ScheduleHandler) GenerateScheduleHandler(c *gin.Context) {
	date := c.Param("date")
	assignments, err := h.Coordinator.Generate(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, "schedule generation failed", err)
		return
	}
	assignments, err = h.window(c, assignments)
	if err != nil {
		utils.RespondError(c, "invalid display window", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "assignments": assignments})
}

// GetScheduleHandler handles GET /api/app/schedule/:date.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	date := c.Param("date")
	published, ok, err := h.Coordinator.Published(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, "failed to load schedule", err)
		return
	}
	if !ok {
		getLogger(c).Debug("no schedule published", zap.String("date", date))
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule published for " + date})
		return
	}
	published.Assignments, err = h.window(c, published.Assignments)
	if err != nil {
		utils.RespondError(c, "invalid display window", err)
		return
	}
	c.JSON(http.StatusOK, published)
}

func (h *ScheduleHandler) window(c *gin.Context, assignments []models.ScheduleAssignment) ([]models.ScheduleAssignment, error) {
	if c.Query("window") != "display" || h.Settings == nil {
		return assignments, nil
	}
	s := h.Settings.Get()
	return schedule.Window(assignments, s.ShowStart, s.ShowEnd)
}
