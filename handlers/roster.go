// File: shiftdesk/handlers/roster.go
package handlers

import (
	"net/http"

	"shiftdesk/models"
	"shiftdesk/services/roster"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RosterHandler exposes the cached roster and its edit session to the UI.
type RosterHandler struct {
	Store *roster.Store
}

func NewRosterHandler(store *roster.Store) *RosterHandler {
	return &RosterHandler{Store: store}
}

// ListEmployeesHandler handles GET /api/app/roster.
func (h *RosterHandler) ListEmployeesHandler(c *gin.Context) {
	employees, err := h.Store.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "failed to load roster", err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployeeHandler handles POST /api/app/roster.
func (h *RosterHandler) CreateEmployeeHandler(c *gin.Context) {
	session := roster.NewEmployeeSession()
	if err := c.ShouldBindJSON(&session.Draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := session.Save(c.Request.Context(), h.Store)
	if err != nil {
		utils.RespondError(c, "failed to create employee", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEmployeeHandler handles PUT /api/app/roster/:id.
// Fields missing from the body keep the cached employee's values.
func (h *RosterHandler) UpdateEmployeeHandler(c *gin.Context) {
	id := models.EmployeeID(c.Param("id"))
	existing, ok := h.Store.Get(id)
	if !ok {
		existing = models.Employee{ID: id}
	}
	session := roster.EditEmployeeSession(existing)
	if err := c.ShouldBindJSON(&session.Draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updated, err := session.Save(c.Request.Context(), h.Store)
	if err != nil {
		utils.RespondError(c, "failed to update employee", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEmployeeHandler handles DELETE /api/app/roster/:id.
func (h *RosterHandler) DeleteEmployeeHandler(c *gin.Context) {
	id := models.EmployeeID(c.Param("id"))
	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, "failed to delete employee", err)
		return
	}
	getLogger(c).Debug("employee removed from roster", zap.String("id", id.String()))
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
