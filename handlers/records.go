// File: shiftdesk/handlers/records.go
package handlers

import (
	"errors"
	"net/http"

	demandRepo "shiftdesk/database/repository/demand"
	employeeRepo "shiftdesk/database/repository/employee"
	"shiftdesk/models"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RecordsHandler serves the roster and demand contracts on top of MongoDB.
type RecordsHandler struct {
	EmployeeRepo employeeRepo.EmployeeRepository
	DemandRepo   demandRepo.DemandRepository
}

func NewRecordsHandler(er employeeRepo.EmployeeRepository, dr demandRepo.DemandRepository) *RecordsHandler {
	return &RecordsHandler{EmployeeRepo: er, DemandRepo: dr}
}

// ListEmployeesHandler handles GET /api/employees.
func (h *RecordsHandler) ListEmployeesHandler(c *gin.Context) {
	employees, err := h.EmployeeRepo.List(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list employees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployeeHandler handles POST /api/employees.
func (h *RecordsHandler) CreateEmployeeHandler(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}
	created, err := h.EmployeeRepo.Create(c.Request.Context(), draft)
	if err != nil {
		getLogger(c).Error("Failed to create employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create employee"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEmployeeHandler handles PUT /api/employees/:id.
func (h *RecordsHandler) UpdateEmployeeHandler(c *gin.Context) {
	id := models.EmployeeID(c.Param("id"))
	draft, ok := bindDraft(c)
	if !ok {
		return
	}
	updated, err := h.EmployeeRepo.Update(c.Request.Context(), id, draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to update employee", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEmployeeHandler handles DELETE /api/employees/:id.
func (h *RecordsHandler) DeleteEmployeeHandler(c *gin.Context) {
	id := models.EmployeeID(c.Param("id"))
	err := h.EmployeeRepo.Delete(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to delete employee", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// GetDemandHandler handles GET /demand/:date.
func (h *RecordsHandler) GetDemandHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := models.ParseDate(date); err != nil {
		utils.RespondError(c, "invalid date", err)
		return
	}
	slots, err := h.DemandRepo.GetByDate(c.Request.Context(), date)
	if err != nil {
		getLogger(c).Error("Failed to load demand", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load demand"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// ReplaceDemandHandler handles POST /demand/:date. The body replaces the whole day.
func (h *RecordsHandler) ReplaceDemandHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := models.ParseDate(date); err != nil {
		utils.RespondError(c, "invalid date", err)
		return
	}
	var slots []models.DemandSlot
	if err := c.ShouldBindJSON(&slots); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	clean, err := models.NormalizeDemand(slots)
	if err != nil {
		utils.RespondError(c, "invalid demand", err)
		return
	}
	saved, err := h.DemandRepo.ReplaceForDate(c.Request.Context(), date, clean)
	if err != nil {
		getLogger(c).Error("Failed to save demand", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save demand"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func bindDraft(c *gin.Context) (models.EmployeeDraft, bool) {
	var draft models.EmployeeDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return models.EmployeeDraft{}, false
	}
	clean, err := draft.Normalize()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid employee", err.Error())
		return models.EmployeeDraft{}, false
	}
	return clean, true
}

