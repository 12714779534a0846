// File: shiftdesk/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the app API endpoint handlers into one struct.
type HandlerBundle struct {
	// Roster endpoints
	ListEmployeesHandler  gin.HandlerFunc
	CreateEmployeeHandler gin.HandlerFunc
	UpdateEmployeeHandler gin.HandlerFunc
	DeleteEmployeeHandler gin.HandlerFunc

	// Demand endpoints
	GetDemandHandler      gin.HandlerFunc
	GetDemandDraftHandler gin.HandlerFunc
	AppendSlotHandler     gin.HandlerFunc
	ReplaceDemandHandler  gin.HandlerFunc

	// Settings endpoints
	GetSettingsHandler    gin.HandlerFunc
	UpdateSettingsHandler gin.HandlerFunc
	AddJobHandler         gin.HandlerFunc
	RenameJobHandler      gin.HandlerFunc
	RemoveJobHandler      gin.HandlerFunc

	// Schedule endpoints
	GenerateScheduleHandler gin.HandlerFunc
	GetScheduleHandler      gin.HandlerFunc
}

// NewHandlerBundle collects the handlers' endpoints.
func NewHandlerBundle(rh *RosterHandler, dh *DemandHandler, sh *SettingsHandler, sch *ScheduleHandler) *HandlerBundle {
	return &HandlerBundle{
		ListEmployeesHandler:  rh.ListEmployeesHandler,
		CreateEmployeeHandler: rh.CreateEmployeeHandler,
		UpdateEmployeeHandler: rh.UpdateEmployeeHandler,
		DeleteEmployeeHandler: rh.DeleteEmployeeHandler,

		GetDemandHandler:      dh.GetDemandHandler,
		GetDemandDraftHandler: dh.GetDraftHandler,
		AppendSlotHandler:     dh.AppendSlotHandler,
		ReplaceDemandHandler:  dh.ReplaceDemandHandler,

		GetSettingsHandler:    sh.GetSettingsHandler,
		UpdateSettingsHandler: sh.UpdateSettingsHandler,
		AddJobHandler:         sh.AddJobHandler,
		RenameJobHandler:      sh.RenameJobHandler,
		RemoveJobHandler:      sh.RemoveJobHandler,

		GenerateScheduleHandler: sch.GenerateScheduleHandler,
		GetScheduleHandler:      sch.GetScheduleHandler,
	}
}
