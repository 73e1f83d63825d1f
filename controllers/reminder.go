// controllers/reminder.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mercury-backend/services"
)

// ReminderController exposes the debt reminder job.
type ReminderController struct {
	service *services.ReminderService
}

func NewReminderController(service *services.ReminderService) *ReminderController {
	return &ReminderController{service: service}
}

// GetDue lists the customers the next run would text.
func (rc *ReminderController) GetDue(c *gin.Context) {
	c.JSON(http.StatusOK, rc.service.DueCustomers())
}

// Run sends the reminders now instead of waiting for the schedule.
func (rc *ReminderController) Run(c *gin.Context) {
	c.JSON(http.StatusOK, rc.service.SendDebtReminders(c.Request.Context()))
}
