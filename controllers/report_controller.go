// controllers/report_controller.go
package controllers

import (
	"net/http"
	"time"

	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Svc *services.ReportService
	Log *services.MealLogService
}

func NewReportController(svc *services.ReportService, log *services.MealLogService) *ReportController {
	return &ReportController{Svc: svc, Log: log}
}

// parseRange reads ?from&to, defaulting to the current month.
func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr := c.DefaultQuery("to", last.Format("2006-01-02"))

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil { c.JSON(400, gin.H{"error": "invalid from date"}); return from, to, false }
	to, err = time.Parse("2006-01-02", toStr)
	if err != nil { c.JSON(400, gin.H{"error": "invalid to date"}); return from, to, false }
	if to.Before(from) { c.JSON(400, gin.H{"error": "`to` must be on/after `from`"}); return from, to, false }
	return from, to, true
}

// GetReport returns summary + daily series + sorted meal listing for the
// dashboard (?user defaults to all users).
func (h *ReportController) GetReport(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	user := c.DefaultQuery("user", "all")

	out, err := h.Svc.BuildReport(c.Request.Context(), user, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, out)
}

// GetDailySeries returns just the per-day totals, for charting.
func (h *ReportController) GetDailySeries(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	user := c.DefaultQuery("user", "all")

	out, err := h.Svc.BuildReport(c.Request.Context(), user, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"range": out.Range, "daily": out.Daily})
}

// ListUsers feeds the dashboard's user filter dropdown.
func (h *ReportController) ListUsers(c *gin.Context) {
	names, err := h.Log.ListUserNames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"users": names})
}

// MyMeals returns the calling user's own report for the range.
func (h *ReportController) MyMeals(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	name := c.GetString("displayName")

	out, err := h.Svc.BuildReport(c.Request.Context(), name, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, out)
}

type EmailReportInput struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject"`
}

// EmailReport renders the period report as plain text and mails it.
func (h *ReportController) EmailReport(c *gin.Context) {
	var input EmailReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	user := c.DefaultQuery("user", "all")

	report, err := h.Svc.BuildReport(c.Request.Context(), user, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := utils.SendPeriodReport(input.To, input.Subject, services.RenderReportText(report)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "report sent", "to": input.To})
}
