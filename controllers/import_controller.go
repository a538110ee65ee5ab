package controllers

import (
	"net/http"

	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

type ImportController struct {
	Log *services.MealLogService
}

func NewImportController(l *services.MealLogService) *ImportController {
	return &ImportController{Log: l}
}

type ImportRowsInput struct {
	Rows []utils.SheetRow `json:"rows" binding:"required"`
}

// ImportRows ingests rows exported from the old spreadsheet log. Each row is
// a label→value map in whatever column set that version of the app wrote;
// the alias table maps them all onto the current record shape. Rows that
// fail to append are counted and skipped, never abort the batch.
func (ic *ImportController) ImportRows(c *gin.Context) {
	var input ImportRowsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imported := 0
	failed := 0
	for _, row := range input.Rows {
		rec := utils.RecordFromSheetRow(row)
		if err := ic.Log.Append(c.Request.Context(), &rec); err != nil {
			failed++
			continue
		}
		imported++
	}

	c.JSON(200, gin.H{"imported": imported, "failed": failed})
}
