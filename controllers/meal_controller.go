package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"nutrilog/models"
	"nutrilog/services"
	"nutrilog/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Gemini *services.GeminiService
	Log    *services.MealLogService
	Hub    *services.RealtimeHub
}

func NewMealController(g *services.GeminiService, l *services.MealLogService, h *services.RealtimeHub) *MealController {
	return &MealController{Gemini: g, Log: l, Hub: h}
}

type AnalyzeMealInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"` // data URL
}

// AnalyzeMeal runs the whole pipeline for one photo: model call, extraction,
// photo export, log append. Only the model call is allowed to fail the
// request — photo upload and log append degrade to "no photo" / logged=false.
func (mc *MealController) AnalyzeMeal(c *gin.Context) {
	var input AnalyzeMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mimeType, imgData, ok := splitDataURL(input.ImageBase64)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 must be a data URL"})
		return
	}

	responseText, err := mc.Gemini.AnalyzeMealPhoto(c.Request.Context(), mimeType, imgData)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ex := utils.ExtractMeal(responseText)
	if len(ex.Matched) < 3 {
		log.Printf("analysis response only matched %d fields for %q", len(ex.Matched), ex.DishName)
	}

	photoURL, err := utils.UploadMealPhoto(input.ImageBase64)
	if err != nil {
		log.Printf("photo upload skipped: %v", err)
		photoURL = ""
	}

	now := time.Now()
	rec := models.MealRecord{
		Date:         now.Format("2006-01-02"),
		Time:         now.Format("15:04:05"),
		UserName:     c.GetString("displayName"),
		DishName:     ex.DishName,
		PhotoURL:     photoURL,
		EnergyKcal:   ex.EnergyKcal,
		ProteinG:     ex.ProteinG,
		SaltG:        ex.SaltG,
		PotassiumMg:  ex.PotassiumMg,
		PhosphorusMg: ex.PhosphorusMg,
		FluidMl:      ex.FluidMl,
		FullResponse: responseText,
	}

	logged := true
	if err := mc.Log.Append(c.Request.Context(), &rec); err != nil {
		// keep answering in log-less mode
		log.Printf("meal log append failed: %v", err)
		logged = false
	}

	nv := services.NutrientValues(rec)
	warnings := utils.AssessMealSafety(nv["salt"], nv["potassium"], nv["phosphorus"], nv["fluid"])

	if logged {
		mc.Hub.BroadcastMealLogged(rec, warnings)
	}

	c.JSON(http.StatusOK, gin.H{
		"record":     rec,
		"slot":       utils.ClassifyMealSlot(rec.Time),
		"normalized": nv,
		"warnings":   warnings,
		"logged":     logged,
	})
}

// splitDataURL pulls mime type and payload out of "data:<mime>;base64,<data>".
func splitDataURL(s string) (mimeType, data string, ok bool) {
	if !strings.HasPrefix(s, "data:") {
		return "", "", false
	}
	meta, payload, found := strings.Cut(s, ",")
	if !found || payload == "" {
		return "", "", false
	}
	mimeType = strings.TrimPrefix(meta, "data:")
	mimeType = strings.SplitN(mimeType, ";", 2)[0]
	if mimeType == "" {
		return "", "", false
	}
	return mimeType, payload, true
}
