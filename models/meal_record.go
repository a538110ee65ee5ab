package models

import (
	"gorm.io/gorm"
)

// MealRecord is one appended row of the shared meal log.
//
// Nutrient fields keep the raw strings taken from the model answer — a plain
// number ("350"), a 〜-range ("800〜1000") or the 不明 sentinel. They are only
// turned into numbers when a report is built, so a bad parse can never block
// the logging path. Rows are append-only: there is no update or delete path.
type MealRecord struct {
	gorm.Model
	Date         string `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	Time         string `gorm:"size:8" json:"time"`        // HH:MM:SS
	UserName     string `gorm:"index" json:"user_name"`    // free-text display name, not a key
	DishName     string `json:"dish_name"`
	PhotoURL     string `json:"photo_url,omitempty"`
	EnergyKcal   string `json:"energy_kcal"`
	ProteinG     string `json:"protein_g"`
	SaltG        string `json:"salt_g"`
	PotassiumMg  string `json:"potassium_mg"`
	PhosphorusMg string `json:"phosphorus_mg"`
	FluidMl      string `json:"fluid_ml"`
	FullResponse string `gorm:"type:text" json:"full_response,omitempty"`
}

// MealSlot is the coarse time-of-day category of a record.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotLateNight MealSlot = "late_night"
	SlotUnknown   MealSlot = "unknown"
)
