package services

import (
	"context"

	"nutrilog/models"
	"nutrilog/utils"

	"gorm.io/gorm"
)

// MealLogService is the append-only meal log. There is deliberately no
// update or delete: a record is written once at analysis time and kept as
// durable history. Concurrent appends from several phones at once are the
// normal case; each Append is a single-row insert, so the database keeps
// them from corrupting each other.
type MealLogService struct{ db *gorm.DB }

func NewMealLogService(db *gorm.DB) *MealLogService { return &MealLogService{db: db} }

// Append writes one record. Empty fields are filled with the 不明 sentinel
// first so downstream readers never see an absent value. Failure comes back
// as an error for the caller to report; it must never take the analysis
// path down with it.
func (s *MealLogService) Append(ctx context.Context, rec *models.MealRecord) error {
	fillSentinels(rec)
	return s.db.WithContext(ctx).Create(rec).Error
}

// QueryAllRows returns the whole log as raw label→value rows, the shape the
// spreadsheet exports had. Reports re-query the full log every time instead
// of caching, so no read-your-writes bookkeeping is needed here.
func (s *MealLogService) QueryAllRows(ctx context.Context) ([]utils.SheetRow, error) {
	var recs []models.MealRecord
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}
	rows := make([]utils.SheetRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, utils.SheetRowFromRecord(r))
	}
	return rows, nil
}

// ListUserNames returns the distinct display names seen in the log, for the
// dashboard's user filter.
func (s *MealLogService) ListUserNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.MealRecord{}).
		Distinct("user_name").
		Order("user_name ASC").
		Pluck("user_name", &names).Error
	return names, err
}

func fillSentinels(rec *models.MealRecord) {
	for _, f := range []*string{
		&rec.Date, &rec.Time, &rec.UserName, &rec.DishName,
		&rec.EnergyKcal, &rec.ProteinG, &rec.SaltG,
		&rec.PotassiumMg, &rec.PhosphorusMg, &rec.FluidMl,
	} {
		if *f == "" {
			*f = utils.ValueUnknown
		}
	}
}
