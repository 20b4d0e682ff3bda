package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/models"
	"dsatracker/backend/utils"
)

type ActivityRepo interface {
	Increment(dbc dbctx.Context, userID uint, day string) error
	ListInRange(dbc dbctx.Context, userID uint, fromDay, toDay string) ([]models.DayCount, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *utils.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

// Increment creates the (user, day) row with count 1 or bumps an existing one.
func (ar *activityRepo) Increment(dbc dbctx.Context, userID uint, day string) error {
	row := models.Activity{UserID: userID, Day: day, Count: 1}
	return dbc.Conn(ar.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("activities.count + 1"),
				"updated_at": time.Now(),
			}),
		}).
		Create(&row).Error
}

// ListInRange returns counts for days in [fromDay, toDay], oldest first.
func (ar *activityRepo) ListInRange(dbc dbctx.Context, userID uint, fromDay, toDay string) ([]models.DayCount, error) {
	var rows []models.Activity
	if err := dbc.Conn(ar.db).
		Where("user_id = ? AND day >= ? AND day <= ?", userID, fromDay, toDay).
		Order("day ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.DayCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DayCount{Date: r.Day, Count: r.Count})
	}
	return out, nil
}
