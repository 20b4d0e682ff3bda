package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/models"
	"dsatracker/backend/utils"
)

type BadgeRepo interface {
	// Award inserts the badge unless the user already holds it and reports whether a row was added.
	Award(dbc dbctx.Context, userID uint, name, description string, at time.Time) (bool, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]models.Badge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *utils.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (br *badgeRepo) Award(dbc dbctx.Context, userID uint, name, description string, at time.Time) (bool, error) {
	badge := models.Badge{UserID: userID, Name: name, Description: description, AwardedAt: at}
	result := dbc.Conn(br.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(&badge)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (br *badgeRepo) ListByUser(dbc dbctx.Context, userID uint) ([]models.Badge, error) {
	var badges []models.Badge
	if err := dbc.Conn(br.db).
		Where("user_id = ?", userID).
		Order("awarded_at ASC, id ASC").
		Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}
