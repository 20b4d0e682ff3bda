package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/models"
	"dsatracker/backend/utils"
)

type UserRepo interface {
	GetByID(dbc dbctx.Context, userID uint) (*models.User, error)
	GetWithTopics(dbc dbctx.Context, userID uint) (*models.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*models.User, error)
	ListWithTopics(dbc dbctx.Context) ([]models.User, error)
	TopByPoints(dbc dbctx.Context, n int) ([]models.User, error)
	LockForUpdate(dbc dbctx.Context, userID uint) (*models.User, error)
	SaveStreak(dbc dbctx.Context, userID uint, streak, points int, lastActiveDate string) error
	UpdateFields(dbc dbctx.Context, userID uint, updates map[string]interface{}) error
}

type userRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *utils.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func orderedTopics(db *gorm.DB) *gorm.DB {
	return db.Order("topics.id ASC")
}

func (ur *userRepo) GetByID(dbc dbctx.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := dbc.Conn(ur.db).First(&user, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *userRepo) GetWithTopics(dbc dbctx.Context, userID uint) (*models.User, error) {
	var user models.User
	err := dbc.Conn(ur.db).
		Preload("Topics", orderedTopics).
		First(&user, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *userRepo) GetByUsername(dbc dbctx.Context, username string) (*models.User, error) {
	var user models.User
	if err := dbc.Conn(ur.db).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *userRepo) ListWithTopics(dbc dbctx.Context) ([]models.User, error) {
	var users []models.User
	if err := dbc.Conn(ur.db).
		Preload("Topics", orderedTopics).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) TopByPoints(dbc dbctx.Context, n int) ([]models.User, error) {
	var users []models.User
	if err := dbc.Conn(ur.db).
		Order("points DESC, id ASC").
		Limit(n).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// LockForUpdate reads the user row, holding a row lock on PostgreSQL until the transaction ends.
func (ur *userRepo) LockForUpdate(dbc dbctx.Context, userID uint) (*models.User, error) {
	conn := dbc.Conn(ur.db)
	if conn.Dialector.Name() == "postgres" {
		conn = conn.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var user models.User
	if err := conn.First(&user, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *userRepo) SaveStreak(dbc dbctx.Context, userID uint, streak, points int, lastActiveDate string) error {
	return ur.UpdateFields(dbc, userID, map[string]interface{}{
		"streak":           streak,
		"points":           points,
		"last_active_date": lastActiveDate,
	})
}

func (ur *userRepo) UpdateFields(dbc dbctx.Context, userID uint, updates map[string]interface{}) error {
	result := dbc.Conn(ur.db).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
