package repository

import (
	"gorm.io/gorm"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/models"
	"dsatracker/backend/utils"
)

type TopicRepo interface {
	GetByUserAndName(dbc dbctx.Context, userID uint, name string) (*models.Topic, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]models.Topic, error)
	SaveMetrics(dbc dbctx.Context, topic *models.Topic) error
}

type topicRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *utils.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (tr *topicRepo) GetByUserAndName(dbc dbctx.Context, userID uint, name string) (*models.Topic, error) {
	var topic models.Topic
	if err := dbc.Conn(tr.db).
		Where("user_id = ? AND name = ?", userID, name).
		First(&topic).Error; err != nil {
		return nil, translate(err)
	}
	return &topic, nil
}

func (tr *topicRepo) ListByUser(dbc dbctx.Context, userID uint) ([]models.Topic, error) {
	var topics []models.Topic
	if err := dbc.Conn(tr.db).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// SaveMetrics writes the four sub-metrics and the derived progress, zero values included.
func (tr *topicRepo) SaveMetrics(dbc dbctx.Context, topic *models.Topic) error {
	result := dbc.Conn(tr.db).
		Model(topic).
		Select("learning", "leetcode_easy", "leetcode_medium", "leetcode_hard", "progress", "updated_at").
		Updates(topic)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
