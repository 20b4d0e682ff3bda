package models

import "time"

type Topic struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_topics_user_name" json:"userId"`
	Name           string    `gorm:"not null;uniqueIndex:idx_topics_user_name" json:"name"`
	Learning       int       `gorm:"not null;default:0" json:"learning"`
	LeetcodeEasy   int       `gorm:"not null;default:0" json:"leetcodeEasy"`
	LeetcodeMedium int       `gorm:"not null;default:0" json:"leetcodeMedium"`
	LeetcodeHard   int       `gorm:"not null;default:0" json:"leetcodeHard"`
	Progress       int       `gorm:"not null;default:0" json:"progress"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Activity counts topic updates for one user on one calendar day.
type Activity struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_activities_user_day"`
	Day       string `gorm:"size:10;not null;uniqueIndex:idx_activities_user_day"`
	Count     int    `gorm:"column:count;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type UserSnapshot struct {
	User            User               `json:"user"`
	OverallProgress *int               `json:"overallProgress"`
	NoTopics        bool               `json:"noTopics,omitempty"`
	BadgesByKind    map[string][]Badge `json:"badgesByKind"`
}
