package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string  `gorm:"unique;not null" json:"username"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Streak       int     `gorm:"not null;default:0" json:"streak"`
	Points       int     `gorm:"not null;default:0" json:"points"`
	// LastActiveDate is a YYYY-MM-DD day in the configured calendar zone; nil until the first update.
	LastActiveDate *string `gorm:"size:10" json:"lastActiveDate"`
	GithubURL      string  `json:"githubUrl,omitempty"`
	LeetcodeURL    string  `json:"leetcodeUrl,omitempty"`
	LinkedinURL    string  `json:"linkedinUrl,omitempty"`
	Topics         []Topic `gorm:"constraint:OnDelete:CASCADE" json:"topics"`
	Badges         []Badge `gorm:"constraint:OnDelete:CASCADE" json:"badges"`
}

type ProfileLinks struct {
	GithubURL   *string `json:"githubUrl"`
	LeetcodeURL *string `json:"leetcodeUrl"`
	LinkedinURL *string `json:"linkedinUrl"`
}

type Badge struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_badges_user_name" json:"-"`
	Name        string    `gorm:"not null;uniqueIndex:idx_badges_user_name" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	AwardedAt   time.Time `gorm:"not null" json:"awardedAt"`
}
