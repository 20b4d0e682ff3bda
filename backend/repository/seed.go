package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dsatracker/backend/models"
	"dsatracker/backend/utils"
)

// TopicCatalog is the fixed list of topics every user is seeded with, in display order.
var TopicCatalog = []string{
	"Maths", "Sorting", "Array", "BS", "Strings", "Linked List", "Recursion",
	"Bit Manip.", "Stack & Queues", "Sliding window", "Two Pointer", "Heaps",
	"Greedy Algo.", "BT", "BST", "Graphs", "DP", "Tries",
}

type RosterUser struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	GithubURL   string `yaml:"github_url"`
	LeetcodeURL string `yaml:"leetcode_url"`
	LinkedinURL string `yaml:"linkedin_url"`
}

type Roster struct {
	Users []RosterUser `yaml:"users"`
}

func LoadRoster(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var roster Roster
	if err := yaml.Unmarshal(raw, &roster); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	for i, u := range roster.Users {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("roster entry %d: username and password are required", i)
		}
	}
	return &roster, nil
}

// SeedRoster creates missing users and their missing topics. Existing rows are left alone,
// so running it twice is harmless.
func SeedRoster(ctx context.Context, db *gorm.DB, roster *Roster, topics []string, log *utils.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ru := range roster.Users {
			var user models.User
			err := tx.Where("username = ?", ru.Username).First(&user).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				hash, err := bcrypt.GenerateFromPassword([]byte(ru.Password), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("hash password for %s: %w", ru.Username, err)
				}
				user = models.User{
					Username:     ru.Username,
					PasswordHash: string(hash),
					GithubURL:    ru.GithubURL,
					LeetcodeURL:  ru.LeetcodeURL,
					LinkedinURL:  ru.LinkedinURL,
				}
				if err := tx.Create(&user).Error; err != nil {
					return fmt.Errorf("create user %s: %w", ru.Username, err)
				}
				log.Info("Seeded user", "username", ru.Username)
			case err != nil:
				return fmt.Errorf("look up user %s: %w", ru.Username, err)
			}

			rows := make([]models.Topic, 0, len(topics))
			for _, name := range topics {
				rows = append(rows, models.Topic{UserID: user.ID, Name: name})
			}
			if len(rows) == 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
				DoNothing: true,
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed topics for %s: %w", ru.Username, err)
			}
		}
		return nil
	})
}
