package models

type LeaderboardEntry struct {
	UserID      uint    `json:"userId"`
	Name        string  `json:"name"`
	Progress    *int    `json:"progress"`
	NoTopics    bool    `json:"noTopics,omitempty"`
	Streak      int     `json:"streak"`
	Points      int     `json:"points"`
	Topics      []Topic `json:"topics"`
	GithubURL   string  `json:"githubUrl,omitempty"`
	LeetcodeURL string  `json:"leetcodeUrl,omitempty"`
	LinkedinURL string  `json:"linkedinUrl,omitempty"`
}
