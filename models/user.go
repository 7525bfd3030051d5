package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	GithubURL string    `json:"github_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats is attached to public profile responses.
type UserStats struct {
	SnippetsCount int64 `json:"snippets_count"`
	LikesReceived int64 `json:"likes_received"`
}

type UserProfile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	GithubURL string    `json:"github_url"`
	CreatedAt time.Time `json:"created_at"`
	Stats     UserStats `json:"stats"`
}
