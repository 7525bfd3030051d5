package models

import (
	"time"
)

type Snippet struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Code        string    `json:"code" gorm:"type:text;not null"`
	Language    string    `json:"language" gorm:"not null;index"`
	IsPublic    bool      `json:"is_public" gorm:"default:true"`
	Views       int64     `json:"views" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SnippetTag joins snippets and tags; one row per (snippet, tag) pair.
type SnippetTag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	SnippetID uint      `json:"snippet_id" gorm:"not null;uniqueIndex:idx_snippet_tag"`
	Snippet   Snippet   `json:"-" gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE"`
	TagID     uint      `json:"tag_id" gorm:"not null;uniqueIndex:idx_snippet_tag"`
	Tag       Tag       `json:"-" gorm:"foreignKey:TagID"`
	CreatedAt time.Time `json:"created_at"`
}
