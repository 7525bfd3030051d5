package models

import (
	"time"
)

// Like and Favorite are existence-as-state rows: a row means the user
// liked/favorited the snippet, deleting it undoes that.

type Like struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_snippet"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SnippetID uint      `json:"snippet_id" gorm:"not null;uniqueIndex:idx_like_user_snippet"`
	Snippet   Snippet   `json:"-" gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_snippet"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SnippetID uint      `json:"snippet_id" gorm:"not null;uniqueIndex:idx_favorite_user_snippet"`
	Snippet   Snippet   `json:"-" gorm:"foreignKey:SnippetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
