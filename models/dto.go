package models

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateSnippetRequest struct {
	Title       string   `json:"title" binding:"required" validate:"required,min=1,max=200"`
	Description string   `json:"description"`
	Code        string   `json:"code" binding:"required" validate:"required"`
	Language    string   `json:"language" binding:"required" validate:"required"`
	IsPublic    *bool    `json:"is_public"`
	Tags        []string `json:"tags"`
}

type SnippetListParams struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=12"`
	Search   string `form:"search"`
	Language string `form:"language"`
	Tag      string `form:"tag"`
}

/// SnippetItem is one listing entry: snippet columns joined with the
// owner's public fields plus aggregates.
type SnippetItem struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	IsPublic    bool      `json:"is_public"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    string    `json:"username"`
	Avatar      string    `json:"avatar"`
	LikesCount  int64     `json:"likes_count"`
	Tags        []string  `json:"tags"`

	// Only populated on owner-scoped listings.
	FavoritesCount *int64     `json:"favorites_count,omitempty"`
	FavoritedAt    *time.Time `json:"favorited_at,omitempty"`
}

// SnippetDetail extends a listing item with the owner's bio and, when a
// viewer is known, that viewer's engagement state. IsLiked/IsFavorited
// are never part of the cached payload.
type SnippetDetail struct {
	SnippetItem
	Bio         string `json:"bio"`
	IsLiked     *bool  `json:"is_liked,omitempty"`
	IsFavorited *bool  `json:"is_favorited,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type SnippetList struct {
	Snippets   []SnippetItem `json:"snippets"`
	Pagination Pagination    `json:"pagination"`
}
