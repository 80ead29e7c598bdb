package model

import (
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	AuthorID   string     `json:"author_id"`
	Category   string     `json:"category"`
	CoverImage string     `json:"cover_image"`
	Status     PostStatus `json:"status"`
	ViewCount  int        `json:"view_count"`
	LikeCount  int        `json:"like_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Tags       []string   `json:"tags"`
	Author     *UserRef   `json:"author,omitempty"` // Filled by an explicit join
}
