package models

import "time"

type MediaType string

const (
	MediaNone  MediaType = "none"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type NewsPost struct {
	ID        int       `json:"id" db:"id"`
	Title     *string   `json:"title,omitempty" db:"title"`
	Body      string    `json:"body" db:"body"`
	MediaType MediaType `json:"media_type" db:"media_type"`
	MediaKey  *string   `json:"-" db:"media_key"`
	MediaURL  *string   `json:"media_url,omitempty" db:"media_url"`
	AuthorID  int       `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
