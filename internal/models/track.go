package models

import "time"

type Track struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Artist          string    `db:"artist" json:"artist"`
	Price           float64   `db:"price" json:"price"` // major units, DECIMAL(10,2) in storage
	CoverImageURL   string    `db:"cover_image_url" json:"cover_image_url"`
	FullAudioURL    string    `db:"full_audio_url" json:"full_audio_url"`
	PreviewAudioURL string    `db:"preview_audio_url" json:"preview_audio_url"`
	Views           int       `db:"views" json:"views"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
