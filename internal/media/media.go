package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
	KindAnime  Kind = "anime"
)

// Media is a movie, series or anime entry. ID is rendered as a hex string in JSON.
type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Kind        Kind               `bson:"kind" json:"kind"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	Year        *int               `bson:"year,omitempty" json:"year,omitempty"`
	PosterURL   *string            `bson:"poster_url,omitempty" json:"poster_url,omitempty"`
	VideoURL    *string            `bson:"video_url,omitempty" json:"video_url,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	Rating      *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Downloads   int64              `bson:"downloads" json:"downloads"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Clone returns a deep copy of m.
func (m *Media) Clone() *Media {
	cp := *m
	cp.Description = clonePtr(m.Description)
	cp.Year = clonePtr(m.Year)
	cp.PosterURL = clonePtr(m.PosterURL)
	cp.VideoURL = clonePtr(m.VideoURL)
	cp.Rating = clonePtr(m.Rating)
	cp.UpdatedAt = clonePtr(m.UpdatedAt)
	cp.Tags = append([]string{}, m.Tags...)
	return &cp
}

// Normalize fills defaults that may be missing on documents written by other tools.
func (m *Media) Normalize() {
	if m.Tags == nil {
		m.Tags = []string{}
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
