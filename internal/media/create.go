package models

import (
	"github.com/fathima-sithara/uriel-service/internal/utils"
)

// MediaCreate is the accepted payload of POST /api/media.
type MediaCreate struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Kind        string   `json:"kind" validate:"required,oneof=movie series anime"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Year        *int     `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	PosterURL   *string  `json:"poster_url" validate:"omitempty,http_url"`
	VideoURL    *string  `json:"video_url" validate:"omitempty,http_url"`
	Tags        []string `json:"tags"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

func (in *MediaCreate) Validate() error {
	if errs := utils.ValidateStruct(in); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// NewMedia builds the record to persist from a validated payload.
func NewMedia(in *MediaCreate) *Media {
	m := &Media{
		Title:       in.Title,
		Kind:        Kind(in.Kind),
		Description: clonePtr(in.Description),
		Year:        clonePtr(in.Year),
		PosterURL:   clonePtr(in.PosterURL),
		VideoURL:    clonePtr(in.VideoURL),
		Tags:        append([]string{}, in.Tags...),
		Rating:      clonePtr(in.Rating),
		Downloads:   0,
	}
	return m
}
