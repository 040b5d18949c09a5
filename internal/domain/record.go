// Package domain contains the core data types for the Travel Journal application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record represents a single travel journal entry: one place visited on one date.
// ImageFilename is empty until an image is attached; it is mutated only through
// the image attachment flow, never through a regular update.
type Record struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	VisitDate     time.Time `json:"visit_date"`
	Rating        int       `json:"rating"`
	Category      string    `json:"category"`
	Notes         string    `json:"notes,omitempty"`
	ImageFilename string    `json:"image_filename,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecordPatch carries a partial update: one pointer per mutable field.
// A nil pointer means "leave the current value alone". This replaces
// dynamic field-by-field copying with an explicit, exhaustive apply step.
//
// ImageFilename is deliberately absent from the public update surface;
// only the image attachment flow constructs a patch that sets it.
type RecordPatch struct {
	Title         *string
	Country       *string
	City          *string
	Latitude      *float64
	Longitude     *float64
	VisitDate     *time.Time
	Rating        *int
	Category      *string
	Notes         *string
	ImageFilename *string
}

// Apply copies every set field of the patch onto r, leaving unset fields untouched.
func (p RecordPatch) Apply(r *Record) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Country != nil {
		r.Country = *p.Country
	}
	if p.City != nil {
		r.City = *p.City
	}
	if p.Latitude != nil {
		r.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		r.Longitude = p.Longitude
	}
	if p.VisitDate != nil {
		r.VisitDate = *p.VisitDate
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.ImageFilename != nil {
		r.ImageFilename = *p.ImageFilename
	}
}

// IsZero reports whether the patch sets no fields at all.
func (p RecordPatch) IsZero() bool {
	return p.Title == nil && p.Country == nil && p.City == nil &&
		p.Latitude == nil && p.Longitude == nil && p.VisitDate == nil &&
		p.Rating == nil && p.Category == nil && p.Notes == nil &&
		p.ImageFilename == nil
}
