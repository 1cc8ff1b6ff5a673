package assignment

import (
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

// Type determines the MIME class accepted for submission uploads.
type Type string

const (
	TypeVoice    Type = "voice"
	TypeDocument Type = "document"
)

type Assignment struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Type            Type      `json:"type"`
	Points          int       `json:"points"`
	GradingCriteria string    `json:"gradingCriteria"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Accepts reports whether an uploaded file of the given MIME type is
// acceptable for this assignment: audio/* for voice assignments,
// application/pdf only for everything else.
func (a Assignment) Accepts(mimeType string) bool {
	if a.Type == TypeVoice {
		return strings.HasPrefix(mimeType, "audio/")
	}
	return mimeType == "application/pdf"
}

// FromRecord builds an Assignment from a canonical record.
func FromRecord(rec record.Record) Assignment {
	return Assignment{
		ID:              rec.String("id"),
		Title:           rec.String("title"),
		Description:     rec.String("description"),
		Type:            Type(rec.String("type")),
		Points:          rec.Int("points"),
		GradingCriteria: rec.String("gradingCriteria"),
		CreatedAt:       rec.Time("createdAt"),
		UpdatedAt:       rec.Time("updatedAt"),
	}
}

// UpdateAssignment defines what information may be provided to modify an
// existing Assignment. Grading criteria are deliberately absent: they are
// mutated only through UpdateCriteria.
type UpdateAssignment struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Type        Type   `json:"type" validate:"omitempty,oneof=voice document"`
	Points      *int   `json:"points" validate:"omitempty,gt=0"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate, translator ut.Translator) error {
	ua.Title = core.CleanString(ua.Title)
	ua.Description = core.CleanString(ua.Description)

	if err := validate.Struct(ua); err != nil {
		return core.TranslateErrors(err, translator)
	}
	return nil
}

func (ua UpdateAssignment) Patch() record.Record {
	patch := record.Record{}
	if ua.Title != "" {
		patch["title"] = ua.Title
	}
	if ua.Description != "" {
		patch["description"] = ua.Description
	}
	if ua.Type != "" {
		patch["type"] = string(ua.Type)
	}
	if ua.Points != nil {
		patch["points"] = *ua.Points
	}
	return patch
}

// UpdateCriteria is the dedicated mutation path for grading criteria.
type UpdateCriteria struct {
	GradingCriteria string `json:"gradingCriteria" validate:"required"`
}

func (ucr *UpdateCriteria) Validate(validate *validator.Validate, translator ut.Translator) error {
	ucr.GradingCriteria = core.CleanString(ucr.GradingCriteria)

	if err := validate.Struct(ucr); err != nil {
		return core.TranslateErrors(err, translator)
	}
	return nil
}

func (ucr UpdateCriteria) Patch() record.Record {
	return record.Record{"gradingCriteria": ucr.GradingCriteria}
}
