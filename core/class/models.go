package class

import (
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/record"
)

// Department is the closed set of departments a class may belong to.
type Department string

const (
	DepartmentLanguage        Department = "Language"
	DepartmentComputerScience Department = "Computer Science"
	DepartmentMathematics     Department = "Mathematics"
	DepartmentPhysics         Department = "Physics"
	DepartmentChemistry       Department = "Chemistry"
	DepartmentBiology         Department = "Biology"
	DepartmentEngineering     Department = "Engineering"
)

var Departments = []Department{
	DepartmentLanguage,
	DepartmentComputerScience,
	DepartmentMathematics,
	DepartmentPhysics,
	DepartmentChemistry,
	DepartmentBiology,
	DepartmentEngineering,
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Class struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Department  Department `json:"department"`
	Code        string     `json:"code"`
	Schedule    string     `json:"schedule"`
	Term        string     `json:"term"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FromRecord builds a Class from a canonical record.
func FromRecord(rec record.Record) Class {
	return Class{
		ID:          rec.String("id"),
		Title:       rec.String("title"),
		Description: rec.String("description"),
		Department:  Department(rec.String("department")),
		Code:        rec.String("code"),
		Schedule:    rec.String("schedule"),
		Term:        rec.String("term"),
		Status:      Status(rec.String("status")),
		CreatedAt:   rec.Time("createdAt"),
		UpdatedAt:   rec.Time("updatedAt"),
	}
}

// UpdateClass defines what information may be provided to modify an existing Class.
type UpdateClass struct {
	Title       string     `json:"title" validate:"omitempty,min=3,max=120"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Department  Department `json:"department" validate:"omitempty,department"`
	Code        string     `json:"code" validate:"omitempty,alphanum,min=2,max=10"`
	Schedule    string     `json:"schedule" validate:"omitempty,max=120"`
	Term        string     `json:"term" validate:"omitempty,alphanum_,max=60"`
	Status      Status     `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Validate normalizes the payload (trimmed strings, upper-cased code) and
// checks it against the class schema. It never touches the record store.
func (uc *UpdateClass) Validate(validate *validator.Validate, translator ut.Translator) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.Code = strings.ToUpper(core.CleanString(uc.Code))
	uc.Schedule = core.CleanString(uc.Schedule)
	uc.Term = core.CleanString(uc.Term)

	if err := validate.Struct(uc); err != nil {
		return core.TranslateErrors(err, translator)
	}
	return nil
}

// Patch returns the canonical patch for the fields the payload provides.
func (uc UpdateClass) Patch() record.Record {
	patch := record.Record{}
	if uc.Title != "" {
		patch["title"] = uc.Title
	}
	if uc.Description != "" {
		patch["description"] = uc.Description
	}
	if uc.Department != "" {
		patch["department"] = string(uc.Department)
	}
	if uc.Code != "" {
		patch["code"] = uc.Code
	}
	if uc.Schedule != "" {
		patch["schedule"] = uc.Schedule
	}
	if uc.Term != "" {
		patch["term"] = uc.Term
	}
	if uc.Status != "" {
		patch["status"] = string(uc.Status)
	}
	return patch
}
