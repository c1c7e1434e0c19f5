// Package validation guards the add-book entry point using the validator/v10
// library. This is deliberately the only place input rules are enforced: the
// store itself accepts whatever it is given on every other mutation path.
package validation

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/booktrackapp/booktrack/internal/domain"
	domainerrors "github.com/booktrackapp/booktrack/internal/errors"
)

// AddBookInput is the add-flow contract. Optional fields are pointers so an
// omitted value is distinguishable from a zero one.
type AddBookInput struct {
	Title       string               `json:"title" validate:"required"`
	Author      *string              `json:"author,omitempty"`
	TotalPages  *int                 `json:"total_pages,omitempty" validate:"omitempty,gt=0"`
	Genre       *string              `json:"genre,omitempty"`
	Status      domain.ReadingStatus `json:"status" validate:"omitempty,oneof=planning reading finished"`
	StartDate   *time.Time           `json:"start_date,omitempty"`
	CurrentPage *int                 `json:"current_page,omitempty" validate:"omitempty,min=0"`
	Rating      *int                 `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
}

// Book builds the domain entity from validated input. Status defaults to
// planning when omitted.
func (in *AddBookInput) Book(id string, now time.Time) domain.Book {
	status := in.Status
	if status == "" {
		status = domain.StatusPlanning
	}
	return domain.Book{
		ID:          id,
		Title:       in.Title,
		Author:      in.Author,
		TotalPages:  in.TotalPages,
		Genre:       in.Genre,
		Status:      status,
		StartDate:   in.StartDate,
		CurrentPage: in.CurrentPage,
		Rating:      in.Rating,
		Notes:       []domain.Note{},
		CreatedAt:   now,
	}
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the add flow.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// current_page may not exceed total_pages on entry. Elsewhere in the
	// system this is intentionally unenforced.
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(AddBookInput)
		if in.CurrentPage != nil && in.TotalPages != nil && *in.CurrentPage > *in.TotalPages {
			sl.ReportError(in.CurrentPage, "current_page", "CurrentPage", "ltetotal", "")
		}
	}, AddBookInput{})

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !domainerrors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", orZero(e.Param()))
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "ltetotal":
		return "must not exceed total pages"
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

func orZero(param string) string {
	if param == "" {
		return "0"
	}
	return param
}
