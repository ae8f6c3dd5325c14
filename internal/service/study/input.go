package study

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// ReviewCardInput holds the parameters for reviewing a card.
type ReviewCardInput struct {
	CardID uuid.UUID
	// FolderID is the folder the review happened in, if any.
	FolderID       *uuid.UUID
	Correct        bool
	ResponseTimeMs *int
}

// Validate checks all fields and collects all errors.
func (i *ReviewCardInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.FolderID != nil && *i.FolderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "folder_id", Message: "must not be empty when set"})
	}
	if i.ResponseTimeMs != nil && *i.ResponseTimeMs < 0 {
		errs = append(errs, domain.FieldError{Field: "response_time_ms", Message: "must be non-negative"})
	}
	if i.ResponseTimeMs != nil && *i.ResponseTimeMs > 600_000 {
		errs = append(errs, domain.FieldError{Field: "response_time_ms", Message: "max 10 minutes"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RelearnCardInput holds the parameters for resetting a mastered card.
type RelearnCardInput struct {
	CardID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *RelearnCardInput) Validate() error {
	if i.CardID == uuid.Nil {
		return domain.NewValidationError("card_id", "required")
	}
	return nil
}
