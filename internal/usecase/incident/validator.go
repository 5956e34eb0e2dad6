package incident

import (
	"strings"

	appErrors "cargo-inspection-dashboard/pkg/errors"
)

const (
	// ErrorTypeUpdateClassification is the one update choice that demands
	// a full reclassification payload.
	ErrorTypeUpdateClassification = "Update Classification"
)

// CanSubmit mirrors the submit-button gating of the review screen.
func CanSubmit(sub Submission) bool {
	return ValidateSubmission(sub) == nil
}

// ValidateSubmission enforces the per-mode rules:
//
// Review: at least one image attached OR a non-empty note.
// Update with "Update Classification": bag type, damage type, at least one
// image and non-empty notes are all required.
// Update with any other non-empty error type: nothing else required.
// Update with an empty error type: invalid.
func ValidateSubmission(sub Submission) error {
	switch sub.Mode {
	case ModeReview:
		if len(sub.Images) == 0 && strings.TrimSpace(sub.Notes) == "" {
			return appErrors.ErrReviewEmpty
		}
		return nil

	case ModeUpdate:
		if sub.ErrorType == "" {
			return appErrors.ErrErrorTypeRequired
		}
		if sub.ErrorType != ErrorTypeUpdateClassification {
			return nil
		}
		if sub.BagType == "" || sub.DamageType == "" ||
			len(sub.Images) == 0 || strings.TrimSpace(sub.Notes) == "" {
			return appErrors.ErrUpdateIncomplete
		}
		return nil

	default:
		return appErrors.NewAppError("INVALID_MODE", "Submission mode must be review or update", nil)
	}
}
