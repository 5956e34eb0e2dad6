package incident

import (
	"fmt"

	appErrors "cargo-inspection-dashboard/pkg/errors"
)

// State machine for incident status transitions. A pending incident is
// resolved by a review or update submission; verified is terminal.
var validTransitions = map[Status][]Status{
	StatusPending: {
		StatusReviewed,
		StatusVerified,
	},
	StatusReviewed: {
		StatusVerified,
	},
	StatusVerified: {
		// Terminal state - no transitions
	},
}

// ValidateStatusTransition checks if status transition is allowed
func ValidateStatusTransition(currentStatus, newStatus Status) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", currentStatus),
			nil,
		)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		nil,
	)
}

// AllowedTransitions returns allowed next statuses
func AllowedTransitions(currentStatus Status) []Status {
	return validTransitions[currentStatus]
}
