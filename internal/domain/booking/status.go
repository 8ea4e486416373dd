package booking

import "github.com/ksrlabs/resource-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ===============================
// Transition guards
// ===============================

// CanApprove allows PENDING → APPROVED and the reviewer toggle
// REJECTED → APPROVED.
func CanApprove(current Status) error {
	if current == StatusApproved {
		return httperr.ErrValidation("already_approved", "Booking is already approved.")
	}
	return nil
}

// CanReject allows PENDING → REJECTED and the reviewer toggle
// APPROVED → REJECTED.
func CanReject(current Status) error {
	if current == StatusRejected {
		return httperr.ErrValidation("already_rejected", "Booking is already rejected.")
	}
	return nil
}
