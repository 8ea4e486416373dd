package booking

import (
	"strings"
	"time"

	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Approve transitions the booking to APPROVED on behalf of reviewerID.
// A prior rejection reason is cleared so the toggle leaves no stale state.
func Approve(b *models.Booking, reviewerID uint, now time.Time) error {
	if err := CanApprove(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusApproved)
	b.RejectionReason = ""
	b.ApprovedBy = &reviewerID
	b.ApprovedAt = &now
	return nil
}

// Reject transitions the booking to REJECTED. The reason is mandatory;
// approver fields are cleared so the toggle leaves no stale state.
func Reject(b *models.Booking, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return httperr.ErrValidation("rejection_reason_required", "Rejection reason is mandatory.")
	}
	if err := CanReject(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusRejected)
	b.RejectionReason = reason
	b.ApprovedBy = nil
	b.ApprovedAt = nil
	return nil
}

// Cancel soft-deletes the booking. Valid from any status, but never for
// a booking whose date is already in the past.
func Cancel(b *models.Booking, now time.Time) error {
	if b.Deleted {
		return httperr.ErrValidation("already_cancelled", "Booking is already cancelled.")
	}
	if DateOnly(b.BookingDate).Before(DateOnly(now)) {
		return httperr.ErrValidation("cannot_cancel_past_booking", "Cannot cancel a past booking.")
	}

	b.Deleted = true
	b.DeletedAt = &now
	return nil
}
