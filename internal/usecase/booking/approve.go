package booking

import (
	"context"
	"time"

	"github.com/ksrlabs/resource-booking/internal/audit"
	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type ApproveBooking struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
}

func NewApproveBooking(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *ApproveBooking {
	return &ApproveBooking{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

func (uc *ApproveBooking) Execute(
	ctx context.Context,
	bookingID uint,
	reviewerID uint,
) (*models.Booking, error) {

	reviewer, err := uc.repo.GetUser(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewer.IsActive() || !uc.policy.CanReview(reviewer.Role) {
		return nil, httperr.ErrUnauthorized("not_a_reviewer", "Only reviewers can approve bookings.")
	}

	// Status precondition is re-checked under the row lock.
	b, err := uc.repo.TransitionBooking(ctx, bookingID, func(b *models.Booking) error {
		return domain.Approve(b, reviewerID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &reviewerID,
		Action:   "booking_approved",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
