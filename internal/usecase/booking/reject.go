package booking

import (
	"context"
	"time"

	"github.com/ksrlabs/resource-booking/internal/audit"
	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type RejectBooking struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
}

func NewRejectBooking(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *RejectBooking {
	return &RejectBooking{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

func (uc *RejectBooking) Execute(
	ctx context.Context,
	bookingID uint,
	reviewerID uint,
	reason string,
) (*models.Booking, error) {

	reviewer, err := uc.repo.GetUser(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewer.IsActive() || !uc.policy.CanReview(reviewer.Role) {
		return nil, httperr.ErrUnauthorized("not_a_reviewer", "Only reviewers can reject bookings.")
	}

	b, err := uc.repo.TransitionBooking(ctx, bookingID, func(b *models.Booking) error {
		return domain.Reject(b, reason, time.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &reviewerID,
		Action:   "booking_rejected",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": reason},
	})

	return b, nil
}
