package booking

import (
	"context"
	"time"

	"github.com/ksrlabs/resource-booking/internal/audit"
	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type CancelBooking struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

// Execute soft-deletes the booking. Allowed to the owning user or to a
// reviewer role; the record stays retrievable by id for audit.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	requesterID uint,
) error {

	requester, err := uc.repo.GetUser(ctx, requesterID)
	if err != nil {
		return err
	}

	b, err := uc.repo.TransitionBooking(ctx, bookingID, func(b *models.Booking) error {
		if b.UserID != requesterID && !uc.policy.CanReview(requester.Role) {
			return httperr.ErrUnauthorized("not_booking_owner", "Only the owner or a reviewer can cancel a booking.")
		}
		return domain.Cancel(b, time.Now())
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &requesterID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return nil
}
