package booking

import (
	"context"
	"time"

	"github.com/ksrlabs/resource-booking/internal/audit"
	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type UpdateBookingInput struct {
	BookingID   uint
	RequesterID uint
	ResourceID  uint

	Date      string
	Slot      string
	StartTime string
	EndTime   string
}

type UpdateBooking struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

// Execute rewrites a booking's resource/date/window. Reviewer-only; the
// status is never touched through this path, and the conflict re-check
// excludes the booking's own row.
func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	requester, err := uc.repo.GetUser(ctx, in.RequesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsActive() || !uc.policy.CanReview(requester.Role) {
		return nil, httperr.ErrUnauthorized("not_a_reviewer", "Only reviewers can edit bookings.")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.GetResource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if !res.IsBookable() {
		return nil, httperr.ErrValidation("resource_unavailable", "Resource is not available for booking.")
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if domain.DateOnly(date).Before(domain.DateOnly(time.Now())) {
		return nil, httperr.ErrValidation("past_date", "Cannot book a past date.")
	}

	var window domain.Window
	if in.Slot != "" {
		window, err = domain.WindowFromSlot(date, in.Slot)
	} else {
		window, err = domain.WindowFromTimes(date, in.StartTime, in.EndTime)
	}
	if err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	b.ResourceID = res.ID
	b.BookingDate = domain.DateOnly(date)
	b.StartTime = window.Start
	b.EndTime = window.End
	b.DurationHours = window.Hours()

	if err := uc.repo.UpdateBookingGuarded(ctx, b, uc.policy.BlockingStatuses()); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.RequesterID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"resource_id": res.ID,
			"date":        in.Date,
		},
	})

	return b, nil
}
