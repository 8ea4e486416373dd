package booking

import (
	"context"
	"time"

	"github.com/ksrlabs/resource-booking/internal/audit"
	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// CreateBookingInput carries either a legacy Slot or explicit
// StartTime/EndTime ("HH:MM") for the given Date ("YYYY-MM-DD").
type CreateBookingInput struct {
	UserID     uint
	ResourceID uint

	Date      string
	Slot      string
	StartTime string
	EndTime   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	policy domain.Policy
	audit  *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	policy domain.Policy,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		policy: policy,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	user, err := uc.repo.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.GetResource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
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

	if err := uc.policy.CheckEligibility(user, res, window, time.Now()); err != nil {
		return nil, err
	}

	rp, err := uc.policy.ForRole(user.Role)
	if err != nil {
		return nil, err
	}

	blocking := uc.policy.BlockingStatuses()

	if rp.DailyQuota > 0 {
		// The quota count runs outside the guarded transaction: two
		// concurrent same-user creates on disjoint windows can both pass
		// it. Only the overlap check is atomic with the insert.
		held, err := uc.repo.CountActiveBookingsForUserOnDate(ctx, user.ID, date, blocking)
		if err != nil {
			return nil, err
		}
		if held >= int64(rp.DailyQuota) {
			return nil, httperr.ErrValidation("daily_quota_exceeded", "Daily booking quota exceeded for this role.")
		}
	}

	b := &models.Booking{
		UserID:        user.ID,
		ResourceID:    res.ID,
		BookingDate:   domain.DateOnly(date),
		StartTime:     window.Start,
		EndTime:       window.End,
		DurationHours: window.Hours(),
		Status:        string(uc.policy.InitialStatus(user.Role)),
	}

	if b.Status == string(domain.StatusApproved) {
		now := time.Now()
		b.ApprovedBy = &user.ID
		b.ApprovedAt = &now
	}

	err = uc.repo.CreateBookingGuarded(ctx, b, blocking)
	if httperr.IsBusiness(err, "store_conflict") {
		// One retry on a store-level serialization failure, then fail closed.
		err = uc.repo.CreateBookingGuarded(ctx, b, blocking)
		if httperr.IsBusiness(err, "store_conflict") {
			err = httperr.ErrConflict("time_conflict", "Resource is already booked for the selected time slot.")
		}
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &user.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"resource_id": res.ID,
			"date":        in.Date,
			"status":      b.Status,
		},
	})

	return b, nil
}
