package booking

import (
	"context"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type ListBookingsForUser struct {
	repo domain.Repository
}

func NewListBookingsForUser(repo domain.Repository) *ListBookingsForUser {
	return &ListBookingsForUser{repo: repo}
}

// Execute lists a user's bookings, soft-deleted excluded.
func (uc *ListBookingsForUser) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {
	if _, err := uc.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return uc.repo.ListBookingsByUser(ctx, userID)
}

type ListActiveBookings struct {
	repo domain.Repository
}

func NewListActiveBookings(repo domain.Repository) *ListActiveBookings {
	return &ListActiveBookings{repo: repo}
}

// Execute lists every booking that is neither cancelled nor rejected.
func (uc *ListActiveBookings) Execute(
	ctx context.Context,
) ([]models.Booking, error) {
	return uc.repo.ListActiveBookings(ctx)
}
