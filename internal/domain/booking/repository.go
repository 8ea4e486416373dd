package booking

import (
	"context"
	"time"

	"github.com/ksrlabs/resource-booking/internal/models"
)

type Repository interface {
	// -------- Lookups --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetResource(
		ctx context.Context,
		id uint,
	) (*models.Resource, error)

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// -------- Listings --------
	ListBookingsByUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListActiveBookings(
		ctx context.Context,
	) ([]models.Booking, error)

	// -------- Conflict detection --------
	FindConflicts(
		ctx context.Context,
		resourceID uint,
		date time.Time,
		w Window,
		excludeID uint,
		blocking []string,
	) ([]models.Booking, error)

	CountActiveBookingsForUserOnDate(
		ctx context.Context,
		userID uint,
		date time.Time,
		blocking []string,
	) (int64, error)

	// -------- Guarded writes (conflict check + write in one txn) --------
	CreateBookingGuarded(
		ctx context.Context,
		b *models.Booking,
		blocking []string,
	) error

	UpdateBookingGuarded(
		ctx context.Context,
		b *models.Booking,
		blocking []string,
	) error

	// TransitionBooking loads the row under a write lock, applies the
	// domain action and saves, all in one transaction.
	TransitionBooking(
		ctx context.Context,
		id uint,
		apply func(*models.Booking) error,
	) (*models.Booking, error)

	// -------- Dashboard counts --------
	CountUsers(ctx context.Context) (int64, error)
	CountResources(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	CountApprovedBookings(ctx context.Context) (int64, error)
}
