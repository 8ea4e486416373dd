package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Postgres error translation
// --------------------------------------------------

// translateTxError folds store-level concurrency failures into the
// business taxonomy: a unique-constraint rejection means the slot was
// taken concurrently, a serialization/deadlock failure is retryable once
// by the caller.
func translateTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return httperr.ErrConflict("time_conflict", "Resource is already booked for the selected time slot.")
		case "40001", "40P01":
			return httperr.ErrConflict("store_conflict", "Concurrent update, please retry.")
		}
	}
	return err
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found", "User not found.")
		}
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetResource(
	ctx context.Context,
	id uint,
) (*models.Resource, error) {

	var res models.Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("resource_not_found", "Resource not found.")
		}
		return nil, err
	}
	return &res, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Resource").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
		}
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsByUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Resource").
		Where("user_id = ? AND deleted = false", userID).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Resource").
		Where("deleted = false AND status <> ?", string(domain.StatusRejected)).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Conflict detection
// --------------------------------------------------

func (r *BookingGormRepository) FindConflicts(
	ctx context.Context,
	resourceID uint,
	date time.Time,
	w domain.Window,
	excludeID uint,
	blocking []string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Where(
			"resource_id = ? AND booking_date = ? AND deleted = false AND status IN ?",
			resourceID, domain.DateOnly(date), blocking,
		).
		Where("start_time < ? AND end_time > ?", w.End, w.Start)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Booking
	if err := q.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *BookingGormRepository) CountActiveBookingsForUserOnDate(
	ctx context.Context,
	userID uint,
	date time.Time,
	blocking []string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"user_id = ? AND booking_date = ? AND deleted = false AND status IN ?",
			userID, domain.DateOnly(date), blocking,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Guarded writes
// --------------------------------------------------

// CreateBookingGuarded locks candidate rows for the same resource/date,
// re-checks the overlap and inserts, all in one transaction, so two
// concurrent requests cannot both observe a free slot.
func (r *BookingGormRepository) CreateBookingGuarded(
	ctx context.Context,
	b *models.Booking,
	blocking []string,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"resource_id = ? AND booking_date = ? AND deleted = false AND status IN ?",
				b.ResourceID, b.BookingDate, blocking,
			).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict", "Resource is already booked for the selected time slot.")
		}

		return tx.Create(b).Error
	})

	return translateTxError(err)
}

func (r *BookingGormRepository) UpdateBookingGuarded(
	ctx context.Context,
	b *models.Booking,
	blocking []string,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"resource_id = ? AND booking_date = ? AND deleted = false AND status IN ? AND id <> ?",
				b.ResourceID, b.BookingDate, blocking, b.ID,
			).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict", "Resource is already booked for the selected time slot.")
		}

		return tx.Save(b).Error
	})

	return translateTxError(err)
}

func (r *BookingGormRepository) TransitionBooking(
	ctx context.Context,
	id uint,
	apply func(*models.Booking) error,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("booking_not_found", "Booking not found.")
			}
			return err
		}

		if err := apply(&b); err != nil {
			return err
		}

		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, translateTxError(err)
	}

	return &b, nil
}

// --------------------------------------------------
// Dashboard counts
// --------------------------------------------------

func (r *BookingGormRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.Model(&models.User{}))
}

func (r *BookingGormRepository) CountResources(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Resource{}))
}

func (r *BookingGormRepository) CountBookings(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.Model(&models.Booking{}))
}

func (r *BookingGormRepository) CountApprovedBookings(ctx context.Context) (int64, error) {
	return r.count(ctx, r.db.
		Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusApproved)))
}

func (r *BookingGormRepository) count(ctx context.Context, q *gorm.DB) (int64, error) {
	var count int64
	if err := q.WithContext(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
