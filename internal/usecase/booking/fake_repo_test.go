package booking

import (
	"context"
	"time"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

// fakeRepo is an in-memory stand-in for the gorm repository. Guarded
// writes perform the same conflict scan the real store does inside its
// transaction, so the use cases exercise the full admission path.
type fakeRepo struct {
	users     map[uint]*models.User
	resources map[uint]*models.Resource
	bookings  map[uint]*models.Booking

	nextID uint

	// createFailures makes the next N guarded creates fail with
	// store_conflict, to exercise the retry path.
	createFailures int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     map[uint]*models.User{},
		resources: map[uint]*models.Resource{},
		bookings:  map[uint]*models.Booking{},
		nextID:    1,
	}
}

func (f *fakeRepo) addUser(u models.User) *models.User {
	f.users[u.ID] = &u
	return &u
}

func (f *fakeRepo) addResource(r models.Resource) *models.Resource {
	f.resources[r.ID] = &r
	return &r
}

func (f *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found", "User not found.")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetResource(_ context.Context, id uint) (*models.Resource, error) {
	r, ok := f.resources[id]
	if !ok {
		return nil, httperr.ErrNotFound("resource_not_found", "Resource not found.")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) ListBookingsByUser(_ context.Context, userID uint) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && !b.Deleted {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActiveBookings(_ context.Context) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.Deleted && b.Status != "REJECTED" {
			out = append(out, *b)
		}
	}
	return out, nil
}

func blocks(status string, blocking []string) bool {
	for _, s := range blocking {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeRepo) FindConflicts(
	_ context.Context,
	resourceID uint,
	date time.Time,
	w domain.Window,
	excludeID uint,
	blocking []string,
) ([]models.Booking, error) {
	var out []models.Booking
	day := domain.DateOnly(date)
	for _, b := range f.bookings {
		if b.ID == excludeID || b.Deleted || b.ResourceID != resourceID {
			continue
		}
		if !b.BookingDate.Equal(day) || !blocks(b.Status, blocking) {
			continue
		}
		if b.Overlaps(w.Start, w.End) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountActiveBookingsForUserOnDate(
	_ context.Context,
	userID uint,
	date time.Time,
	blocking []string,
) (int64, error) {
	var n int64
	day := domain.DateOnly(date)
	for _, b := range f.bookings {
		if b.UserID == userID && !b.Deleted && b.BookingDate.Equal(day) && blocks(b.Status, blocking) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreateBookingGuarded(ctx context.Context, b *models.Booking, blocking []string) error {
	if f.createFailures > 0 {
		f.createFailures--
		return httperr.ErrConflict("store_conflict", "Concurrent write, retry.")
	}

	w := domain.Window{Start: b.StartTime, End: b.EndTime}
	hits, _ := f.FindConflicts(ctx, b.ResourceID, b.BookingDate, w, 0, blocking)
	if len(hits) > 0 {
		return httperr.ErrConflict("time_conflict", "Resource is already booked for the selected time slot.")
	}

	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateBookingGuarded(ctx context.Context, b *models.Booking, blocking []string) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}

	w := domain.Window{Start: b.StartTime, End: b.EndTime}
	hits, _ := f.FindConflicts(ctx, b.ResourceID, b.BookingDate, w, b.ID, blocking)
	if len(hits) > 0 {
		return httperr.ErrConflict("time_conflict", "Resource is already booked for the selected time slot.")
	}

	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepo) TransitionBooking(
	_ context.Context,
	id uint,
	apply func(*models.Booking) error,
) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}
	if err := apply(b); err != nil {
		return nil, err
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) CountUsers(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeRepo) CountResources(context.Context) (int64, error) {
	return int64(len(f.resources)), nil
}

// Dashboard counts include soft-deleted rows, same as the gorm queries.
func (f *fakeRepo) CountBookings(context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeRepo) CountApprovedBookings(context.Context) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.Status == "APPROVED" {
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
