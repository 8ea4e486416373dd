package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

// Dates far in the future so the now() checks inside the use cases
// never flip these fixtures.
const (
	testDay     = "2030-06-10"
	testNextDay = "2030-06-11"
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1, Name: "Ana", Role: models.RoleStudent, Status: models.UserActive})
	repo.addUser(models.User{ID: 2, Name: "Bruno", Role: models.RoleStaff, Status: models.UserActive})
	repo.addUser(models.User{ID: 3, Name: "Carla", Role: models.RoleAdmin, Status: models.UserActive})
	repo.addResource(models.Resource{ID: 10, Name: "Lab A", Capacity: 20, Status: models.ResourceAvailable})
	repo.addResource(models.Resource{ID: 11, Name: "Projector", Capacity: 1, Status: models.ResourceMaintenance})
	return repo
}

func TestCreateBookingStudentStaysPending(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusPending), b.Status)
	require.Nil(t, b.ApprovedBy)
	require.Equal(t, 1, b.DurationHours)
}

func TestCreateBookingStaffAutoApproved(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "12:00",
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusApproved), b.Status)
	require.NotNil(t, b.ApprovedBy)
	require.Equal(t, uint(2), *b.ApprovedBy)
	require.NotNil(t, b.ApprovedAt)
}

func TestCreateBookingDurationCapPerRole(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	// Two hours is over the student cap but fine for staff.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "11:00",
	})
	require.True(t, httperr.IsBusiness(err, "duration_exceeds_role_limit"))

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "11:00",
	})
	require.NoError(t, err)
}

func TestCreateBookingPastDateRejectedForAllRoles(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	for _, userID := range []uint{1, 2, 3} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID:     userID,
			ResourceID: 10,
			Date:       "2020-01-15",
			StartTime:  "09:00",
			EndTime:    "10:00",
		})
		require.True(t, httperr.IsBusiness(err, "past_date"), "user %d: got %v", userID, err)
	}
}

func TestCreateBookingLegacySlotNormalized(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		Slot:       domain.SlotMorning,
	})
	require.NoError(t, err)
	require.Equal(t, 8, b.StartTime.Hour())
	require.Equal(t, 12, b.EndTime.Hour())
	require.Equal(t, 4, b.DurationHours)
}

func TestCreateBookingStudentDailyQuota(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)

	// Second booking on the same day trips the quota even on a free window.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "14:00",
		EndTime:    "15:00",
	})
	require.True(t, httperr.IsBusiness(err, "daily_quota_exceeded"), "got %v", err)

	// A different day is fine.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testNextDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)
}

func TestCreateBookingPendingBlocksSlot(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	// Student's PENDING booking holds the window.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "11:00",
	})
	require.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)

	kind, ok := httperr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, httperr.KindConflict, kind)
}

func TestCreateBookingPendingIgnoredWhenRelaxed(t *testing.T) {
	repo := seededRepo()
	policy := domain.DefaultPolicy()
	policy.PendingBlocksSlot = false
	uc := NewCreateBooking(repo, policy, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     1,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)

	// PENDING no longer blocks, so the overlapping staff booking lands.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "11:00",
	})
	require.NoError(t, err)
}

func TestCreateBookingAdjacentWindowsCoexist(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "11:00",
	})
	require.NoError(t, err)

	// [11,13) starts exactly where [9,11) ends.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID:     3,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "11:00",
		EndTime:    "13:00",
	})
	require.NoError(t, err)
}

func TestCreateBookingUnavailableResource(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 11,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.True(t, httperr.IsBusiness(err, "resource_unavailable"), "got %v", err)
}

func TestCreateBookingRetriesOnceOnStoreConflict(t *testing.T) {
	repo := seededRepo()
	repo.createFailures = 1
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.NoError(t, err)
	require.NotZero(t, b.ID)
}

func TestCreateBookingGivesUpAfterSecondStoreConflict(t *testing.T) {
	repo := seededRepo()
	repo.createFailures = 2
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     2,
		ResourceID: 10,
		Date:       testDay,
		StartTime:  "09:00",
		EndTime:    "10:00",
	})
	require.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)
}

func TestCreateBookingUnknownUserOrResource(t *testing.T) {
	repo := seededRepo()
	uc := NewCreateBooking(repo, domain.DefaultPolicy(), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 99, ResourceID: 10, Date: testDay, StartTime: "09:00", EndTime: "10:00",
	})
	require.True(t, httperr.IsBusiness(err, "user_not_found"))

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID: 2, ResourceID: 99, Date: testDay, StartTime: "09:00", EndTime: "10:00",
	})
	require.True(t, httperr.IsBusiness(err, "resource_not_found"))
}
