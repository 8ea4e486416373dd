package booking

import (
	"testing"
	"time"

	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

func activeUser(role models.Role) *models.User {
	return &models.User{Role: role, Status: models.UserActive}
}

func bookableResource() *models.Resource {
	return &models.Resource{Status: models.ResourceAvailable}
}

func windowAt(t *testing.T, date string, hours int) Window {
	t.Helper()
	day := DateOnly(mustDate(t, date))
	return Window{Start: day.Add(9 * time.Hour), End: day.Add(time.Duration(9+hours) * time.Hour)}
}

func TestCheckEligibilityDurationCaps(t *testing.T) {
	policy := DefaultPolicy()
	now := mustDate(t, "2026-09-01")
	res := bookableResource()

	cases := []struct {
		role     models.Role
		hours    int
		wantCode string
	}{
		{models.RoleStudent, 1, ""},
		{models.RoleStudent, 2, "duration_exceeds_role_limit"},
		{models.RoleStaff, 2, ""},
		{models.RoleStaff, 5, ""},
		{models.RoleStaff, 6, "duration_exceeds_role_limit"},
		{models.RoleAdmin, 8, ""},
	}

	for _, tc := range cases {
		err := policy.CheckEligibility(activeUser(tc.role), res, windowAt(t, "2026-09-15", tc.hours), now)
		if tc.wantCode == "" {
			if err != nil {
				t.Fatalf("%s booking %dh: unexpected error %v", tc.role, tc.hours, err)
			}
			continue
		}
		if !httperr.IsBusiness(err, tc.wantCode) {
			t.Fatalf("%s booking %dh: expected %s, got %v", tc.role, tc.hours, tc.wantCode, err)
		}
	}
}

func TestCheckEligibilityRejectsPastDateForAllRoles(t *testing.T) {
	policy := DefaultPolicy()
	now := mustDate(t, "2026-09-15")
	res := bookableResource()

	for _, role := range []models.Role{models.RoleStudent, models.RoleStaff, models.RoleAdmin} {
		err := policy.CheckEligibility(activeUser(role), res, windowAt(t, "2026-09-14", 1), now)
		if !httperr.IsBusiness(err, "past_date") {
			t.Fatalf("%s past booking: expected past_date, got %v", role, err)
		}
	}
}

func TestCheckEligibilityAllowsToday(t *testing.T) {
	policy := DefaultPolicy()
	now := mustDate(t, "2026-09-15").Add(6 * time.Hour)

	err := policy.CheckEligibility(activeUser(models.RoleStaff), bookableResource(), windowAt(t, "2026-09-15", 2), now)
	if err != nil {
		t.Fatalf("same-day booking should pass, got %v", err)
	}
}

func TestCheckEligibilityRejectsInactiveUser(t *testing.T) {
	policy := DefaultPolicy()
	now := mustDate(t, "2026-09-01")

	u := activeUser(models.RoleStaff)
	u.Status = models.UserInactive

	err := policy.CheckEligibility(u, bookableResource(), windowAt(t, "2026-09-15", 1), now)
	if !httperr.IsBusiness(err, "inactive_user") {
		t.Fatalf("expected inactive_user, got %v", err)
	}

	deleted := activeUser(models.RoleStaff)
	deleted.Deleted = true

	err = policy.CheckEligibility(deleted, bookableResource(), windowAt(t, "2026-09-15", 1), now)
	if !httperr.IsBusiness(err, "inactive_user") {
		t.Fatalf("expected inactive_user for deleted account, got %v", err)
	}
}

func TestCheckEligibilityRejectsUnavailableResource(t *testing.T) {
	policy := DefaultPolicy()
	now := mustDate(t, "2026-09-01")

	for _, status := range []models.ResourceStatus{models.ResourceUnavailable, models.ResourceMaintenance} {
		res := &models.Resource{Status: status}
		err := policy.CheckEligibility(activeUser(models.RoleAdmin), res, windowAt(t, "2026-09-15", 1), now)
		if !httperr.IsBusiness(err, "resource_unavailable") {
			t.Fatalf("resource %s: expected resource_unavailable, got %v", status, err)
		}
	}
}

func TestCheckEligibilityRejectsUnknownRole(t *testing.T) {
	policy := DefaultPolicy()
	now := mustDate(t, "2026-09-01")

	err := policy.CheckEligibility(activeUser("JANITOR"), bookableResource(), windowAt(t, "2026-09-15", 1), now)
	if !httperr.IsBusiness(err, "unknown_role") {
		t.Fatalf("expected unknown_role, got %v", err)
	}
}

func TestInitialStatusFollowsAutoApproveColumn(t *testing.T) {
	policy := DefaultPolicy()

	if got := policy.InitialStatus(models.RoleStudent); got != StatusPending {
		t.Fatalf("student initial status = %s, want PENDING", got)
	}
	if got := policy.InitialStatus(models.RoleStaff); got != StatusApproved {
		t.Fatalf("staff initial status = %s, want APPROVED", got)
	}
	if got := policy.InitialStatus(models.RoleAdmin); got != StatusApproved {
		t.Fatalf("admin initial status = %s, want APPROVED", got)
	}
}

func TestCanReview(t *testing.T) {
	policy := DefaultPolicy()

	if policy.CanReview(models.RoleStudent) || policy.CanReview(models.RoleStaff) {
		t.Fatal("only ADMIN reviews under the default table")
	}
	if !policy.CanReview(models.RoleAdmin) {
		t.Fatal("ADMIN must be a reviewer")
	}

	// Flipping the table row is all it takes to widen the reviewer set.
	rp := policy.Roles[models.RoleStaff]
	rp.CanReview = true
	policy.Roles[models.RoleStaff] = rp

	if !policy.CanReview(models.RoleStaff) {
		t.Fatal("staff should review after the table change")
	}
}

func TestBlockingStatuses(t *testing.T) {
	policy := DefaultPolicy()

	got := policy.BlockingStatuses()
	if len(got) != 2 || got[0] != string(StatusPending) || got[1] != string(StatusApproved) {
		t.Fatalf("default blocking set = %v, want [PENDING APPROVED]", got)
	}

	policy.PendingBlocksSlot = false
	got = policy.BlockingStatuses()
	if len(got) != 1 || got[0] != string(StatusApproved) {
		t.Fatalf("relaxed blocking set = %v, want [APPROVED]", got)
	}
}
