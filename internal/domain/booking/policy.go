package booking

import (
	"fmt"
	"time"

	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/models"
)

// RolePolicy is the per-role admission row. Changing caps, quotas or the
// reviewer set is a data change here, not a code change elsewhere.
type RolePolicy struct {
	MaxHours    int
	DailyQuota  int // active bookings per calendar day, 0 = unlimited
	AutoApprove bool
	CanReview   bool
}

type Policy struct {
	Roles map[models.Role]RolePolicy

	// PendingBlocksSlot decides whether a PENDING booking already blocks
	// its slot for conflict purposes.
	PendingBlocksSlot bool
}

func DefaultPolicy() Policy {
	return Policy{
		Roles: map[models.Role]RolePolicy{
			models.RoleStudent: {MaxHours: 1, DailyQuota: 1, AutoApprove: false, CanReview: false},
			models.RoleStaff:   {MaxHours: 5, DailyQuota: 0, AutoApprove: true, CanReview: false},
			models.RoleAdmin:   {MaxHours: 24, DailyQuota: 0, AutoApprove: true, CanReview: true},
		},
		PendingBlocksSlot: true,
	}
}

func (p Policy) ForRole(role models.Role) (RolePolicy, error) {
	rp, ok := p.Roles[role]
	if !ok {
		return RolePolicy{}, httperr.ErrValidation("unknown_role", fmt.Sprintf("No booking policy for role %s.", role))
	}
	return rp, nil
}

// CheckEligibility runs the admission checks that need no store access,
// in order: active user, bookable resource, not a past date, valid
// whole-hour window, role duration cap. The daily quota needs a store
// count and is enforced by the create use case.
func (p Policy) CheckEligibility(user *models.User, res *models.Resource, w Window, now time.Time) error {
	if !user.IsActive() {
		return httperr.ErrUnauthorized("inactive_user", "Only active users can create bookings.")
	}
	if !res.IsBookable() {
		return httperr.ErrValidation("resource_unavailable", "Resource is not available for booking.")
	}
	if DateOnly(w.Start).Before(DateOnly(now)) {
		return httperr.ErrValidation("past_date", "Cannot book a past date.")
	}
	if err := w.Validate(); err != nil {
		return err
	}

	rp, err := p.ForRole(user.Role)
	if err != nil {
		return err
	}
	if w.Hours() > rp.MaxHours {
		return httperr.ErrValidation(
			"duration_exceeds_role_limit",
			fmt.Sprintf("%s can book at most %d hour(s).", user.Role, rp.MaxHours),
		)
	}

	return nil
}

// InitialStatus applies the auto-approval column of the policy table.
func (p Policy) InitialStatus(role models.Role) Status {
	if rp, ok := p.Roles[role]; ok && rp.AutoApprove {
		return StatusApproved
	}
	return StatusPending
}

func (p Policy) CanReview(role models.Role) bool {
	rp, ok := p.Roles[role]
	return ok && rp.CanReview
}

// BlockingStatuses is the set of statuses that hold a slot against
// conflicting bookings.
func (p Policy) BlockingStatuses() []string {
	if p.PendingBlocksSlot {
		return []string{string(StatusPending), string(StatusApproved)}
	}
	return []string{string(StatusApproved)}
}
