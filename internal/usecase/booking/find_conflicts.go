package booking

import (
	"context"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/models"
)

type FindConflictsInput struct {
	ResourceID uint

	Date      string
	Slot      string
	StartTime string
	EndTime   string

	ExcludeBookingID uint
}

type FindConflicts struct {
	repo   domain.Repository
	policy domain.Policy
}

func NewFindConflicts(repo domain.Repository, policy domain.Policy) *FindConflicts {
	return &FindConflicts{repo: repo, policy: policy}
}

// Execute is the read-only availability probe: an empty result means the
// requested window is free on the resource.
func (uc *FindConflicts) Execute(
	ctx context.Context,
	in FindConflictsInput,
) ([]models.Booking, error) {

	if _, err := uc.repo.GetResource(ctx, in.ResourceID); err != nil {
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

	return uc.repo.FindConflicts(
		ctx,
		in.ResourceID,
		date,
		window,
		in.ExcludeBookingID,
		uc.policy.BlockingStatuses(),
	)
}
