package booking

import (
	"time"

	"github.com/ksrlabs/resource-booking/internal/httperr"
)

// Window is the canonical [Start, End) span a booking occupies on its date.
// Legacy coarse slots are normalized into this representation so a single
// overlap test covers both schema generations.
type Window struct {
	Start time.Time
	End   time.Time
}

// Legacy slot names still accepted as request input.
const (
	SlotMorning   = "MORNING"
	SlotAfternoon = "AFTERNOON"
	SlotFullDay   = "FULL_DAY"
)

var slotHours = map[string][2]int{
	SlotMorning:   {8, 12},
	SlotAfternoon: {13, 17},
	SlotFullDay:   {8, 17},
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date", "Booking date must be YYYY-MM-DD.")
	}
	return d, nil
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WindowFromSlot anchors a legacy slot on the given date.
func WindowFromSlot(date time.Time, slot string) (Window, error) {
	hours, ok := slotHours[slot]
	if !ok {
		return Window{}, httperr.ErrValidation("invalid_slot", "Slot must be MORNING, AFTERNOON or FULL_DAY.")
	}

	day := DateOnly(date)
	return Window{
		Start: day.Add(time.Duration(hours[0]) * time.Hour),
		End:   day.Add(time.Duration(hours[1]) * time.Hour),
	}, nil
}

// WindowFromTimes builds a window from "15:04" clock strings on the given date.
func WindowFromTimes(date time.Time, startHM, endHM string) (Window, error) {
	day := DateOnly(date)

	parseHM := func(hm string) (time.Time, error) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, httperr.ErrValidation("invalid_time", "Times must be HH:MM.")
		}
		return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
	}

	start, err := parseHM(startHM)
	if err != nil {
		return Window{}, err
	}
	end, err := parseHM(endHM)
	if err != nil {
		return Window{}, err
	}

	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate enforces a positive, exact whole-hour duration.
func (w Window) Validate() error {
	d := w.End.Sub(w.Start)
	if d <= 0 {
		return httperr.ErrValidation("invalid_window", "End time must be after start time.")
	}
	if d%time.Hour != 0 {
		return httperr.ErrValidation("invalid_window", "Booking length must be a whole number of hours.")
	}
	return nil
}

// Hours is the whole-hour duration of the window.
func (w Window) Hours() int {
	return int(w.End.Sub(w.Start) / time.Hour)
}

// Overlaps tests two half-open intervals: [s1,e1) and [s2,e2) conflict
// iff s1 < e2 && s2 < e1.
func (w Window) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && start.Before(w.End)
}
