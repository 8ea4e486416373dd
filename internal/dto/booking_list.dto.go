package dto

import "time"

type BookingListDTO struct {
	ID            uint       `json:"id"`
	UserID        uint       `json:"user_id"`
	UserName      string     `json:"user_name"`
	ResourceID    uint       `json:"resource_id"`
	ResourceName  string     `json:"resource_name"`
	BookingDate   string     `json:"booking_date"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	DurationHours int        `json:"duration_hours"`
	Status        string     `json:"status"`
	ApprovedBy    *uint      `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
}
