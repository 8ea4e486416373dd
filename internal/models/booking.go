package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	ResourceID uint     `gorm:"not null;index:idx_booking_resource_date,priority:1" json:"resource_id"`
	Resource   Resource `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"resource"`

	BookingDate time.Time `gorm:"type:date;not null;index:idx_booking_resource_date,priority:2" json:"booking_date"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`

	DurationHours int `gorm:"not null" json:"duration_hours"`

	Status          string `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	RejectionReason string `gorm:"size:255" json:"rejection_reason,omitempty"`

	ApprovedBy *uint      `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	Deleted   bool       `gorm:"not null;default:false" json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Overlaps tests the booking's window against [start, end) half-open.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
