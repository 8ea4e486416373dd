package models

import "time"

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "AVAILABLE"
	ResourceUnavailable ResourceStatus = "UNAVAILABLE"
	ResourceMaintenance ResourceStatus = "MAINTENANCE"
)

type Resource struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Type     string `gorm:"size:50" json:"type"`
	Capacity int    `gorm:"not null" json:"capacity"`

	Status ResourceStatus `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`

	Deleted   bool       `gorm:"not null;default:false" json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBookable reports whether new bookings may target this resource.
func (r *Resource) IsBookable() bool {
	return r.Status == ResourceAvailable && !r.Deleted
}
