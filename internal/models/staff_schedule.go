package models

import "time"

// StaffSchedule holds one weekly working interval per staff member and
// weekday. Rows are replaced wholesale on every schedule edit, never
// patched individually.
type StaffSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`
	StaffID  uint `gorm:"index:idx_staff_weekday,unique" json:"staff_id"`

	// 0=Sunday .. 6=Saturday
	Weekday int `gorm:"index:idx_staff_weekday,unique" json:"day_of_week"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Working   bool   `json:"is_working"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
