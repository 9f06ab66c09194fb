package models

import "time"

// BossProfile is a shared secret granting a conversation elevated access
// to the administrative tool set. Codes look like "JOHN-DOE-4821".
type BossProfile struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	BossName string `gorm:"size:100;not null" json:"boss_name"`
	BossCode string `gorm:"size:120;index;not null" json:"boss_code"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
