package models

import "time"

// CallLog records one turn of a conversational session for the admin UI.
type CallLog struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`

	SessionID string `gorm:"size:64;index" json:"session_id"`

	UserText string `gorm:"type:text" json:"user_text"`
	Reply    string `gorm:"type:text" json:"reply"`

	// Tool names dispatched during the turn, comma separated.
	ToolsUsed string `gorm:"size:255" json:"tools_used"`
	Status    string `gorm:"size:20;default:'completed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
