package models

import "time"

type Tenant struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:64;default:'UTC'" json:"timezone"`
	Plan     string `gorm:"size:20;default:'free'" json:"plan"`

	// Agent persona shown to callers of the conversational endpoint.
	PersonaName string `gorm:"size:100" json:"persona_name"`
	Greeting    string `gorm:"size:255" json:"greeting"`
	VoiceStyle  string `gorm:"size:50" json:"voice_style"`
	Context     string `gorm:"size:500" json:"context"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
