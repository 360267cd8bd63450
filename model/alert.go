package model

import "time"

type SecurityAlert struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"userId,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Severity    Severity  `gorm:"not null" json:"severity"`
	Type        AlertType `gorm:"not null" json:"type"`
	IsResolved  bool      `json:"isResolved"`

	// Optional context depending on the alert type
	Location           string  `json:"location,omitempty"`
	MalwareType        string  `json:"malwareType,omitempty"`
	InfectedDeviceType string  `json:"infectedDeviceType,omitempty"`
	OperatingSystem    string  `json:"operatingSystem,omitempty"`
	DetectionMethod    string  `json:"detectionMethod,omitempty"`
	FileName           string  `json:"fileName,omitempty"`
	Name               string  `json:"name,omitempty"`
	SystemAffected     string  `json:"systemAffected,omitempty"`
	Metadata           JSONMap `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AlertUpdate is a partial alert update. Nil fields are left untouched.
// ID, UserID and CreatedAt are deliberately absent, those never change
// after creation
type AlertUpdate struct {
	Title              *string
	Description        *string
	Severity           *Severity
	Type               *AlertType
	IsResolved         *bool
	Location           *string
	MalwareType        *string
	InfectedDeviceType *string
	OperatingSystem    *string
	DetectionMethod    *string
	FileName           *string
	Name               *string
	SystemAffected     *string
	Metadata           JSONMap
}

// AlertStats is the per-user breakdown served by /api/alerts/stats.
// Both maps always carry every enum value, even at zero
type AlertStats struct {
	Total      int               `json:"total"`
	Resolved   int               `json:"resolved"`
	Pending    int               `json:"pending"`
	ByType     map[AlertType]int `json:"byType"`
	BySeverity map[Severity]int  `json:"bySeverity"`
}
