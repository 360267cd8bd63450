package model

import "time"

type ScamReport struct {
	ID string `gorm:"primaryKey" json:"id"`

	// Client-generated ID used for deduplication. Optional, so uniqueness
	// of the empty value is enforced in the store instead of the schema
	ReportID string `gorm:"index" json:"reportId,omitempty"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	Severity    string    `gorm:"not null" json:"severity"`
	Date        time.Time `gorm:"not null;index" json:"date"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`

	ScreenshotPaths StringSlice `gorm:"type:text" json:"screenshotPaths"`
	DocumentPaths   StringSlice `gorm:"type:text" json:"documentPaths"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReportSubmission is the payload of a report submission before
// deduplication decided whether it creates or merges
type ReportSubmission struct {
	ReportID        string
	Title           string
	Description     string
	Type            string
	Severity        string
	Date            time.Time
	Phone           string
	Email           string
	Website         string
	ScreenshotPaths []string
	DocumentPaths   []string
}
