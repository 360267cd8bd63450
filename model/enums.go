// Package model defines database models
package model

// Severity is the closed set of alert severity levels. The same values
// drive request validation and the stat breakdowns, so a new level only
// needs to be added here
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns all severity levels in ascending order
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// AlertType is the closed set of alert categories
type AlertType string

const (
	TypeSpam     AlertType = "spam"
	TypeMalware  AlertType = "malware"
	TypeFraud    AlertType = "fraud"
	TypePhishing AlertType = "phishing"
	TypeOther    AlertType = "other"
)

// AlertTypes returns all alert categories
func AlertTypes() []AlertType {
	return []AlertType{TypeSpam, TypeMalware, TypeFraud, TypePhishing, TypeOther}
}

func (t AlertType) Valid() bool {
	switch t {
	case TypeSpam, TypeMalware, TypeFraud, TypePhishing, TypeOther:
		return true
	}
	return false
}
