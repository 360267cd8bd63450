// Package dashboard computes the derived risk metrics served by the
// dashboard endpoints and holds the stat snapshot they read from
package dashboard

import (
	"slices"
	"sync"
)

// Stats is the dashboard snapshot. Unlike the per-user alert breakdown
// this is a mutable mock kept in memory and only changed through
// UpdateStats
type Stats struct {
	TotalAlerts      int            `json:"totalAlerts"`
	ResolvedAlerts   int            `json:"resolvedAlerts"`
	PendingAlerts    int            `json:"pendingAlerts"`
	AlertsByType     map[string]int `json:"alertsByType"`
	AlertsBySeverity map[string]int `json:"alertsBySeverity"`
	ThreatTrendData  []int          `json:"threatTrendData"`
	ThreatBarData    []int          `json:"threatBarData"`
	RiskScore        float64        `json:"riskScore"`
}

// StatsUpdate is a partial snapshot update. Nil fields are left untouched
type StatsUpdate struct {
	TotalAlerts      *int           `json:"totalAlerts"`
	ResolvedAlerts   *int           `json:"resolvedAlerts"`
	PendingAlerts    *int           `json:"pendingAlerts"`
	AlertsByType     map[string]int `json:"alertsByType"`
	AlertsBySeverity map[string]int `json:"alertsBySeverity"`
	ThreatTrendData  []int          `json:"threatTrendData"`
	ThreatBarData    []int          `json:"threatBarData"`
	RiskScore        *float64       `json:"riskScore"`
}

// ThreatHistoryEntry is one point of the threat history chart
type ThreatHistoryEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ValidPeriods are the accepted threat history ranges
var ValidPeriods = []string{"1D", "7D", "30D", "90D"}

const DefaultPeriod = "7D"

// RiskScore derives the 0-100 risk metric from the snapshot: base 50,
// 2 points per pending alert, 10 per critical, 5 per high, capped at
// 100. The formula is load-bearing for the mobile client, keep it exact
func RiskScore(s Stats) float64 {
	score := 50.0
	score += float64(s.PendingAlerts) * 2
	score += float64(s.AlertsBySeverity["critical"]) * 10
	score += float64(s.AlertsBySeverity["high"]) * 5

	return min(score, 100)
}

// RiskLevel buckets a score. Boundaries are inclusive-low: 30 is
// already Medium, 60 High, 80 Critical
func RiskLevel(score float64) string {
	switch {
	case score < 30:
		return "Low"
	case score < 60:
		return "Medium"
	case score < 80:
		return "High"
	default:
		return "Critical"
	}
}

// RiskColor maps a score onto the fixed per-level color codes
func RiskColor(score float64) string {
	switch {
	case score < 30:
		return "#4CAF50"
	case score < 60:
		return "#FF9800"
	case score < 80:
		return "#F44336"
	default:
		return "#9C27B0"
	}
}

// ResolutionRate is the percentage of resolved alerts, exactly 0 when
// there are none at all
func ResolutionRate(s Stats) float64 {
	if s.TotalAlerts == 0 {
		return 0
	}

	return float64(s.ResolvedAlerts) / float64(s.TotalAlerts) * 100
}

// Service serves the snapshot and threat history. Reads copy, writes
// replace, last writer wins
type Service struct {
	mu      sync.RWMutex
	stats   Stats
	history []ThreatHistoryEntry
}

func NewService() *Service {
	return &Service{
		stats:   seedStats(),
		history: seedHistory(),
	}
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stats
}

// ThreatHistory returns the chart data for a period. Unknown periods
// fall back to the default
func (s *Service) ThreatHistory(period string) []ThreatHistoryEntry {
	if !slices.Contains(ValidPeriods, period) {
		period = DefaultPeriod
	}
	_ = period // the snapshot currently covers a single range

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ThreatHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// UpdateStats merges the provided fields over the snapshot and returns
// the result
func (s *Service) UpdateStats(upd StatsUpdate) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if upd.TotalAlerts != nil {
		s.stats.TotalAlerts = *upd.TotalAlerts
	}
	if upd.ResolvedAlerts != nil {
		s.stats.ResolvedAlerts = *upd.ResolvedAlerts
	}
	if upd.PendingAlerts != nil {
		s.stats.PendingAlerts = *upd.PendingAlerts
	}
	if upd.AlertsByType != nil {
		s.stats.AlertsByType = upd.AlertsByType
	}
	if upd.AlertsBySeverity != nil {
		s.stats.AlertsBySeverity = upd.AlertsBySeverity
	}
	if upd.ThreatTrendData != nil {
		s.stats.ThreatTrendData = upd.ThreatTrendData
	}
	if upd.ThreatBarData != nil {
		s.stats.ThreatBarData = upd.ThreatBarData
	}
	if upd.RiskScore != nil {
		s.stats.RiskScore = *upd.RiskScore
	}

	return s.stats
}

func seedStats() Stats {
	return Stats{
		TotalAlerts:    50,
		ResolvedAlerts: 35,
		PendingAlerts:  15,
		AlertsByType: map[string]int{
			"spam":     20,
			"malware":  15,
			"fraud":    10,
			"phishing": 3,
			"other":    2,
		},
		AlertsBySeverity: map[string]int{
			"low":      25,
			"medium":   15,
			"high":     8,
			"critical": 2,
		},
		ThreatTrendData: []int{30, 35, 40, 50, 45, 38, 42},
		ThreatBarData:   []int{10, 20, 15, 30, 25, 20, 10},
		RiskScore:       75.0,
	}
}

func seedHistory() []ThreatHistoryEntry {
	return []ThreatHistoryEntry{
		{Date: "2024-01-01", Count: 10},
		{Date: "2024-01-02", Count: 15},
		{Date: "2024-01-03", Count: 8},
		{Date: "2024-01-04", Count: 20},
		{Date: "2024-01-05", Count: 12},
		{Date: "2024-01-06", Count: 18},
		{Date: "2024-01-07", Count: 14},
	}
}
