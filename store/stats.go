package store

import "scamwatch/security-api/model"

// computeStats builds the breakdown over an already owner-filtered
// alert set. Every enum value is present in the maps even at zero,
// so clients never have to nil-check a bucket
func computeStats(alerts []model.SecurityAlert) *model.AlertStats {
	stats := &model.AlertStats{
		Total:      len(alerts),
		ByType:     make(map[model.AlertType]int, len(model.AlertTypes())),
		BySeverity: make(map[model.Severity]int, len(model.Severities())),
	}

	for _, t := range model.AlertTypes() {
		stats.ByType[t] = 0
	}
	for _, s := range model.Severities() {
		stats.BySeverity[s] = 0
	}

	for _, a := range alerts {
		if a.IsResolved {
			stats.Resolved++
		}

		stats.ByType[a.Type]++
		stats.BySeverity[a.Severity]++
	}

	stats.Pending = stats.Total - stats.Resolved
	return stats
}

// applyAlertUpdate merges the non-nil fields of upd over a. ID, UserID
// and CreatedAt are never touched, the caller owns the UpdatedAt bump
func applyAlertUpdate(a *model.SecurityAlert, upd model.AlertUpdate) {
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Severity != nil {
		a.Severity = *upd.Severity
	}
	if upd.Type != nil {
		a.Type = *upd.Type
	}
	if upd.IsResolved != nil {
		a.IsResolved = *upd.IsResolved
	}
	if upd.Location != nil {
		a.Location = *upd.Location
	}
	if upd.MalwareType != nil {
		a.MalwareType = *upd.MalwareType
	}
	if upd.InfectedDeviceType != nil {
		a.InfectedDeviceType = *upd.InfectedDeviceType
	}
	if upd.OperatingSystem != nil {
		a.OperatingSystem = *upd.OperatingSystem
	}
	if upd.DetectionMethod != nil {
		a.DetectionMethod = *upd.DetectionMethod
	}
	if upd.FileName != nil {
		a.FileName = *upd.FileName
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.SystemAffected != nil {
		a.SystemAffected = *upd.SystemAffected
	}
	if upd.Metadata != nil {
		a.Metadata = upd.Metadata
	}
}

// mergeSubmission applies the update path of the dedup algorithm:
// scalar contact fields are overwritten, attachment paths are appended
func mergeSubmission(r *model.ScamReport, sub model.ReportSubmission) {
	r.Severity = sub.Severity
	r.Phone = sub.Phone
	r.Email = sub.Email
	r.Website = sub.Website
	r.ScreenshotPaths = append(r.ScreenshotPaths, sub.ScreenshotPaths...)
	r.DocumentPaths = append(r.DocumentPaths, sub.DocumentPaths...)
}
