package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scamwatch/security-api/model"

	"gorm.io/gorm"
)

type GormReportStore struct {
	db *gorm.DB
}

func NewGormReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) Submit(ctx context.Context, sub model.ReportSubmission) (*model.ScamReport, bool, error) {
	existing, err := s.findExisting(ctx, sub)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		mergeSubmission(existing, sub)
		existing.UpdatedAt = time.Now()

		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, false, err
		}

		return existing, false, nil
	}

	id, err := newID()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate report ID, %w", err)
	}

	now := time.Now()
	report := &model.ScamReport{
		ID:              id,
		ReportID:        sub.ReportID,
		Title:           sub.Title,
		Description:     sub.Description,
		Type:            sub.Type,
		Severity:        sub.Severity,
		Date:            sub.Date,
		Phone:           sub.Phone,
		Email:           sub.Email,
		Website:         sub.Website,
		ScreenshotPaths: sub.ScreenshotPaths,
		DocumentPaths:   sub.DocumentPaths,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, false, err
	}

	return report, true, nil
}

// findExisting runs the dedup lookup: the client-generated report ID
// wins, then an identical report within the time window
func (s *GormReportStore) findExisting(ctx context.Context, sub model.ReportSubmission) (*model.ScamReport, error) {
	var r model.ScamReport

	if sub.ReportID != "" {
		err := s.db.WithContext(ctx).Where("report_id = ?", sub.ReportID).First(&r).Error
		if err == nil {
			return &r, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).
		Where("title = ? AND description = ? AND type = ?", sub.Title, sub.Description, sub.Type).
		Where("date BETWEEN ? AND ?", sub.Date.Add(-DedupWindow), sub.Date.Add(DedupWindow)).
		First(&r).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &r, nil
}

func (s *GormReportStore) ListAll(ctx context.Context) ([]model.ScamReport, error) {
	var reports []model.ScamReport

	err := s.db.WithContext(ctx).Order("date desc").Find(&reports).Error
	if err != nil {
		return nil, err
	}

	return reports, nil
}
