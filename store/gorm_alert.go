package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scamwatch/security-api/model"

	"gorm.io/gorm"
)

type GormAlertStore struct {
	db *gorm.DB
}

func NewGormAlertStore(db *gorm.DB) *GormAlertStore {
	return &GormAlertStore{db: db}
}

func (s *GormAlertStore) List(ctx context.Context, userID string) ([]model.SecurityAlert, error) {
	q := s.db.WithContext(ctx)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var alerts []model.SecurityAlert

	if err := q.Order("created_at").Find(&alerts).Error; err != nil {
		return nil, err
	}

	return alerts, nil
}

func (s *GormAlertStore) Get(ctx context.Context, id string) (*model.SecurityAlert, error) {
	var a model.SecurityAlert

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &a, nil
}

func (s *GormAlertStore) Create(ctx context.Context, a *model.SecurityAlert) error {
	id, err := newID()
	if err != nil {
		return fmt.Errorf("failed to generate alert ID, %w", err)
	}

	now := time.Now()

	a.ID = id
	a.IsResolved = false
	a.CreatedAt = now
	a.UpdatedAt = now

	return s.db.WithContext(ctx).Create(a).Error
}

func (s *GormAlertStore) Update(ctx context.Context, id string, upd model.AlertUpdate) (*model.SecurityAlert, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyAlertUpdate(a, upd)
	a.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return nil, err
	}

	return a, nil
}

func (s *GormAlertStore) Delete(ctx context.Context, id string) error {
	r := s.db.WithContext(ctx).Where("id = ?", id).Delete(model.SecurityAlert{})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *GormAlertStore) Resolve(ctx context.Context, id string) (*model.SecurityAlert, error) {
	resolved := true
	return s.Update(ctx, id, model.AlertUpdate{IsResolved: &resolved})
}

func (s *GormAlertStore) Stats(ctx context.Context, userID string) (*model.AlertStats, error) {
	alerts, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return computeStats(alerts), nil
}
