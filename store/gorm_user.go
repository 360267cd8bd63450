package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scamwatch/security-api/model"

	"gorm.io/gorm"
)

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, u *model.User) error {
	var count int64

	err := s.db.WithContext(ctx).
		Model(model.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).
		Error
	if err != nil {
		return fmt.Errorf("failed to check for existing user, %w", err)
	}

	if count > 0 {
		return ErrDuplicate
	}

	if u.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate user ID, %w", err)
		}

		u.ID = id
	}

	u.CreatedAt = time.Now()

	return s.db.WithContext(ctx).Create(u).Error
}

func (s *GormUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &u, nil
}

func (s *GormUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &u, nil
}

func (s *GormUserStore) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != u.Username {
		var count int64

		err := s.db.WithContext(ctx).
			Model(model.User{}).
			Where("username = ? AND id <> ?", *upd.Username, id).
			Count(&count).
			Error
		if err != nil {
			return nil, err
		}

		if count > 0 {
			return nil, ErrDuplicate
		}

		u.Username = *upd.Username
	}

	if upd.Email != nil && *upd.Email != u.Email {
		var count int64

		err := s.db.WithContext(ctx).
			Model(model.User{}).
			Where("email = ? AND id <> ?", *upd.Email, id).
			Count(&count).
			Error
		if err != nil {
			return nil, err
		}

		if count > 0 {
			return nil, ErrDuplicate
		}

		u.Email = *upd.Email
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}

	return u, nil
}
