package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"scamwatch/security-api/model"
)

// MemoryUserStore keeps users in a process-local map. Used by tests and
// useful as a throwaway backend when no database file is wanted
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicate
		}
	}

	if u.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate user ID, %w", err)
		}

		u.ID = id
	}

	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryUserStore) Update(_ context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	for otherID, other := range s.users {
		if otherID == id {
			continue
		}

		if upd.Username != nil && other.Username == *upd.Username {
			return nil, ErrDuplicate
		}
		if upd.Email != nil && other.Email == *upd.Email {
			return nil, ErrDuplicate
		}
	}

	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}

	s.users[id] = u
	return &u, nil
}

// MemoryAlertStore keeps alerts in insertion order, matching the
// unspecified ordering the API promises
type MemoryAlertStore struct {
	mu     sync.RWMutex
	alerts []model.SecurityAlert
}

func NewMemoryAlertStore() *MemoryAlertStore {
	return &MemoryAlertStore{}
}

func (s *MemoryAlertStore) List(_ context.Context, userID string) ([]model.SecurityAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SecurityAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if userID == "" || a.UserID == userID {
			out = append(out, a)
		}
	}

	return out, nil
}

func (s *MemoryAlertStore) Get(_ context.Context, id string) (*model.SecurityAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.alerts {
		if a.ID == id {
			return &a, nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryAlertStore) Create(_ context.Context, a *model.SecurityAlert) error {
	id, err := newID()
	if err != nil {
		return fmt.Errorf("failed to generate alert ID, %w", err)
	}

	now := time.Now()

	a.ID = id
	a.IsResolved = false
	a.CreatedAt = now
	a.UpdatedAt = now

	s.mu.Lock()
	s.alerts = append(s.alerts, *a)
	s.mu.Unlock()

	return nil
}

func (s *MemoryAlertStore) Update(_ context.Context, id string, upd model.AlertUpdate) (*model.SecurityAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID != id {
			continue
		}

		applyAlertUpdate(&s.alerts[i], upd)
		s.alerts[i].UpdatedAt = time.Now()

		a := s.alerts[i]
		return &a, nil
	}

	return nil, ErrNotFound
}

func (s *MemoryAlertStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (s *MemoryAlertStore) Resolve(ctx context.Context, id string) (*model.SecurityAlert, error) {
	resolved := true
	return s.Update(ctx, id, model.AlertUpdate{IsResolved: &resolved})
}

func (s *MemoryAlertStore) Stats(ctx context.Context, userID string) (*model.AlertStats, error) {
	alerts, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return computeStats(alerts), nil
}

type MemoryReportStore struct {
	mu      sync.RWMutex
	reports []model.ScamReport
}

func NewMemoryReportStore() *MemoryReportStore {
	return &MemoryReportStore{}
}

func (s *MemoryReportStore) Submit(_ context.Context, sub model.ReportSubmission) (*model.ScamReport, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findExisting(sub); i >= 0 {
		mergeSubmission(&s.reports[i], sub)
		s.reports[i].UpdatedAt = time.Now()

		r := s.reports[i]
		return &r, false, nil
	}

	id, err := newID()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate report ID, %w", err)
	}

	now := time.Now()
	report := model.ScamReport{
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

	s.reports = append(s.reports, report)
	return &report, true, nil
}

func (s *MemoryReportStore) findExisting(sub model.ReportSubmission) int {
	if sub.ReportID != "" {
		for i := range s.reports {
			if s.reports[i].ReportID == sub.ReportID {
				return i
			}
		}
	}

	for i := range s.reports {
		r := &s.reports[i]
		if r.Title != sub.Title || r.Description != sub.Description || r.Type != sub.Type {
			continue
		}

		diff := sub.Date.Sub(r.Date)
		if diff < 0 {
			diff = -diff
		}

		if diff <= DedupWindow {
			return i
		}
	}

	return -1
}

func (s *MemoryReportStore) ListAll(_ context.Context) ([]model.ScamReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ScamReport, len(s.reports))
	copy(out, s.reports)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}
