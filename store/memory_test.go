package store

import (
	"context"
	"testing"
	"time"

	"scamwatch/security-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	u := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	err := s.Create(ctx, &model.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = s.Create(ctx, &model.User{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	bob := &model.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, s.Create(ctx, bob))

	_, err = s.Update(ctx, bob.ID, model.UserUpdate{Username: strPtr("alice")})
	assert.ErrorIs(t, err, ErrDuplicate)

	updated, err := s.Update(ctx, bob.ID, model.UserUpdate{Email: strPtr("rob@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)
	assert.Equal(t, "rob@example.com", updated.Email)

	_, err = s.Update(ctx, "missing", model.UserUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlertUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAlertStore()

	a := &model.SecurityAlert{
		UserID:      "u1",
		Title:       "Suspicious email",
		Description: "Phishing attempt in inbox",
		Severity:    model.SeverityHigh,
		Type:        model.TypePhishing,
	}
	require.NoError(t, s.Create(ctx, a))
	assert.False(t, a.IsResolved)

	id, userID, createdAt := a.ID, a.UserID, a.CreatedAt
	prevUpdated := a.UpdatedAt

	updated, err := s.Update(ctx, a.ID, model.AlertUpdate{Title: strPtr("Confirmed phishing")})
	require.NoError(t, err)

	assert.Equal(t, id, updated.ID)
	assert.Equal(t, userID, updated.UserID)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, "Confirmed phishing", updated.Title)
	assert.True(t, updated.UpdatedAt.After(prevUpdated))

	again, err := s.Update(ctx, a.ID, model.AlertUpdate{Description: strPtr("updated")})
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
}

func TestAlertResolveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAlertStore()

	a := &model.SecurityAlert{Title: "t", Description: "d", Severity: model.SeverityLow, Type: model.TypeSpam}
	require.NoError(t, s.Create(ctx, a))

	first, err := s.Resolve(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, first.IsResolved)

	second, err := s.Resolve(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, second.IsResolved)

	_, err = s.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlertDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAlertStore()

	a := &model.SecurityAlert{Title: "t", Description: "d", Severity: model.SeverityLow, Type: model.TypeOther}
	require.NoError(t, s.Create(ctx, a))

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)

	_, err := s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlertStatsZeroFilled(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAlertStore()

	stats, err := s.Stats(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Len(t, stats.ByType, len(model.AlertTypes()))
	assert.Len(t, stats.BySeverity, len(model.Severities()))
	for _, typ := range model.AlertTypes() {
		assert.Contains(t, stats.ByType, typ)
	}
}

func TestAlertStatsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAlertStore()

	mine := &model.SecurityAlert{UserID: "u1", Title: "a", Description: "d", Severity: model.SeverityCritical, Type: model.TypeMalware}
	require.NoError(t, s.Create(ctx, mine))
	require.NoError(t, s.Create(ctx, &model.SecurityAlert{UserID: "u2", Title: "b", Description: "d", Severity: model.SeverityLow, Type: model.TypeSpam}))

	_, err := s.Resolve(ctx, mine.ID)
	require.NoError(t, err)

	stats, err := s.Stats(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 1, stats.ByType[model.TypeMalware])
	assert.Equal(t, 0, stats.ByType[model.TypeSpam])
	assert.Equal(t, 1, stats.BySeverity[model.SeverityCritical])
}

func reportSubmission(reportID string, date time.Time) model.ReportSubmission {
	return model.ReportSubmission{
		ReportID:    reportID,
		Title:       "Fake bank SMS",
		Description: "Text message asking for card details",
		Type:        "phishing",
		Severity:    "high",
		Date:        date,
	}
}

func TestReportDedupByReportID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore()
	now := time.Now()

	first := reportSubmission("client-1", now)
	first.ScreenshotPaths = []string{"s1.png"}

	r1, created, err := s.Submit(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := reportSubmission("client-1", now.Add(4*time.Hour))
	second.Severity = "critical"
	second.ScreenshotPaths = []string{"s2.png"}
	second.DocumentPaths = []string{"d1.pdf"}

	r2, created, err := s.Submit(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, r1.ID, r2.ID)
	assert.Equal(t, "critical", r2.Severity)
	assert.Equal(t, model.StringSlice{"s1.png", "s2.png"}, r2.ScreenshotPaths)
	assert.Equal(t, model.StringSlice{"d1.pdf"}, r2.DocumentPaths)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReportDedupByTimeWindow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore()
	now := time.Now()

	_, created, err := s.Submit(ctx, reportSubmission("", now))
	require.NoError(t, err)
	assert.True(t, created)

	// 30 seconds apart merges
	_, created, err = s.Submit(ctx, reportSubmission("", now.Add(30*time.Second)))
	require.NoError(t, err)
	assert.False(t, created)

	// 90 seconds apart is a new report
	_, created, err = s.Submit(ctx, reportSubmission("", now.Add(90*time.Second)))
	require.NoError(t, err)
	assert.True(t, created)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReportDifferentContentNotMerged(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore()
	now := time.Now()

	_, created, err := s.Submit(ctx, reportSubmission("", now))
	require.NoError(t, err)
	assert.True(t, created)

	other := reportSubmission("", now)
	other.Title = "Crypto giveaway scam"

	_, created, err = s.Submit(ctx, other)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestReportListOrderedByDateDesc(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReportStore()
	base := time.Now()

	oldest := reportSubmission("", base.Add(-time.Hour))
	oldest.Title = "oldest"
	newest := reportSubmission("", base)
	newest.Title = "newest"

	_, _, err := s.Submit(ctx, oldest)
	require.NoError(t, err)
	_, _, err = s.Submit(ctx, newest)
	require.NoError(t, err)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newest", all[0].Title)
	assert.Equal(t, "oldest", all[1].Title)
}
