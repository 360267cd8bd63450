// Package store holds the persistence interfaces plus their SQLite and
// in-memory implementations. Handlers only ever see the interfaces, so
// tests run against the memory variants without a database file
package store

import (
	"context"
	"errors"
	"time"

	"scamwatch/security-api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// DedupWindow is how far apart two submissions of the same report may
// be and still be treated as one. Matches the mobile client's retry
// behavior, so don't tighten it without checking with product
const DedupWindow = 60 * time.Second

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
}

type AlertStore interface {
	// List returns every alert, or only those owned by userID when
	// it's not empty
	List(ctx context.Context, userID string) ([]model.SecurityAlert, error)
	Get(ctx context.Context, id string) (*model.SecurityAlert, error)
	Create(ctx context.Context, a *model.SecurityAlert) error
	Update(ctx context.Context, id string, upd model.AlertUpdate) (*model.SecurityAlert, error)
	Delete(ctx context.Context, id string) error
	Resolve(ctx context.Context, id string) (*model.SecurityAlert, error)
	Stats(ctx context.Context, userID string) (*model.AlertStats, error)
}

type ReportStore interface {
	// Submit either inserts the submission as a new report or merges it
	// into an existing one. The bool reports whether a new record was
	// created
	Submit(ctx context.Context, sub model.ReportSubmission) (*model.ScamReport, bool, error)
	// ListAll returns every report ordered by occurrence date descending
	ListAll(ctx context.Context) ([]model.ScamReport, error)
}

func newID() (string, error) {
	return gonanoid.Generate(idCharset, 16)
}
