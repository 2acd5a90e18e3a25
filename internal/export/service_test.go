package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/entity"
)

// listStore hands back a canned profile slice.
type listStore struct {
	profiles []*entity.Profile
	err      error
}

func (s *listStore) GetByKey(context.Context, constants.Publisher, string) (*entity.Profile, error) {
	return nil, nil
}
func (s *listStore) Create(context.Context, *entity.Profile) error { return nil }
func (s *listStore) Update(context.Context, *entity.Profile) error { return nil }
func (s *listStore) Count(context.Context) (int, error)            { return len(s.profiles), nil }

func (s *listStore) List(context.Context, constants.Publisher) ([]*entity.Profile, error) {
	return s.profiles, s.err
}

func TestExportDirectoryXLSX(t *testing.T) {
	phone := "+54 9 3783 123456"
	category := "M2"
	province := "Corrientes"
	expiry := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	seen := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	store := &listStore{profiles: []*entity.Profile{
		{
			Publisher:     constants.PublisherA,
			LicenseNumber: "0000abcd",
			FullName:      "JUAN PEREZ",
			Phone:         &phone,
			Category:      &category,
			Province:      &province,
			LicenseExpiry: &expiry,
			LastSeenAt:    seen,
		},
		{
			Publisher:     constants.PublisherA,
			LicenseNumber: "0000beef",
			FullName:      "MARIA LOPEZ",
			LastSeenAt:    seen,
		},
	}}

	svc := NewService(store, nil)
	b, err := svc.ExportDirectoryXLSX(context.Background(), constants.PublisherA)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Directory")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "License Number", rows[0][0])
	assert.Equal(t, "Full Name", rows[0][1])

	assert.Equal(t, "0000abcd", rows[1][0])
	assert.Equal(t, "JUAN PEREZ", rows[1][1])
	assert.Equal(t, "M2", rows[1][2])
	assert.Equal(t, phone, rows[1][3])
	assert.Equal(t, "Corrientes", rows[1][7])
	assert.Equal(t, "2025-12-31", rows[1][10])

	assert.Equal(t, "MARIA LOPEZ", rows[2][1])
}

func TestExportDirectoryXLSXStoreError(t *testing.T) {
	svc := NewService(&listStore{err: errors.New("connection refused")}, nil)

	_, err := svc.ExportDirectoryXLSX(context.Background(), constants.PublisherA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query profiles")
}
