package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/entity"
)

// ProfileRepository is the directory store surface the importer writes
// through. Rows are keyed by (publisher, license_number) and are never
// deleted here.
type ProfileRepository interface {
	GetByKey(ctx context.Context, publisher constants.Publisher, licenseNumber string) (*entity.Profile, error)
	Create(ctx context.Context, p *entity.Profile) error
	Update(ctx context.Context, p *entity.Profile) error
	List(ctx context.Context, publisher constants.Publisher) ([]*entity.Profile, error)
	Count(ctx context.Context) (int, error)
}

type profileRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewProfileRepository(db *sql.DB, logger *slog.Logger) ProfileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileRepository{db: db, logger: logger}
}

const profileColumns = `publisher, license_number, full_name, phone, phones, email, tax_id,
	profession, locality, province, address, postal_code, category,
	category_description, license_expiry, source, first_seen_at, last_seen_at`

// GetByKey returns nil (no error) when the profile does not exist yet.
func (r *profileRepository) GetByKey(ctx context.Context, publisher constants.Publisher, licenseNumber string) (*entity.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM directory_profiles WHERE publisher = $1 AND license_number = $2`,
		string(publisher), licenseNumber)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to load profile", "publisher", publisher, "license_number", licenseNumber, "error", err)
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO directory_profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		string(p.Publisher), p.LicenseNumber, p.FullName, p.Phone, marshalPhones(p.Phones),
		p.Email, p.TaxID, p.Profession, p.Locality, p.Province, p.Address, p.PostalCode,
		p.Category, p.CategoryDescription, p.LicenseExpiry, p.Source, p.FirstSeenAt, p.LastSeenAt)
	if err != nil {
		r.logger.Error("failed to create profile", "license_number", p.LicenseNumber, "error", err)
	}
	return err
}

func (r *profileRepository) Update(ctx context.Context, p *entity.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE directory_profiles SET
			full_name = $1, phone = $2, phones = $3, email = $4, tax_id = $5,
			locality = $6, province = $7, address = $8, postal_code = $9,
			category = $10, category_description = $11, license_expiry = $12,
			source = $13, last_seen_at = $14
		 WHERE publisher = $15 AND license_number = $16`,
		p.FullName, p.Phone, marshalPhones(p.Phones), p.Email, p.TaxID,
		p.Locality, p.Province, p.Address, p.PostalCode,
		p.Category, p.CategoryDescription, p.LicenseExpiry,
		p.Source, p.LastSeenAt, string(p.Publisher), p.LicenseNumber)
	if err != nil {
		r.logger.Error("failed to update profile", "license_number", p.LicenseNumber, "error", err)
	}
	return err
}

func (r *profileRepository) List(ctx context.Context, publisher constants.Publisher) ([]*entity.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM directory_profiles WHERE publisher = $1 ORDER BY license_number`,
		string(publisher))
	if err != nil {
		r.logger.Error("failed to list profiles", "publisher", publisher, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM directory_profiles`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*entity.Profile, error) {
	var (
		p         entity.Profile
		publisher string
		phones    sql.NullString
		expiry    sql.NullTime
	)
	err := row.Scan(&publisher, &p.LicenseNumber, &p.FullName, &p.Phone, &phones,
		&p.Email, &p.TaxID, &p.Profession, &p.Locality, &p.Province, &p.Address,
		&p.PostalCode, &p.Category, &p.CategoryDescription, &expiry, &p.Source,
		&p.FirstSeenAt, &p.LastSeenAt)
	if err != nil {
		return nil, err
	}
	p.Publisher = constants.Publisher(publisher)
	if phones.Valid && phones.String != "" {
		if err := json.Unmarshal([]byte(phones.String), &p.Phones); err != nil {
			return nil, err
		}
	}
	if expiry.Valid {
		t := expiry.Time.UTC()
		p.LicenseExpiry = &t
	}
	return &p, nil
}

// marshalPhones stores the phone list as a JSON text column so the same
// SQL runs on Postgres and SQLite.
func marshalPhones(phones []string) *string {
	if len(phones) == 0 {
		return nil
	}
	b, _ := json.Marshal(phones)
	s := string(b)
	return &s
}
