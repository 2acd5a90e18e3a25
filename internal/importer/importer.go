// Package importer writes parsed records into the directory store. It is
// the only part of the engine with a side effect on persistent state.
package importer

import (
	"context"
	"log/slog"
	"time"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/entity"
	"github.com/gasdir-ar/gasdir/internal/parse"
	"github.com/gasdir-ar/gasdir/internal/repository"
)

// Stats summarizes one import run.
type Stats struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
	Total    int `json:"total"`
}

type Importer struct {
	store  repository.ProfileRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewImporter(store repository.ProfileRepository, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: store, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Import upserts each record keyed by (publisher, license number). A
// failure on one record is logged and counted; it never cancels the rest
// of the batch.
func (im *Importer) Import(ctx context.Context, records []*parse.Record, publisher constants.Publisher, provenance string) Stats {
	var stats Stats
	for _, rec := range records {
		stats.Total++
		if !rec.Valid() {
			stats.Errors++
			continue
		}
		if err := im.upsert(ctx, rec, publisher, provenance, &stats); err != nil {
			im.logger.Error("importer.record.failed",
				"publisher", publisher,
				"license_number", rec.LicenseNumber,
				"error", err,
			)
			stats.Errors++
		}
	}
	im.logger.Info("importer.run.done",
		"publisher", publisher,
		"imported", stats.Imported,
		"updated", stats.Updated,
		"errors", stats.Errors,
		"total", stats.Total,
	)
	return stats
}

func (im *Importer) upsert(ctx context.Context, rec *parse.Record, publisher constants.Publisher, provenance string, stats *Stats) error {
	existing, err := im.store.GetByKey(ctx, publisher, rec.LicenseNumber)
	if err != nil {
		return err
	}
	now := im.now()

	if existing == nil {
		p := im.toProfile(rec, publisher, provenance, now)
		if err := im.store.Create(ctx, p); err != nil {
			return err
		}
		stats.Imported++
		return nil
	}

	merge(existing, rec, provenance, now)
	if err := im.store.Update(ctx, existing); err != nil {
		return err
	}
	stats.Updated++
	return nil
}

func (im *Importer) toProfile(rec *parse.Record, publisher constants.Publisher, provenance string, now time.Time) *entity.Profile {
	var source *string
	if provenance != "" {
		source = &provenance
	}
	return &entity.Profile{
		Publisher:           publisher,
		LicenseNumber:       rec.LicenseNumber,
		FullName:            rec.Name,
		Phone:               rec.Phone,
		Phones:              rec.Phones,
		Email:               rec.Email,
		TaxID:               rec.TaxID,
		Profession:          constants.Profession,
		Locality:            rec.Locality,
		Province:            rec.Province,
		Address:             rec.Address,
		PostalCode:          rec.PostalCode,
		Category:            rec.Category,
		CategoryDescription: rec.CategoryDescription,
		LicenseExpiry:       rec.LicenseExpiry,
		Source:              source,
		FirstSeenAt:         now,
		LastSeenAt:          now,
	}
}

// merge is the additive override: every non-null incoming field replaces
// the stored value, every null one leaves it untouched. Phone lists are
// unioned by their digit key.
func merge(p *entity.Profile, rec *parse.Record, provenance string, now time.Time) {
	if rec.Name != "" {
		p.FullName = rec.Name
	}
	mergeStr(&p.Phone, rec.Phone)
	mergeStr(&p.Email, rec.Email)
	mergeStr(&p.TaxID, rec.TaxID)
	mergeStr(&p.Locality, rec.Locality)
	mergeStr(&p.Province, rec.Province)
	mergeStr(&p.Address, rec.Address)
	mergeStr(&p.PostalCode, rec.PostalCode)
	mergeStr(&p.Category, rec.Category)
	mergeStr(&p.CategoryDescription, rec.CategoryDescription)
	if rec.LicenseExpiry != nil {
		p.LicenseExpiry = rec.LicenseExpiry
	}
	if provenance != "" {
		p.Source = &provenance
	}
	p.Phones = unionPhones(p.Phones, rec.Phones)
	p.LastSeenAt = now
}

func mergeStr(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func unionPhones(stored, incoming []string) []string {
	seen := make(map[string]struct{}, len(stored))
	out := make([]string, 0, len(stored)+len(incoming))
	add := func(nums []string) {
		for _, n := range nums {
			key := digitsOf(n)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, n)
		}
	}
	add(stored)
	add(incoming)
	return out
}

func digitsOf(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
