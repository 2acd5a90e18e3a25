package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/repository"
)

// Service is a tiny façade over the profile repository that produces XLSX
// bytes for directory exports.
type Service struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

func NewService(profiles repository.ProfileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{profiles: profiles, logger: logger}
}

// ExportDirectoryXLSX returns an XLSX workbook (as bytes) with one row
// per technician of the given publisher.
func (s *Service) ExportDirectoryXLSX(ctx context.Context, publisher constants.Publisher) ([]byte, error) {
	start := time.Now()

	profiles, err := s.profiles.List(ctx, publisher)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Directory"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"License Number",
		"Full Name",
		"Category",
		"Phone",
		"Email",
		"Tax ID",
		"Locality",
		"Province",
		"Address",
		"Postal Code",
		"License Expiry",
		"Last Seen",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, p := range profiles {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, p.LicenseNumber)
		write(2, p.FullName)
		write(3, deref(p.Category))
		write(4, deref(p.Phone))
		write(5, deref(p.Email))
		write(6, deref(p.TaxID))
		write(7, deref(p.Locality))
		write(8, deref(p.Province))
		write(9, deref(p.Address))
		write(10, deref(p.PostalCode))
		if p.LicenseExpiry != nil {
			write(11, p.LicenseExpiry.Format("2006-01-02"))
		}
		write(12, p.LastSeenAt.Format("2006-01-02"))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 30)
	_ = f.SetColWidth(sheet, "D", "D", 20)
	_ = f.SetColWidth(sheet, "E", "E", 28)
	_ = f.SetColWidth(sheet, "G", "I", 26)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"publisher", publisher,
		"rows", len(profiles),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
